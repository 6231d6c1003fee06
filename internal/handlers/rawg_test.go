// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/mynextgame/internal/config"
	"codeberg.org/oliverandrich/mynextgame/internal/handlers"
	"codeberg.org/oliverandrich/mynextgame/internal/rawg"
	"codeberg.org/oliverandrich/mynextgame/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRawgHandlers(t *testing.T, upstream http.HandlerFunc) *handlers.RawgHandlers {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	client := rawg.NewClient(&config.RAWGConfig{APIKey: "test-key", BaseURL: srv.URL})
	return handlers.NewRawg(client)
}

func TestRawgSearch(t *testing.T) {
	h := newRawgHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "hades", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":3,"name":"Hades"}]}`))
	})
	e := echo.New()

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/search-rawg/:query", nil)
	c.SetParamNames("query")
	c.SetParamValues("hades")

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":3,"name":"Hades"}]`, rec.Body.String())
}

func TestRawgSearch_UpstreamError(t *testing.T) {
	h := newRawgHandlers(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/search-rawg/:query", nil)
	c.SetParamNames("query")
	c.SetParamValues("hades")

	err := h.Search(c)

	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
}

func TestRawgProxy_RelaysStatusAndBody(t *testing.T) {
	h := newRawgHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/3498", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	})
	e := echo.New()

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/rawg/*", nil)
	c.SetParamNames("*")
	c.SetParamValues("games/3498")

	require.NoError(t, h.Proxy(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rec.Body.String())
}

func TestRawgProxy_Unreachable(t *testing.T) {
	client := rawg.NewClient(&config.RAWGConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})
	h := handlers.NewRawg(client)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/rawg/*", nil)
	c.SetParamNames("*")
	c.SetParamValues("games")

	err := h.Proxy(c)

	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
}
