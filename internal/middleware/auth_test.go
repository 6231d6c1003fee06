// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/mynextgame/internal/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/middleware"
	"codeberg.org/oliverandrich/mynextgame/internal/services/token"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "token"

func newGuardedEcho(tokens *token.Service) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		id, ok := auth.UserID(c.Request().Context())
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "no identity in context")
		}
		return c.JSON(http.StatusOK, map[string]int64{"userId": id})
	}, middleware.RequireSession(tokens, cookieName))
	return e
}

func TestRequireSession_ValidToken(t *testing.T) {
	tokens := token.NewService("secret", 8*time.Hour, 15*time.Minute)
	e := newGuardedEcho(tokens)

	tok, err := tokens.IssueSession(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: tok})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":42`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestRequireSession_MissingCookie(t *testing.T) {
	tokens := token.NewService("secret", 8*time.Hour, 15*time.Minute)
	e := newGuardedEcho(tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_ExpiredAndInvalidCollapseTo401(t *testing.T) {
	tokens := token.NewService("secret", -time.Minute, 15*time.Minute)
	e := newGuardedEcho(tokens)

	expired, err := tokens.IssueSession(1)
	require.NoError(t, err)

	for name, value := range map[string]string{
		"expired":   expired,
		"garbage":   "not.a.jwt",
		"untrusted": mustIssueOther(t),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireSession_ResetTokenRejected(t *testing.T) {
	tokens := token.NewService("secret", 8*time.Hour, 15*time.Minute)
	e := newGuardedEcho(tokens)

	reset, err := tokens.IssueReset(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: reset})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func mustIssueOther(t *testing.T) string {
	t.Helper()
	other := token.NewService("different-secret", time.Hour, time.Minute)
	tok, err := other.IssueSession(1)
	require.NoError(t, err)
	return tok
}
