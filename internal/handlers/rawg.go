// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/mynextgame/internal/rawg"
	"github.com/labstack/echo/v4"
)

// RawgHandlers proxies the external game catalog. Routes are session-gated
// so the API key is only spent on behalf of logged-in users.
type RawgHandlers struct {
	client *rawg.Client
}

// NewRawg creates a new RawgHandlers instance.
func NewRawg(client *rawg.Client) *RawgHandlers {
	return &RawgHandlers{client: client}
}

// Search returns up to five catalog matches for the query.
func (h *RawgHandlers) Search(c echo.Context) error {
	results, err := h.client.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		slog.Error("rawg_search_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error searching the RAWG API.")
	}

	return c.JSONBlob(http.StatusOK, results)
}

// Proxy forwards an arbitrary catalog request and relays the upstream
// status and body unchanged.
func (h *RawgHandlers) Proxy(c echo.Context) error {
	status, body, err := h.client.Get(c.Request().Context(), c.Param("*"), c.QueryParams())
	if err != nil {
		slog.Error("rawg_proxy_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error reaching the RAWG API.")
	}

	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
