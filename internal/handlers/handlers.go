// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers for the JSON API.
package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	"github.com/labstack/echo/v4"
)

// Handlers contains the basic handlers that don't fit a specific area.
type Handlers struct {
	repo *repository.Repository
}

// New creates a new Handlers instance.
func New(repo *repository.Repository) *Handlers {
	return &Handlers{repo: repo}
}

// Health reports whether the service and its database are reachable.
func (h *Handlers) Health(c echo.Context) error {
	if err := h.repo.DB().PingContext(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
