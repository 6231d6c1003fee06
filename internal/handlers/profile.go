// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	"github.com/labstack/echo/v4"
)

// ProfileHandlers serves the public aggregate profile.
type ProfileHandlers struct {
	repo *repository.Repository
}

// NewProfile creates a new ProfileHandlers instance.
func NewProfile(repo *repository.Repository) *ProfileHandlers {
	return &ProfileHandlers{repo: repo}
}

// Show returns aggregate stats for any user. The route is public: profiles
// are meant to be shareable and expose no entry-level data beyond counts.
func (h *ProfileHandlers) Show(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user id.")
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		}
		slog.Error("profile_failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading profile.")
	}

	stats, err := h.repo.ProfileStats(c.Request().Context(), userID)
	if err != nil {
		slog.Error("profile_failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading profile.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"email":    user.Email,
			"username": user.Username,
		},
		"stats": echo.Map{
			"totalGames":      stats.TotalGames,
			"totalHours":      stats.TotalHours,
			"totalCompleted":  stats.TotalCompleted,
			"totalPlatinated": stats.TotalPlatinated,
		},
		"charts": echo.Map{
			"gamesByStatus":   stats.ByStatus,
			"gamesByPlatform": stats.ByPlatform,
		},
	})
}
