// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/mynextgame/internal/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/models"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	"github.com/labstack/echo/v4"
)

// GameHandlers contains handlers for the owner-scoped game list.
type GameHandlers struct {
	repo *repository.Repository
}

// NewGames creates a new GameHandlers instance.
func NewGames(repo *repository.Repository) *GameHandlers {
	return &GameHandlers{repo: repo}
}

// GameRequest is the request body for creating or updating an entry.
// A client-supplied userId or id field has no counterpart here and is
// silently dropped; ownership always comes from the session.
type GameRequest struct {
	Name        string `json:"name"`
	Cover       string `json:"cover"`
	RawgID      *int64 `json:"rawgId"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	Rating      int    `json:"rating"`
	HoursPlayed int    `json:"hoursPlayed"`
	Review      string `json:"review"`
	Priority    string `json:"priority"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// toModel maps the request onto a Game owned by ownerID. Blank dates become
// NULL instead of empty strings.
func (r *GameRequest) toModel(ownerID int64) *models.Game {
	game := &models.Game{
		UserID:      ownerID,
		Name:        r.Name,
		Cover:       r.Cover,
		RawgID:      r.RawgID,
		Platform:    r.Platform,
		Status:      r.Status,
		Rating:      r.Rating,
		HoursPlayed: r.HoursPlayed,
		Review:      r.Review,
		Priority:    r.Priority,
	}
	if r.StartDate != "" {
		game.StartDate = &r.StartDate
	}
	if r.EndDate != "" {
		game.EndDate = &r.EndDate
	}
	return game
}

// List returns the caller's entries.
func (h *GameHandlers) List(c echo.Context) error {
	userID, _ := auth.UserID(c.Request().Context())

	games, err := h.repo.ListGames(c.Request().Context(), userID)
	if err != nil {
		slog.Error("list_games_failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching games.")
	}

	return c.JSON(http.StatusOK, games)
}

// Create adds an entry to the caller's list.
func (h *GameHandlers) Create(c echo.Context) error {
	userID, _ := auth.UserID(c.Request().Context())

	var req GameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required.")
	}

	game := req.toModel(userID)
	if err := h.repo.CreateGame(c.Request().Context(), game); err != nil {
		slog.Error("create_game_failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding game.")
	}

	return c.JSON(http.StatusCreated, game)
}

// Update overwrites the editorial fields of an entry the caller owns.
// An entry owned by someone else is reported as missing.
func (h *GameHandlers) Update(c echo.Context) error {
	userID, _ := auth.UserID(c.Request().Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid game id.")
	}

	var req GameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required.")
	}

	if err := h.repo.UpdateGame(c.Request().Context(), userID, id, req.toModel(userID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Game not found.")
		}
		slog.Error("update_game_failed", "error", err, "user_id", userID, "game_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating game.")
	}

	game, err := h.repo.GetGame(c.Request().Context(), userID, id)
	if err != nil {
		slog.Error("update_game_failed", "error", err, "user_id", userID, "game_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating game.")
	}

	return c.JSON(http.StatusOK, game)
}

// Delete removes an entry the caller owns, under the same ownership
// precondition as Update.
func (h *GameHandlers) Delete(c echo.Context) error {
	userID, _ := auth.UserID(c.Request().Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid game id.")
	}

	if err := h.repo.DeleteGame(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Game not found.")
		}
		slog.Error("delete_game_failed", "error", err, "user_id", userID, "game_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error removing game.")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Game removed successfully!"})
}
