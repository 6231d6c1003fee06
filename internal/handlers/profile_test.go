// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"codeberg.org/oliverandrich/mynextgame/internal/handlers"
	"codeberg.org/oliverandrich/mynextgame/internal/models"
	"codeberg.org/oliverandrich/mynextgame/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileShow(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	h := handlers.NewProfile(repo)
	e := echo.New()

	user := testutil.NewTestUser(t, repo, "a@x.com", "pw")
	ctx := context.Background()
	games := []*models.Game{
		{UserID: user.ID, Name: "Hades", Platform: "PC", Status: models.StatusCompleted, HoursPlayed: 40},
		{UserID: user.ID, Name: "Stray", Platform: "PS5", Status: models.StatusPlatinumed, HoursPlayed: 10},
		{UserID: user.ID, Name: "Celeste", Platform: "PC", Status: models.StatusPlaying, HoursPlayed: 5},
	}
	for _, g := range games {
		require.NoError(t, repo.CreateGame(ctx, g))
	}

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/profile/:userId", nil)
	c.SetParamNames("userId")
	c.SetParamValues(strconv.FormatInt(user.ID, 10))

	require.NoError(t, h.Show(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Stats struct {
			TotalGames      int `json:"totalGames"`
			TotalHours      int `json:"totalHours"`
			TotalCompleted  int `json:"totalCompleted"`
			TotalPlatinated int `json:"totalPlatinated"`
		} `json:"stats"`
		Charts struct {
			GamesByStatus   map[string]int `json:"gamesByStatus"`
			GamesByPlatform map[string]int `json:"gamesByPlatform"`
		} `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, 3, resp.Stats.TotalGames)
	assert.Equal(t, 55, resp.Stats.TotalHours)
	assert.Equal(t, 1, resp.Stats.TotalCompleted)
	assert.Equal(t, 1, resp.Stats.TotalPlatinated)
	assert.Equal(t, map[string]int{"PC": 2, "PS5": 1}, resp.Charts.GamesByPlatform)
	assert.Equal(t, 1, resp.Charts.GamesByStatus[models.StatusPlaying])
}

func TestProfileShow_UnknownUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	h := handlers.NewProfile(repo)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/profile/:userId", nil)
	c.SetParamNames("userId")
	c.SetParamValues("42")

	err := h.Show(c)

	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestProfileShow_InvalidID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	h := handlers.NewProfile(repo)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/api/profile/:userId", nil)
	c.SetParamNames("userId")
	c.SetParamValues("not-a-number")

	err := h.Show(c)

	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestHealth(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	h := handlers.New(repo)
	e := echo.New()

	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/health", nil)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
