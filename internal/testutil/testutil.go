// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/mynextgame/internal/database"
	"codeberg.org/oliverandrich/mynextgame/internal/models"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user with the given email and password.
func NewTestUser(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestGame creates a game entry owned by the given user.
func NewTestGame(t *testing.T, repo *repository.Repository, ownerID int64, name string) *models.Game {
	t.Helper()
	game := &models.Game{
		UserID: ownerID,
		Name:   name,
		Status: models.StatusPlanToPlay,
	}
	require.NoError(t, repo.CreateGame(context.Background(), game))
	return game
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
