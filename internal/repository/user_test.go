// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/mynextgame/internal/models"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	"codeberg.org/oliverandrich/mynextgame/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := &models.User{Email: "a@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(ctx, user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Email: "a@example.com", PasswordHash: "h1"}))

	err := repo.CreateUser(ctx, &models.User{Email: "a@example.com", PasswordHash: "h2"})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	name := "player1"
	require.NoError(t, repo.CreateUser(ctx, &models.User{Email: "a@example.com", Username: &name, PasswordHash: "h"}))

	err := repo.CreateUser(ctx, &models.User{Email: "b@example.com", Username: &name, PasswordHash: "h"})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateUser_NullUsernamesDoNotCollide(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Email: "a@example.com", PasswordHash: "h"}))
	require.NoError(t, repo.CreateUser(ctx, &models.User{Email: "b@example.com", PasswordHash: "h"}))
}

func TestGetUserByEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "a@example.com", "secret")

	got, err := repo.GetUserByEmail(ctx, "a@example.com")

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 12345)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateUserPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "a@example.com", "secret")

	err := repo.UpdateUserPassword(ctx, user.ID, "newhash")

	require.NoError(t, err)
	got, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)
}

func TestUpdateUserPassword_UnknownUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	err := repo.UpdateUserPassword(context.Background(), 999, "hash")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
