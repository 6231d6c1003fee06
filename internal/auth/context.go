// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"codeberg.org/oliverandrich/mynextgame/internal/ctxkeys"
)

// WithUserID returns a context carrying the authenticated user's ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxkeys.UserID{}, userID)
}

// UserID returns the authenticated user's ID from the context.
// The second return value is false when no user is authenticated.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxkeys.UserID{}).(int64)
	return id, ok
}
