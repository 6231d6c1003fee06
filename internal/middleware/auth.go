// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware contains the request-level authentication gate.
package middleware

import (
	"net/http"

	"codeberg.org/oliverandrich/mynextgame/internal/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/services/token"
	"github.com/labstack/echo/v4"
)

// RequireSession extracts the session token from the named cookie, verifies
// it and puts the authenticated user ID into the request context. A missing,
// expired or invalid token all yield the same 401 response. Protected
// responses carry user-specific data, so caching is disabled.
func RequireSession(tokens *token.Service, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			claims, err := tokens.Verify(cookie.Value, token.PurposeSession)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
			}

			c.Response().Header().Set("Cache-Control", "no-store")

			ctx := auth.WithUserID(c.Request().Context(), claims.UserID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
