// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"codeberg.org/oliverandrich/mynextgame/internal/config"
	"codeberg.org/oliverandrich/mynextgame/internal/handlers"
	"codeberg.org/oliverandrich/mynextgame/internal/middleware"
	"codeberg.org/oliverandrich/mynextgame/internal/rawg"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	authsvc "codeberg.org/oliverandrich/mynextgame/internal/services/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/services/email"
	"codeberg.org/oliverandrich/mynextgame/internal/services/token"
	"github.com/labstack/echo/v4"
)

// routeDeps holds the dependencies needed to set up routes.
type routeDeps struct {
	cfg      *config.Config
	repo     *repository.Repository
	accounts *authsvc.Service
	tokens   *token.Service
	mailer   email.Mailer
	catalog  *rawg.Client
}

func setupRoutes(e *echo.Echo, deps *routeDeps) {
	h := handlers.New(deps.repo)
	authHandlers := handlers.NewAuth(deps.accounts, deps.tokens, deps.mailer, deps.repo, &deps.cfg.Auth)
	gameHandlers := handlers.NewGames(deps.repo)
	profileHandlers := handlers.NewProfile(deps.repo)
	rawgHandlers := handlers.NewRawg(deps.catalog)

	e.GET("/health", h.Health)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandlers.Register)
	api.POST("/login", authHandlers.Login)
	api.POST("/logout", authHandlers.Logout)
	api.POST("/forgot-password", authHandlers.ForgotPassword)
	api.POST("/reset-password/:token", authHandlers.ResetPassword)
	api.GET("/profile/:userId", profileHandlers.Show)

	// Session-gated routes
	protected := api.Group("", middleware.RequireSession(deps.tokens, deps.cfg.Auth.CookieName))
	protected.GET("/verify-token", authHandlers.VerifyToken)
	protected.GET("/games", gameHandlers.List)
	protected.POST("/games", gameHandlers.Create)
	protected.PUT("/games/:id", gameHandlers.Update)
	protected.DELETE("/games/:id", gameHandlers.Delete)
	protected.GET("/search-rawg/:query", rawgHandlers.Search)
	protected.GET("/rawg/*", rawgHandlers.Proxy)
}
