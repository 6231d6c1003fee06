// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the application together and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/mynextgame/internal/config"
	"codeberg.org/oliverandrich/mynextgame/internal/database"
	"codeberg.org/oliverandrich/mynextgame/internal/rawg"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	authsvc "codeberg.org/oliverandrich/mynextgame/internal/services/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/services/email"
	"codeberg.org/oliverandrich/mynextgame/internal/services/token"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(_ context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// Repository and services
	repo := repository.New(db)
	accounts := authsvc.NewService(repo)
	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.ResetTTL)
	mailer := newMailer(cfg)
	catalog := rawg.NewClient(&cfg.RAWG)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	setupRoutes(e, &routeDeps{
		cfg:      cfg,
		repo:     repo,
		accounts: accounts,
		tokens:   tokens,
		mailer:   mailer,
		catalog:  catalog,
	})

	return startWithGracefulShutdown(e, cfg)
}

// newMailer picks SMTP delivery when configured and falls back to logging
// the reset links, which keeps local development usable without a mail server.
func newMailer(cfg *config.Config) email.Mailer {
	if cfg.SMTP.Host == "" {
		slog.Warn("smtp not configured, password-reset links are logged instead")
		return &email.LogMailer{BaseURL: cfg.Server.BaseURL}
	}

	mailer, err := email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
	if err != nil {
		slog.Warn("smtp misconfigured, password-reset links are logged instead", "error", err)
		return &email.LogMailer{BaseURL: cfg.Server.BaseURL}
	}
	return mailer
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
