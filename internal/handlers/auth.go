// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/mynextgame/internal/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/config"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	authsvc "codeberg.org/oliverandrich/mynextgame/internal/services/auth"
	"codeberg.org/oliverandrich/mynextgame/internal/services/email"
	"codeberg.org/oliverandrich/mynextgame/internal/services/token"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for registration, login and password reset.
type AuthHandlers struct {
	accounts *authsvc.Service
	tokens   *token.Service
	mailer   email.Mailer
	repo     *repository.Repository
	cfg      *config.AuthConfig
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(accounts *authsvc.Service, tokens *token.Service, mailer email.Mailer, repo *repository.Repository, cfg *config.AuthConfig) *AuthHandlers {
	return &AuthHandlers{
		accounts: accounts,
		tokens:   tokens,
		mailer:   mailer,
		repo:     repo,
		cfg:      cfg,
	}
}

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	}

	_, err := h.accounts.Register(c.Request().Context(), authsvc.RegisterParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, authsvc.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusBadRequest, "This email or username is already in use.")
	case errors.Is(err, authsvc.ErrInvalidEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email address.")
	case errors.Is(err, authsvc.ErrPasswordRequired):
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	case err != nil:
		slog.Error("register_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during registration.")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully!"})
}

// LoginRequest is the request body for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
	}

	user, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials.")
		}
		slog.Error("login_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login.")
	}

	tok, err := h.tokens.IssueSession(user.ID)
	if err != nil {
		slog.Error("token_issue_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error during login.")
	}

	c.SetCookie(h.sessionCookie(tok, h.tokens.SessionTTL()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful!"})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side revocation list.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out."})
}

// ForgotPasswordRequest is the request body for requesting a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword mails a reset link when the address is registered. The
// response is the same either way so the endpoint cannot be used to probe
// which emails exist.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required.")
	}

	genericReply := func() error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "If that email is registered, a reset link has been sent.",
		})
	}

	user, err := h.repo.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return genericReply()
		}
		slog.Error("forgot_password_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error.")
	}

	tok, err := h.tokens.IssueReset(user.ID)
	if err != nil {
		slog.Error("token_issue_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error.")
	}

	if err := h.mailer.SendPasswordReset(c.Request().Context(), user.Email, tok); err != nil {
		slog.Error("reset_mail_failed", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not send the reset email.")
	}

	slog.Info("reset_mail_sent", "user_id", user.ID)
	return genericReply()
}

// ResetPasswordRequest is the request body for completing a reset.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword consumes a reset token from the URL and replaces the secret
// of the identity embedded in it.
func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required.")
	}

	claims, err := h.tokens.Verify(c.Param("token"), token.PurposeReset)
	if err != nil {
		// expired and invalid are indistinguishable to the client
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), claims.UserID, req.Password); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
		}
		slog.Error("password_reset_failed", "error", err, "user_id", claims.UserID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error.")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully!"})
}

// VerifyToken returns the identity of the current session. Used by the
// client on page load to restore its auth state.
func (h *AuthHandlers) VerifyToken(c echo.Context) error {
	userID, ok := auth.UserID(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated.")
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated.")
		}
		slog.Error("verify_token_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"userId":   user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}

// sessionCookie builds the httpOnly session cookie. A non-positive maxAge
// yields an expired cookie, used by Logout.
func (h *AuthHandlers) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
	} else {
		cookie.MaxAge = -1
	}
	return cookie
}
