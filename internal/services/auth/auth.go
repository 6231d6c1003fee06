// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the credential store: registration, secret
// verification and secret replacement.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"codeberg.org/oliverandrich/mynextgame/internal/models"
	"codeberg.org/oliverandrich/mynextgame/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateIdentity is returned when the email or username is taken.
	ErrDuplicateIdentity = errors.New("email or username already in use")
	// ErrInvalidCredentials covers both unknown identity and wrong password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrPasswordRequired is returned when the password is empty.
	ErrPasswordRequired = errors.New("password is required")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// RegisterParams holds the parameters for user registration.
// Username is optional; when set it must be unique like the email.
type RegisterParams struct {
	Email    string
	Username string
	Password string
}

// Register creates a new user account. The password is stored only as a
// bcrypt hash; the plaintext is never persisted or logged.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if params.Password == "" {
		return nil, ErrPasswordRequired
	}

	// Check if the identity is already taken
	if _, err := s.repo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if params.Username != "" {
		if _, err := s.repo.GetUserByUsername(ctx, params.Username); err == nil {
			return nil, ErrDuplicateIdentity
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        params.Email,
		PasswordHash: string(passwordHash),
	}
	if params.Username != "" {
		user.Username = &params.Username
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// UNIQUE constraint backstop for races between check and insert
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", params.Email)

	return user, nil
}

// Login verifies an email/password pair and returns the matching user.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, nil
}

// ResetPassword replaces a user's password. No history is retained.
func (s *Service) ResetPassword(ctx context.Context, userID int64, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password_reset_success", "user_id", userID)
	return nil
}
