// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package token issues and verifies the signed credentials used for sessions
// and password resets. Tokens are self-contained: verification is a pure
// signature and expiry check with no store lookup.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Token purposes. A token is only accepted for the purpose it was issued for,
// so a reset token can never be used as a session.
const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

// Claims binds a user identity to a purpose and an expiry.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"uid"`
	Purpose string `json:"purpose"`
}

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

// NewService creates a token service. sessionTTL and resetTTL are the
// lifetimes of the two token kinds.
func NewService(secret string, sessionTTL, resetTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

// SessionTTL returns the configured session lifetime, used for cookie Max-Age.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// IssueSession mints a session token for the given user.
func (s *Service) IssueSession(userID int64) (string, error) {
	return s.issue(userID, PurposeSession, s.sessionTTL)
}

// IssueReset mints a short-lived password-reset token for the given user.
func (s *Service) IssueReset(userID int64) (string, error) {
	return s.issue(userID, PurposeReset, s.resetTTL)
}

func (s *Service) issue(userID int64, purpose string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and checks signature, expiry and purpose.
// Returns ErrTokenExpired for outdated tokens and ErrTokenInvalid for
// everything else that is wrong with it.
func (s *Service) Verify(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid || claims.Purpose != purpose {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
