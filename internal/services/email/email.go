// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email delivers transactional mail, currently only password resets.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/mynextgame/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer sends a password-reset link to a user. The token is embedded in the
// link and is the only credential needed to complete the reset.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// Service sends mail over SMTP using go-mail.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SendPasswordReset sends the reset link for the given token.
func (s *Service) SendPasswordReset(_ context.Context, toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)

	subject := "Reset your MyNextGame password"
	body := fmt.Sprintf(
		"Someone requested a password reset for this address.\n\n"+
			"Open the link below to choose a new password. It is valid for 15 minutes:\n\n%s\n\n"+
			"If this wasn't you, you can ignore this email.\n", resetURL)

	return s.send(toEmail, subject, body)
}

// send sends an email via SMTP using go-mail.
func (s *Service) send(to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Configure TLS based on config and port
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Use implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// LogMailer logs reset links instead of sending them. Used in development
// when no SMTP server is configured.
type LogMailer struct {
	BaseURL string
}

func (m *LogMailer) SendPasswordReset(_ context.Context, toEmail, token string) error {
	slog.Info("password_reset_link",
		"email", toEmail,
		"url", fmt.Sprintf("%s/reset-password/%s", strings.TrimSuffix(m.BaseURL, "/"), token),
	)
	return nil
}
