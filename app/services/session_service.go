package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shashiranjanraj/mayorista/pkg/auth"
	"github.com/shashiranjanraj/mayorista/pkg/identity"
	"github.com/shashiranjanraj/mayorista/pkg/logger"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

// IdentityProvider resolves an identity token to its account email.
type IdentityProvider interface {
	Lookup(ctx context.Context, idToken string) (string, error)
}

// SessionService decides whether an identity token belongs to the single
// configured admin. Every failure surfaces as ErrUnauthorized.
type SessionService struct {
	provider   IdentityProvider
	adminEmail string
	maxAge     time.Duration
	now        func() time.Time
}

func NewSessionService(provider IdentityProvider, adminEmail string, maxAge time.Duration) *SessionService {
	return &SessionService{
		provider:   provider,
		adminEmail: strings.TrimSpace(adminEmail),
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Verify returns the admin email the token was issued for.
func (s *SessionService) Verify(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		metrics.SessionVerifications.WithLabelValues("missing").Inc()
		return "", ErrUnauthorized
	}
	if s.adminEmail == "" {
		logger.WithCtx(ctx).Error("session: ADMIN_EMAIL is not configured")
		metrics.SessionVerifications.WithLabelValues("error").Inc()
		return "", ErrUnauthorized
	}

	email, err := s.provider.Lookup(ctx, token)
	if err != nil {
		result := "invalid"
		if !errors.Is(err, identity.ErrInvalidToken) {
			result = "error"
			logger.WithCtx(ctx).Warn("session: identity lookup failed", "error", err)
		}
		metrics.SessionVerifications.WithLabelValues(result).Inc()
		return "", ErrUnauthorized
	}

	if !strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		metrics.SessionVerifications.WithLabelValues("forbidden").Inc()
		return "", ErrUnauthorized
	}

	metrics.SessionVerifications.WithLabelValues("ok").Inc()
	return email, nil
}

// CookieLifetime is how long a session cookie for token may live.
func (s *SessionService) CookieLifetime(token string) time.Duration {
	return auth.SessionLifetime(token, s.maxAge, s.now())
}
