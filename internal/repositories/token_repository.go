package repositories

import (
	"context"
	"time"
)

// TokenRepository stores ephemeral password-reset tokens with a time-based
// expiry. Tokens live outside the relational store; no transaction ever spans
// both.
type TokenRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Get returns the user ID the token was issued for, or
	// models.ErrTokenExpired when the token is absent or expired.
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
