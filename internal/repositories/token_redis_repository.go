package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"olympusblog/internal/models"

	"github.com/go-redis/redis/v8"
)

const resetTokenPrefix = "forget-password:"

// RedisTokenRepository is a Redis implementation of TokenRepository.
type RedisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository creates a new instance of RedisTokenRepository.
func NewRedisTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client: client,
	}
}

// Save stores the token with the given TTL.
func (r *RedisTokenRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, resetTokenPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	return nil
}

// Get returns the user ID stored under the token.
func (r *RedisTokenRepository) Get(ctx context.Context, token string) (string, error) {
	value, err := r.client.Get(ctx, resetTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", models.ErrTokenExpired
		}
		return "", fmt.Errorf("failed to read reset token: %w", err)
	}
	return value, nil
}

// Delete removes the token so it cannot be redeemed twice.
func (r *RedisTokenRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, resetTokenPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}
