package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenNotFound signals an unknown or expired reset token.
var ErrResetTokenNotFound = errors.New("reset token not found or expired")

// PasswordResetStore keeps one-time reset tokens. Expiry is handled
// by the store, consumption removes the token.
type PasswordResetStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type redisResetStore struct {
	client *redis.Client
}

// NewPasswordResetStore returns a Redis-backed store; tokens expire
// via key TTL.
func NewPasswordResetStore(client *redis.Client) PasswordResetStore {
	return &redisResetStore{client: client}
}

func resetKey(token string) string {
	return "pwreset:" + token
}

func (s *redisResetStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, resetKey(token), userID, ttl).Err()
}

func (s *redisResetStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrResetTokenNotFound
		}
		return "", err
	}
	return userID, nil
}
