package utils

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RevokeToken marks a token ID as revoked until the token would have expired.
func RevokeToken(ctx context.Context, client *redis.Client, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token has no id")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, RevokedTokenPrefix+tokenID, "1", ttl).Err()
}

// IsTokenRevoked reports whether RevokeToken was called for tokenID.
func IsTokenRevoked(ctx context.Context, client *redis.Client, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := client.Exists(ctx, RevokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
