// File: services/scheduling/cache.go
package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"asdcare/models"
	"asdcare/utils"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache holds recently computed availability answers.
type AvailabilityCache interface {
	Get(ctx context.Context, therapistID, date string) (*models.Availability, bool, error)
	Set(ctx context.Context, therapistID, date string, a *models.Availability) error
	Invalidate(ctx context.Context, therapistID, date string) error
}

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = utils.AvailabilityCacheTTL
	}
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func availabilityKey(therapistID, date string) string {
	return fmt.Sprintf("%s%s:%s", utils.AvailabilityCachePrefix, therapistID, date)
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, therapistID, date string) (*models.Availability, bool, error) {
	val, err := c.client.Get(ctx, availabilityKey(therapistID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var a models.Availability
	if err := json.Unmarshal(val, &a); err != nil {
		return nil, false, fmt.Errorf("corrupt availability entry: %w", err)
	}
	return &a, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, therapistID, date string, a *models.Availability) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(therapistID, date), data, c.ttl).Err()
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, therapistID, date string) error {
	return c.client.Del(ctx, availabilityKey(therapistID, date)).Err()
}

// noopCache is used when no Redis client is configured.
type noopCache struct{}

func (noopCache) Get(context.Context, string, string) (*models.Availability, bool, error) {
	return nil, false, nil
}
func (noopCache) Set(context.Context, string, string, *models.Availability) error { return nil }
func (noopCache) Invalidate(context.Context, string, string) error                { return nil }
