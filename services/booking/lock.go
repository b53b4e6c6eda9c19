package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asdcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrIntervalLocked is returned when another request holds the interval.
var ErrIntervalLocked = errors.New("interval is being booked by another request")

// IntervalLocker serializes the check-then-insert of one therapist interval.
type IntervalLocker interface {
	Lock(ctx context.Context, therapistID, date, clock string) (unlock func(), err error)
}

// releaseScript deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisIntervalLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIntervalLocker(client *redis.Client, ttl time.Duration) *RedisIntervalLocker {
	if ttl <= 0 {
		ttl = utils.BookingLockTTL
	}
	return &RedisIntervalLocker{client: client, ttl: ttl}
}

func lockKey(therapistID, date, clock string) string {
	return fmt.Sprintf("%s%s:%s:%s", utils.BookingLockPrefix, therapistID, date, clock)
}

func (l *RedisIntervalLocker) Lock(ctx context.Context, therapistID, date, clock string) (func(), error) {
	key := lockKey(therapistID, date, clock)
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	if !ok {
		return nil, ErrIntervalLocked
	}
	return func() {
		// The request context may already be done; release regardless.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		releaseScript.Run(releaseCtx, l.client, []string{key}, token)
	}, nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string, string, string) (func(), error) {
	return func() {}, nil
}
