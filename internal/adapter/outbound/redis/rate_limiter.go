package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter is a sliding window limiter over Redis sorted sets.
type RateLimiter struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter adapter.
func NewRateLimiter(client redis.UniversalClient) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// Allow records one hit for key and reports whether it fits within limit
// hits per window, along with the hits left.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	fullKey := rateLimitKeyPrefix + key
	now := r.now().UnixNano()
	windowStart := now - window.Nanoseconds()

	var count *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(windowStart, 10))
		count = pipe.ZCard(ctx, fullKey)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("count hits: %w", err)
	}

	current := int(count.Val())
	if current >= limit {
		return false, 0, nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, fullKey, redis.Z{Score: float64(now), Member: strconv.FormatInt(now, 10)})
		pipe.PExpire(ctx, fullKey, window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("record hit: %w", err)
	}

	return true, limit - current - 1, nil
}
