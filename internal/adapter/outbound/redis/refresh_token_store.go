package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
)

const refreshTokenKeyPrefix = "refresh:"

// BreakerConfig tunes the circuit breaker guarding Redis calls.
type BreakerConfig struct {
	FailureThreshold uint32
	Interval         time.Duration
	Timeout          time.Duration
}

// DefaultBreakerConfig returns the default breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
	}
}

// refreshTokenStore implements auth.RefreshTokenStore.
type refreshTokenStore struct {
	client  redis.UniversalClient
	breaker *gobreaker.CircuitBreaker[any]
}

// NewRefreshTokenStore creates a Redis backed refresh token store.
func NewRefreshTokenStore(client redis.UniversalClient, cfg BreakerConfig) auth.RefreshTokenStore {
	if cfg.FailureThreshold == 0 {
		cfg = DefaultBreakerConfig()
	}
	threshold := cfg.FailureThreshold
	settings := gobreaker.Settings{
		Name:        "redis-refresh-tokens",
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A missing key is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || err == redis.Nil
		},
	}
	return &refreshTokenStore{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func refreshTokenKey(userID collaboration.UserID, hash string) string {
	return refreshTokenKeyPrefix + userID.String() + ":" + hash
}

func (s *refreshTokenStore) do(fn func() error) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

func (s *refreshTokenStore) Store(ctx context.Context, userID collaboration.UserID, hash string, ttl time.Duration) error {
	err := s.do(func() error {
		return s.client.Set(ctx, refreshTokenKey(userID, hash), "1", ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (s *refreshTokenStore) Exists(ctx context.Context, userID collaboration.UserID, hash string) (bool, error) {
	var n int64
	err := s.do(func() error {
		var err error
		n, err = s.client.Exists(ctx, refreshTokenKey(userID, hash)).Result()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("check refresh token: %w", err)
	}
	return n > 0, nil
}

func (s *refreshTokenStore) Revoke(ctx context.Context, userID collaboration.UserID, hash string) (bool, error) {
	var n int64
	err := s.do(func() error {
		var err error
		n, err = s.client.Del(ctx, refreshTokenKey(userID, hash)).Result()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	return n > 0, nil
}

func (s *refreshTokenStore) RevokeAll(ctx context.Context, userID collaboration.UserID) error {
	pattern := refreshTokenKeyPrefix + userID.String() + ":*"
	err := s.do(func() error {
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return s.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

// Compile-time check
var _ auth.RefreshTokenStore = (*refreshTokenStore)(nil)
