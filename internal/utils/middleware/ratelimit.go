package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamhub/server/internal/utils/logger"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimiter counts hits per key within a window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int, err error)
}

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Name scopes the keys of one limit.
	Name   string
	Limit  int
	Window time.Duration
	// KeyFunc generates the rate limit key from request.
	// Default uses client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a middleware that limits requests using the given limiter.
// Limiter failures let the request through.
func RateLimit(limiter RateLimiter, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string {
			return "ip:" + c.ClientIP()
		}
	}

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cfg.Name + ":" + cfg.KeyFunc(c)

		allowed, remaining, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			logger.FromContext(ctx).Warn("rate limiter unavailable",
				zap.String("limit", cfg.Name),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			c.Header(RetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Too many requests, please try again later",
				},
			})
			return
		}

		c.Next()
	}
}

// RateLimitByIP limits by client IP.
func RateLimitByIP(limiter RateLimiter, name string, limit int, window time.Duration) gin.HandlerFunc {
	return RateLimit(limiter, RateLimitConfig{Name: name, Limit: limit, Window: window})
}

// RateLimitByUser limits by authenticated user, falling back to client IP.
func RateLimitByUser(limiter RateLimiter, name string, limit int, window time.Duration) gin.HandlerFunc {
	return RateLimit(limiter, RateLimitConfig{
		Name:   name,
		Limit:  limit,
		Window: window,
		KeyFunc: func(c *gin.Context) string {
			if userID, ok := GetUserID(c); ok {
				return "user:" + userID.String()
			}
			return "ip:" + c.ClientIP()
		},
	})
}
