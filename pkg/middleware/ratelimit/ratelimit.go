// Package ratelimit provides per-key token-bucket rate limiting.
package ratelimit

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// RateLimiter decides whether a request for a key may proceed.
// Implementations must be safe for concurrent use.
type RateLimiter interface {
	Allow(key string) bool
}

// TokenBucketLimiter keeps an independent token bucket per key, so one
// client cannot drain another client's tokens.
type TokenBucketLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewTokenBucketLimiter creates a limiter allowing requestsPerSecond on
// average with bursts up to burst.
func NewTokenBucketLimiter(requestsPerSecond float64, burst int) *TokenBucketLimiter {
	return &TokenBucketLimiter{rate: rate.Limit(requestsPerSecond), burst: burst}
}

// Allow reports whether a request for key fits its bucket.
func (l *TokenBucketLimiter) Allow(key string) bool {
	return l.bucketFor(key).Allow()
}

func (l *TokenBucketLimiter) bucketFor(key string) *rate.Limiter {
	if b, ok := l.limiters.Load(key); ok {
		return b.(*rate.Limiter)
	}
	b, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	return b.(*rate.Limiter)
}

// Config configures the rate limiting middleware.
type Config struct {
	// KeyFunc extracts the limiting key, typically the client IP.
	KeyFunc func(router.Context) string
}

// RateLimit rejects over-limit requests with 429 and a Retry-After hint.
func RateLimit(limiter RateLimiter, cfg Config) router.MiddlewareFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c router.Context) string { return c.ClientIP() }
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !limiter.Allow(keyFunc(c)) {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}
