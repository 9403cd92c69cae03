// file: service/ratelimit.go

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ILimiterClient defines the contract the rate limiter needs from a cache
// client. This abstraction decouples the limiter from a concrete Redis
// implementation, enabling easier testing and future flexibility.
type ILimiterClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimiter implements a fixed-window counter over Redis. It throttles the
// credential-issuing endpoints, which are the only paths doing slow bcrypt
// work and the main target for guessing attacks.
type RateLimiter struct {
	client ILimiterClient
	window time.Duration
}

// NewRateLimiter creates a RateLimiter with the given counting window.
func NewRateLimiter(client ILimiterClient, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, window: window}
}

// Allow records one hit for key and reports whether the caller is still
// within limit for the current window. On a Redis error it reports allowed
// and returns the error: availability wins over strictness, the caller logs.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("rate limiter incr failed: %w", err)
	}

	// First hit in this window starts the clock.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, fmt.Errorf("rate limiter expire failed: %w", err)
		}
	}

	return count <= int64(limit), nil
}
