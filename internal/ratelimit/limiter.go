// Package ratelimit throttles credential endpoints per client IP using a
// fixed-window counter in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, purpose, key string) (bool, error)
}

// Counter is the subset of the Redis client the limiter uses.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

type RedisLimiter struct {
	client Counter
	limit  int
	window time.Duration
}

func NewRedisLimiter(client Counter, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func rateKey(purpose, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", purpose, key)
}

// Allow counts the request and reports whether it is within the limit for
// the current window. The window starts at the first request.
func (l *RedisLimiter) Allow(ctx context.Context, purpose, key string) (bool, error) {
	k := rateKey(purpose, key)
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, fmt.Errorf("failed to set rate window: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}

// Noop allows everything. Used when Redis is not configured.
type Noop struct{}

func (Noop) Allow(context.Context, string, string) (bool, error) {
	return true, nil
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}
