package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// LoginThrottle is a fixed-window attempt counter.
// Key format: throttle:<key>
type LoginThrottle struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginThrottle allows max attempts per key within window.
func NewLoginThrottle(client *redis.Client, max int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, max: int64(max), window: window}
}

// Hit records one attempt and returns domain.ErrTooManyAttempts once the
// window's budget is spent. The window starts with the first attempt.
func (t *LoginThrottle) Hit(ctx context.Context, key string) error {
	k := "throttle:" + key

	var (
		count *redis.IntCmd
		ttl   *redis.DurationCmd
	)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}

	// A counter without expiry never resets, so any hit that finds one (the
	// first, or one whose EXPIRE was lost) starts the window.
	remaining := ttl.Val()
	if remaining < 0 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
		remaining = t.window
	}

	if count.Val() > t.max {
		return fmt.Errorf("%w: try again in %s", domain.ErrTooManyAttempts, remaining.Round(time.Second))
	}
	return nil
}
