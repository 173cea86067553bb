package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter tracks failed login attempts per email+IP pair in redis.
// Redis being unreachable fails open: login availability wins over the
// brute-force brake.
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewLoginLimiter builds LoginLimiter instance.
func NewLoginLimiter(client *redis.Client, maxFailures int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxFailures: maxFailures, window: window}
}

func (l *LoginLimiter) key(email, ip string) string {
	return fmt.Sprintf("login:failures:%s:%s", strings.ToLower(email), ip)
}

// TooMany reports whether the pair has exhausted its failure budget.
func (l *LoginLimiter) TooMany(ctx context.Context, email, ip string) bool {
	count, err := l.client.Get(ctx, l.key(email, ip)).Int()
	if err != nil {
		return false
	}
	return count >= l.maxFailures
}

// RecordFailure counts a failed attempt. The window starts at the first
// failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email, ip string) {
	key := l.key(email, ip)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	_, _ = pipe.Exec(ctx)
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email, ip string) {
	l.client.Del(ctx, l.key(email, ip))
}
