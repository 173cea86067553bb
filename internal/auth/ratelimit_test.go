package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

func newTestLimiter(t *testing.T, maxFailures int) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, maxFailures, time.Minute), mr
}

func TestLoginLimiterBlocksAfterMaxFailures(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.False(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))
		limiter.RecordFailure(ctx, "admin@example.com", "10.0.0.1")
	}
	require.True(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))

	// Another IP for the same email is unaffected.
	require.False(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.2"))
}

func TestLoginLimiterResetClearsCounter(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	limiter.RecordFailure(ctx, "admin@example.com", "10.0.0.1")
	require.True(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))

	limiter.Reset(ctx, "admin@example.com", "10.0.0.1")
	require.False(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))
}

func TestLoginLimiterWindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	limiter.RecordFailure(ctx, "admin@example.com", "10.0.0.1")
	require.True(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))

	mr.FastForward(2 * time.Minute)
	require.False(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))
}

func TestLoginBlockedByLimiter(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "admin@example.com", "s3cret-pass", "active", "Super Admin")
	limiter, _ := newTestLimiter(t, 1)
	tokens := NewTokenIssuer("test-secret", time.Hour)
	svc := NewService(testLogger(), repo, tokens, limiter, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "wrong"}, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	// Budget exhausted: even the right password is refused now.
	_, err = svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"}, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestLoginLimiterFailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	limiter.RecordFailure(ctx, "admin@example.com", "10.0.0.1")
	mr.Close()

	require.False(t, limiter.TooMany(ctx, "admin@example.com", "10.0.0.1"))
}
