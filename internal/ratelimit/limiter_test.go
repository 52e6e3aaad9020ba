package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := New(client, "early_access", 3, time.Hour, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "203.0.113.9"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "203.0.113.9"), "4th attempt should be rejected")
}

func TestLimiter_RecoversAfterWindow(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := New(client, "demo_schedule", 2, time.Hour, nil)
	ctx := context.Background()

	limiter.Allow(ctx, "198.51.100.1")
	limiter.Allow(ctx, "198.51.100.1")
	require.False(t, limiter.Allow(ctx, "198.51.100.1"))

	mr.FastForward(time.Hour + time.Minute)

	assert.True(t, limiter.Allow(ctx, "198.51.100.1"), "should be allowed after the window elapses")
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := New(client, "early_access", 1, time.Hour, nil)
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "203.0.113.1"))
	require.False(t, limiter.Allow(ctx, "203.0.113.1"))

	assert.True(t, limiter.Allow(ctx, "203.0.113.2"), "different key should have its own bucket")
}

func TestLimiter_PrefixesAreIndependent(t *testing.T) {
	client, _ := setupTestRedis(t)
	early := New(client, "early_access", 1, time.Hour, nil)
	demo := New(client, "demo_schedule", 1, time.Hour, nil)
	ctx := context.Background()

	require.True(t, early.Allow(ctx, "203.0.113.1"))
	require.False(t, early.Allow(ctx, "203.0.113.1"))

	assert.True(t, demo.Allow(ctx, "203.0.113.1"), "demo limiter should not share early-access counters")
}

func TestLimiter_EmptyKeySharesUnknownBucket(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := New(client, "early_access", 1, time.Hour, nil)
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, ""))
	assert.False(t, limiter.Allow(ctx, UnknownKey), "empty key and sentinel share one bucket")
}

func TestLimiter_NilAlwaysAllows(t *testing.T) {
	var limiter *Limiter
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		assert.True(t, limiter.Allow(ctx, "203.0.113.1"))
	}
	assert.NoError(t, limiter.Reset(ctx, "203.0.113.1"))
}

func TestLimiter_FailsOpenOnRedisError(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := New(client, "early_access", 1, time.Hour, nil)
	ctx := context.Background()

	mr.Close()

	assert.True(t, limiter.Allow(ctx, "203.0.113.1"), "redis outage should not block submissions")
}

func TestLimiter_Reset(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := New(client, "early_access", 1, time.Hour, nil)
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "203.0.113.1"))
	require.False(t, limiter.Allow(ctx, "203.0.113.1"))

	require.NoError(t, limiter.Reset(ctx, "203.0.113.1"))
	assert.True(t, limiter.Allow(ctx, "203.0.113.1"))
}

func TestNew_Disabled(t *testing.T) {
	if New(nil, "early_access", 3, time.Hour, nil) != nil {
		t.Fatal("expected nil limiter without a redis client")
	}
	client, _ := setupTestRedis(t)
	if New(client, "early_access", 0, time.Hour, nil) != nil {
		t.Fatal("expected nil limiter for a zero limit")
	}
}
