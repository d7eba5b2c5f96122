package repository

import (
	"context"
	"testing"
	"time"

	"arenda/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisRateLimitStoreAllow(t *testing.T) {
	client := setupMiniredis(t)
	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := store.Allow(ctx, "user:1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := store.Allow(ctx, "user:1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisRateLimitStoreSetsExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	_, err = store.Allow(ctx, "user:1", 5, time.Minute)
	require.NoError(t, err)

	ttl := mr.TTL("rate_limit:user:1")
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisRateLimitStoreNilClient(t *testing.T) {
	store := NewRedisRateLimitStore(nil)

	_, err := store.Allow(context.Background(), "user:1", 5, time.Minute)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	client := setupMiniredis(t)
	assert.NoError(t, Ping(context.Background(), client))
}
