package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"headlines-api/core/interfaces"
	"headlines-api/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These are integration tests that need a Redis instance at REDIS_ADDRESS
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	if os.Getenv("REDIS_TEST") != "1" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
	}

	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	cache, err := NewRedisCache(config.RedisConfig{Address: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewRedisCache_EmptyAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{})

	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{Address: "127.0.0.1:1"})

	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "test:saved:" + time.Now().Format(time.RFC3339Nano)

	require.NoError(t, cache.Set(ctx, key, []byte(`{"a":1}`), time.Minute))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, cache.Delete(ctx, key))
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_MissingKey(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "test:never-set")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "test:short:" + time.Now().Format(time.RFC3339Nano)

	require.NoError(t, cache.Set(ctx, key, []byte("v"), 100*time.Millisecond))
	time.Sleep(250 * time.Millisecond)

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_DeleteMissingKey(t *testing.T) {
	cache := newTestCache(t)

	assert.NoError(t, cache.Delete(context.Background(), "test:never-set"))
}
