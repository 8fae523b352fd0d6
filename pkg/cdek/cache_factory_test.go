package cdek_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	cache, err := cdek.NewCacheFromConfig(context.Background(), &cdek.CacheConfig{
		Type:   cdek.CacheTypeMemory,
		Memory: &cdek.MemoryCacheConfig{MaxSize: 100},
	})
	require.NoError(t, err)
	require.IsType(t, &cdek.MemoryCache{}, cache)

	ctx := context.Background()
	entry := &cdek.CacheEntry{
		Data:      []byte("token-1"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	require.NoError(t, cache.Set(ctx, "test-key", entry))

	retrieved, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.True(t, cache.Has(ctx, "test-key"))

	require.NoError(t, cache.Delete(ctx, "test-key"))
	assert.False(t, cache.Has(ctx, "test-key"))
}

func TestCacheFactory_Defaults(t *testing.T) {
	t.Parallel()

	cache, err := cdek.NewCacheFromConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.IsType(t, &cdek.MemoryCache{}, cache)

	config := cdek.DefaultCacheConfig()
	assert.Equal(t, cdek.CacheTypeMemory, config.Type)
	require.NotNil(t, config.Memory)
	assert.Positive(t, config.Memory.MaxSize)
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	cache, err := cdek.NewCacheFromConfig(context.Background(), &cdek.CacheConfig{Type: cdek.CacheTypeNone})
	require.NoError(t, err)
	assert.IsType(t, &cdek.NoOpCache{}, cache)
}

func TestCacheFactory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *cdek.CacheConfig
		wantErr error
	}{
		{
			name:    "unknown type",
			config:  &cdek.CacheConfig{Type: "memcached"},
			wantErr: cdek.ErrUnsupportedCacheType,
		},
		{
			name:    "nats without config",
			config:  &cdek.CacheConfig{Type: cdek.CacheTypeNATS},
			wantErr: cdek.ErrNATSConfigRequired,
		},
		{
			name:    "redis without config",
			config:  &cdek.CacheConfig{Type: cdek.CacheTypeRedis},
			wantErr: cdek.ErrRedisConfigRequired,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cache, err := cdek.NewCacheFromConfig(context.Background(), testCase.config)
			require.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, cache)
		})
	}
}

func TestCacheFactory_UnreachableBackends(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := cdek.NewCacheFromConfig(ctx, &cdek.CacheConfig{
		Type: cdek.CacheTypeNATS,
		NATS: &cdek.NATSKVConfig{URL: "nats://127.0.0.1:1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to NATS")

	_, err = cdek.NewCacheFromConfig(ctx, &cdek.CacheConfig{
		Type:  cdek.CacheTypeRedis,
		Redis: &cdek.RedisConfig{Addr: "127.0.0.1:1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	l1Cache := cdek.NewMemoryCache(10)
	l2Cache := cdek.NewMemoryCache(10)
	chain := cdek.NewCacheChain(l1Cache, l2Cache)
	ctx := context.Background()

	entry := &cdek.CacheEntry{
		Data:      []byte("token-1"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	t.Run("set writes every layer", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, chain.Set(ctx, "set-key", entry))
		assert.True(t, l1Cache.Has(ctx, "set-key"))
		assert.True(t, l2Cache.Has(ctx, "set-key"))
	})

	t.Run("hit in L2 is promoted to L1", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, l2Cache.Set(ctx, "l2-key", entry))
		assert.False(t, l1Cache.Has(ctx, "l2-key"))

		retrieved, err := chain.Get(ctx, "l2-key")
		require.NoError(t, err)
		assert.Equal(t, entry.Data, retrieved.Data)
		assert.True(t, l1Cache.Has(ctx, "l2-key"))
	})

	t.Run("miss everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := chain.Get(ctx, "missing")
		require.ErrorIs(t, err, cdek.ErrKeyNotFoundInAnyCache)
		assert.False(t, chain.Has(ctx, "missing"))
	})

	t.Run("delete removes every layer", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, chain.Set(ctx, "delete-key", entry))
		require.NoError(t, chain.Delete(ctx, "delete-key"))
		assert.False(t, l1Cache.Has(ctx, "delete-key"))
		assert.False(t, l2Cache.Has(ctx, "delete-key"))
	})

	t.Run("close ignores layers without connections", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, chain.Close())
	})
}
