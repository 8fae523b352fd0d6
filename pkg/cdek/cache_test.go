package cdek_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(10)
	ctx := context.Background()

	entry := &cdek.CacheEntry{
		Data:      []byte("token-1"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	err := cache.Set(ctx, "cdek.token.account", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "cdek.token.account")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, cdek.ErrCacheKeyNotFound)
	assert.Contains(t, err.Error(), "key not found")
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(10)
	ctx := context.Background()

	entry := &cdek.CacheEntry{
		Data:      []byte("token-1"),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}

	err := cache.Set(ctx, "cdek.token.account", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "cdek.token.account")
	require.ErrorIs(t, err, cdek.ErrCacheExpired)
	assert.False(t, cache.Has(ctx, "cdek.token.account"))
}

func TestMemoryCache_Delete(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(10)
	ctx := context.Background()

	err := cache.Set(ctx, "cdek.token.account", &cdek.CacheEntry{Data: []byte("token-1")})
	require.NoError(t, err)
	assert.True(t, cache.Has(ctx, "cdek.token.account"))

	err = cache.Delete(ctx, "cdek.token.account")
	require.NoError(t, err)
	assert.False(t, cache.Has(ctx, "cdek.token.account"))
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(10)
	ctx := context.Background()

	for _, key := range []string{"cdek.token.a", "cdek.token.b", "cdek.token.c"} {
		_ = cache.Set(ctx, key, &cdek.CacheEntry{Data: []byte(key), ExpiresAt: time.Now().Add(time.Hour)})
	}

	assert.True(t, cache.Has(ctx, "cdek.token.a"))
	assert.True(t, cache.Has(ctx, "cdek.token.c"))

	err := cache.Clear(ctx)
	require.NoError(t, err)

	assert.False(t, cache.Has(ctx, "cdek.token.a"))
	assert.False(t, cache.Has(ctx, "cdek.token.b"))
	assert.False(t, cache.Has(ctx, "cdek.token.c"))
}

func TestMemoryCache_MaxSizeEvictsEarliestExpiry(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(2)
	ctx := context.Background()

	for i, key := range []string{"cdek.token.a", "cdek.token.b", "cdek.token.c"} {
		_ = cache.Set(ctx, key, &cdek.CacheEntry{
			Data:      []byte(key),
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour),
		})
	}

	assert.False(t, cache.Has(ctx, "cdek.token.a"))
	assert.True(t, cache.Has(ctx, "cdek.token.b"))
	assert.True(t, cache.Has(ctx, "cdek.token.c"))

	// Overwriting an existing key does not evict.
	_ = cache.Set(ctx, "cdek.token.b", &cdek.CacheEntry{Data: []byte("b2"), ExpiresAt: time.Now().Add(time.Hour)})
	assert.True(t, cache.Has(ctx, "cdek.token.c"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := cdek.NewMemoryCache(10)
	ctx := context.Background()

	_ = cache.Set(ctx, "expired", &cdek.CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)})
	_ = cache.Set(ctx, "live", &cdek.CacheEntry{ExpiresAt: time.Now().Add(time.Minute)})

	cache.Cleanup()

	_, err := cache.Get(ctx, "expired")
	require.ErrorIs(t, err, cdek.ErrCacheKeyNotFound)
	assert.True(t, cache.Has(ctx, "live"))
}

func TestCacheEntry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		expiresAt   time.Time
		wantExpired bool
		wantTTL     time.Duration
	}{
		{name: "never expires", wantExpired: false, wantTTL: 0},
		{name: "in the future", expiresAt: now.Add(time.Minute), wantExpired: false, wantTTL: time.Minute},
		{name: "exactly now", expiresAt: now, wantExpired: true, wantTTL: 0},
		{name: "in the past", expiresAt: now.Add(-time.Minute), wantExpired: true, wantTTL: -time.Minute},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			entry := &cdek.CacheEntry{ExpiresAt: testCase.expiresAt}
			assert.Equal(t, testCase.wantExpired, entry.Expired(now))
			assert.Equal(t, testCase.wantTTL, entry.TTL(now))
		})
	}
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := cdek.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &cdek.CacheEntry{Data: []byte("token")}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, cdek.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))
	assert.NoError(t, cache.Delete(ctx, "key"))
	assert.NoError(t, cache.Clear(ctx))
}
