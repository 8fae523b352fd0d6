package cdek

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/cdek/internal/constants"
)

// CacheType selects a token cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps tokens in process memory.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS shares tokens through a NATS JetStream key-value bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeRedis shares tokens through Redis.
	CacheTypeRedis CacheType = "redis"

	// CacheTypeNone disables token reuse.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrRedisConfigRequired   = errors.New("redis configuration required for Redis cache")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// CacheConfig configures the token cache backend.
type CacheConfig struct {
	// Type is the cache backend type.
	Type CacheType

	// Memory configures the memory backend. For NATS and Redis a non-nil
	// Memory adds a process-local layer in front of the shared backend.
	Memory *MemoryCacheConfig

	// NATS KV backend configuration.
	NATS *NATSKVConfig

	// Redis backend configuration.
	Redis *RedisConfig
}

// MemoryCacheConfig sizes the process-local cache.
type MemoryCacheConfig struct {
	// MaxSize caps the number of tokens held. Defaults to 64.
	MaxSize int
}

// DefaultCacheConfig returns a memory token cache.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:   CacheTypeMemory,
		Memory: &MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
	}
}

// NewCacheFromConfig builds the token cache described by config. A nil config
// means DefaultCacheConfig.
func NewCacheFromConfig(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	var shared Cache

	switch config.Type {
	case CacheTypeMemory:
		return newMemoryCacheFromConfig(config.Memory), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(ctx, config.NATS)
		if err != nil {
			return nil, err
		}

		shared = cache

	case CacheTypeRedis:
		if config.Redis == nil {
			return nil, ErrRedisConfigRequired
		}

		cache, err := NewRedisCache(ctx, config.Redis)
		if err != nil {
			return nil, err
		}

		shared = cache

	case CacheTypeNone, "":
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}

	if config.Memory != nil {
		return NewCacheChain(newMemoryCacheFromConfig(config.Memory), shared), nil
	}

	return shared, nil
}

func newMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil || config.MaxSize <= 0 {
		return NewMemoryCache(constants.DefaultCacheSize)
	}

	return NewMemoryCache(config.MaxSize)
}

// CacheChain layers token caches: a process-local front over a shared
// backend, so most lookups never leave the process.
type CacheChain struct {
	layers []Cache
}

// NewCacheChain layers caches front to back.
func NewCacheChain(layers ...Cache) *CacheChain {
	return &CacheChain{layers: layers}
}

// Get returns the first hit and copies it into the layers in front of it.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for depth, layer := range c.layers {
		entry, err := layer.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, front := range c.layers[:depth] {
			_ = front.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set writes the entry to every layer.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(layer Cache) error { return layer.Set(ctx, key, entry) })
}

// Delete drops the key from every layer.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(layer Cache) error { return layer.Delete(ctx, key) })
}

// Clear empties every layer.
func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(layer Cache) error { return layer.Clear(ctx) })
}

// Has reports whether any layer holds key.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, layer := range c.layers {
		if layer.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every layer that holds a connection.
func (c *CacheChain) Close() error {
	return c.each(func(layer Cache) error {
		if closer, ok := layer.(io.Closer); ok {
			return closer.Close()
		}

		return nil
	})
}

// each applies fn to every layer and joins the failures.
func (c *CacheChain) each(fn func(Cache) error) error {
	var errs []error

	for _, layer := range c.layers {
		err := fn(layer)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
