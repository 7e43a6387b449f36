package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLBrandContext = 10 * time.Minute // resolved brand contexts (guides change rarely)
	TTLPackage      = 1 * time.Minute  // content packages (status moves during review)
	TTLDefault      = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixBrandContext = "brandctx:"
	PrefixPackage      = "package:"
	PrefixPackageList  = "packages:"
)

// Service Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Brand context cache
	GetBrandContext(ctx context.Context, brandID string, dest interface{}) error
	SetBrandContext(ctx context.Context, brandID string, data interface{}) error
	InvalidateBrandContext(ctx context.Context, brandID string) error

	// Content package cache
	GetPackage(ctx context.Context, contentID string, dest interface{}) error
	SetPackage(ctx context.Context, contentID string, data interface{}) error
	InvalidatePackage(ctx context.Context, contentID string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether the Redis client is usable
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads and unmarshals a cached value
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set marshals and stores a value with a TTL
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists reports whether a key is present
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) GetBrandContext(ctx context.Context, brandID string, dest interface{}) error {
	return c.Get(ctx, PrefixBrandContext+brandID, dest)
}

func (c *redisCache) SetBrandContext(ctx context.Context, brandID string, data interface{}) error {
	return c.Set(ctx, PrefixBrandContext+brandID, data, TTLBrandContext)
}

func (c *redisCache) InvalidateBrandContext(ctx context.Context, brandID string) error {
	return c.Delete(ctx, PrefixBrandContext+brandID)
}

func (c *redisCache) GetPackage(ctx context.Context, contentID string, dest interface{}) error {
	return c.Get(ctx, PrefixPackage+contentID, dest)
}

func (c *redisCache) SetPackage(ctx context.Context, contentID string, data interface{}) error {
	return c.Set(ctx, PrefixPackage+contentID, data, TTLPackage)
}

func (c *redisCache) InvalidatePackage(ctx context.Context, contentID string) error {
	return c.Delete(ctx, PrefixPackage+contentID)
}
