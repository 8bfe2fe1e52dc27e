package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"lifeos/domain"
)

type backend interface {
	Load(ctx context.Context, email string) (*domain.UserData, error)
	Save(ctx context.Context, email string, data *domain.UserData) error
}

// Cache wraps a Store with Redis-backed caching of per-identity aggregates.
type Cache struct {
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) Load(ctx context.Context, email string) (*domain.UserData, error) {
	if data, ok := c.loadFromCache(ctx, email); ok {
		return data, nil
	}

	data, err := c.base.Load(ctx, email)
	if err != nil {
		return nil, err
	}

	c.store(ctx, email, data)
	return data, nil
}

// Save writes through to the backing store, then evicts the cached copy so the
// next read observes the new document.
func (c *Cache) Save(ctx context.Context, email string, data *domain.UserData) error {
	if err := c.base.Save(ctx, email, data); err != nil {
		return err
	}

	c.evict(ctx, email)
	return nil
}

func (c *Cache) loadFromCache(ctx context.Context, email string) (*domain.UserData, bool) {
	if c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, aggregateCacheKey(email)).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, aggregateCacheKey(email)).Err()
		}
		return nil, false
	}
	var data domain.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		_ = c.redis.Del(ctx, aggregateCacheKey(email)).Err()
		return nil, false
	}
	return &data, true
}

func (c *Cache) store(ctx context.Context, email string, data *domain.UserData) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, aggregateCacheKey(email), raw, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, email string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, aggregateCacheKey(email)).Result()
}

func aggregateCacheKey(email string) string {
	return "aggregate:" + email
}
