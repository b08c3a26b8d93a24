// Package cache provides the redis-backed read cache for published form
// designs. Descriptors change rarely and are read on every page render,
// so they are cached with a TTL and invalidated on save.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"corebo/console/internal/config"
)

const (
	designKeyPrefix = "console:design:"
	designTTL       = 10 * time.Minute
)

// DesignCache caches raw descriptor bodies by form key.
type DesignCache struct {
	rdb *redis.Client
}

// NewDesignCache connects to redis using the given configuration.
// A nil return means caching is disabled (no redis configured).
func NewDesignCache(cfg *config.RedisConfig) *DesignCache {
	if cfg.Host == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &DesignCache{rdb: rdb}
}

// Get returns the cached descriptor body for a form key. A cache miss
// returns ("", false, nil).
func (c *DesignCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	body, err := c.rdb.Get(ctx, designKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("design cache get: %w", err)
	}
	return body, true, nil
}

// Set stores the descriptor body for a form key.
func (c *DesignCache) Set(ctx context.Context, key, body string) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, designKeyPrefix+key, body, designTTL).Err(); err != nil {
		return fmt.Errorf("design cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached body for a form key. Called on every save.
func (c *DesignCache) Invalidate(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, designKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("design cache invalidate: %w", err)
	}
	return nil
}

// Close releases the redis connection.
func (c *DesignCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
