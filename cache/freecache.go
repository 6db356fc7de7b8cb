package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

type freeCache struct {
	cache *freecache.Cache
}

// NewFreeCache keeps everything in process memory. Nothing survives a restart
// or is shared between replicas, so it fits local runs and tests.
// Size it at roughly 100MB (100 * 1024 * 1024) for a long-running bot.
func NewFreeCache(cache *freecache.Cache) Cache {
	return &freeCache{cache: cache}
}

// ttlSeconds maps a non-positive expiry to freecache's "never expires".
func ttlSeconds(expiry time.Duration) int {
	return max(int(expiry.Seconds()), 0)
}

func (c *freeCache) put(key, value string, ttl int) error {
	if err := c.cache.Set([]byte(key), []byte(value), ttl); err != nil {
		return fmt.Errorf("freecache set %s: %w", key, err)
	}
	return nil
}

func (c *freeCache) lookup(key string) (string, bool, error) {
	data, err := c.cache.Get([]byte(key))
	switch {
	case errors.Is(err, freecache.ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("freecache get %s: %w", key, err)
	}
	return string(data), true, nil
}

func (c *freeCache) Set(_ context.Context, key string, value string, expiry time.Duration) error {
	return c.put(key, value, ttlSeconds(expiry))
}

func (c *freeCache) Get(_ context.Context, key string) (string, error) {
	value, found, err := c.lookup(key)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (c *freeCache) Sets(_ context.Context, kvs map[string]string, expiry time.Duration) error {
	ttl := ttlSeconds(expiry)
	for key, value := range kvs {
		if err := c.put(key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (c *freeCache) Gets(_ context.Context, keys []string) (map[string]string, error) {
	results := make(map[string]string, len(keys))
	for _, key := range keys {
		value, found, err := c.lookup(key)
		if err != nil {
			return nil, err
		}
		if found {
			results[key] = value
		}
	}
	return results, nil
}
