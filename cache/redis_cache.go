package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisCache struct {
	lg     *zap.Logger
	client *redis.Client
}

// NewRedisCache uses an already connected client; see util.NewRedisClient.
// The caller owns the client and closes it.
func NewRedisCache(lg *zap.Logger, client *redis.Client) Cache {
	return &redisCache{
		lg:     lg,
		client: client,
	}
}

func (c *redisCache) Set(ctx context.Context, key string, value string, expiry time.Duration) error {
	if err := c.client.Set(ctx, key, value, expiry).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrKeyNotFound
	case err != nil:
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Sets sends all writes in one MULTI/EXEC round trip.
func (c *redisCache) Sets(ctx context.Context, kvs map[string]string, expiry time.Duration) error {
	if len(kvs) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range kvs {
			pipe.Set(ctx, key, value, expiry)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis sets (%d keys): %w", len(kvs), err)
	}
	return nil
}

// Gets reads every key with a single MGET.
func (c *redisCache) Gets(ctx context.Context, keys []string) (map[string]string, error) {
	results := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return results, nil
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return results, fmt.Errorf("redis mget (%d keys): %w", len(keys), err)
	}

	for i, value := range values {
		switch v := value.(type) {
		case nil:
		case string:
			results[keys[i]] = v
		default:
			c.lg.Warn("unexpected mget value type", zap.String("key", keys[i]), zap.Any("value", v))
		}
	}
	return results, nil
}
