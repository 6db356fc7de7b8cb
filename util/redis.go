package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to addr and pings it within connectTimeout, so a
// misconfigured store fails at startup rather than on the first request.
func NewRedisClient(ctx context.Context, addr string, db int, connectTimeout time.Duration) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	timeoutCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := redisClient.Ping(timeoutCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return redisClient, nil
}
