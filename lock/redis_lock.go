package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Preference writes are a couple of round trips, so a short expiry and a
// two second wait budget are plenty.
var defaultLockConfig = lockConfig{
	expiry:     5 * time.Second,
	retryDelay: 50 * time.Millisecond,
	retries:    40,
}

type redisLock struct {
	rs *redsync.Redsync
}

// NewRedisLock builds a redsync lock on a single redis client. Keys share the
// client's keyspace, so callers should namespace them (e.g. "lock:...").
func NewRedisLock(client *redis.Client) Lock {
	return &redisLock{rs: redsync.New(goredis.NewPool(client))}
}

// Lock blocks, retrying until the key is acquired or retries run out.
func (l *redisLock) Lock(ctx context.Context, key string, opts ...LockOption) (func(context.Context) error, error) {
	cfg := resolve(opts)
	return l.acquire(ctx, key, cfg.expiry, cfg.retryDelay, cfg.retries)
}

// TryLock makes a single attempt.
func (l *redisLock) TryLock(ctx context.Context, key string, opts ...LockOption) (func(context.Context) error, error) {
	cfg := resolve(opts)
	return l.acquire(ctx, key, cfg.expiry, cfg.retryDelay, 1)
}

func resolve(opts []LockOption) lockConfig {
	cfg := defaultLockConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (l *redisLock) acquire(ctx context.Context, key string, expiry, retryDelay time.Duration, tries int) (func(context.Context) error, error) {
	if key == "" {
		return nil, ErrInvalidLockKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(expiry),
		redsync.WithRetryDelay(retryDelay),
		redsync.WithTries(max(tries, 1)),
	)
	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) || errors.Is(err, redsync.ErrFailed) {
			return nil, ErrLockNotAcquired.Wrap(err)
		}
		return nil, err
	}

	return func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		switch {
		case err != nil:
			return ErrLockNotReleased.Wrap(err)
		case !ok:
			return ErrLockNotReleased
		}
		return nil
	}, nil
}
