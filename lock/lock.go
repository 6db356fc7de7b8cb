// Package lock serialises work on a key across processes.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/infigaming-com/xe-bot/errors"
)

const (
	ErrCodeInvalidLockKey = 10400 + iota
	ErrCodeLockNotAcquired
	ErrCodeLockNotReleased
)

var (
	ErrInvalidLockKey  = errors.NewError(ErrCodeInvalidLockKey, "invalid lock key", nil)
	ErrLockNotAcquired = errors.NewError(ErrCodeLockNotAcquired, "lock not acquired", nil)
	ErrLockNotReleased = errors.NewError(ErrCodeLockNotReleased, "lock not released", nil)
)

// Lock hands out a release func on success. Release takes its own context
// so that a cancelled request can still unlock.
type Lock interface {
	Lock(ctx context.Context, key string, opts ...LockOption) (func(context.Context) error, error)
	TryLock(ctx context.Context, key string, opts ...LockOption) (func(context.Context) error, error)
}

type lockConfig struct {
	expiry     time.Duration
	retryDelay time.Duration
	retries    int
}

type LockOption func(*lockConfig)

// WithExpiry bounds how long a holder keeps the key if it never releases.
func WithExpiry(expiry time.Duration) LockOption {
	return func(c *lockConfig) { c.expiry = expiry }
}

func WithRetryDelay(retryDelay time.Duration) LockOption {
	return func(c *lockConfig) { c.retryDelay = retryDelay }
}

func WithRetries(retries int) LockOption {
	return func(c *lockConfig) { c.retries = retries }
}

// WithLock runs fn while holding key. A nil l runs fn unguarded.
func WithLock(ctx context.Context, l Lock, key string, fn func(context.Context) error, opts ...LockOption) (err error) {
	if l == nil {
		return fn(ctx)
	}

	release, err := l.Lock(ctx, key, opts...)
	if err != nil {
		return fmt.Errorf("acquire %s: %w", key, err)
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil && err == nil {
			err = fmt.Errorf("release %s: %w", key, releaseErr)
		}
	}()

	return fn(ctx)
}
