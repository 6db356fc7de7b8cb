// Package cache is the key-value namespace the bot persists to: user
// preferences, rate entries and time-series windows all live here as text
// values under string keys.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a text key-value store. Get reports a missing key as
// ErrKeyNotFound. An expiry of zero stores the value without a backend TTL.
type Cache interface {
	Set(ctx context.Context, key string, value string, expiry time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// Sets writes all pairs with the same expiry. Atomicity is backend specific.
	Sets(ctx context.Context, kvs map[string]string, expiry time.Duration) error
	// Gets returns the subset of keys that exist. Missing keys are omitted.
	Gets(ctx context.Context, keys []string) (map[string]string, error)
}

func SetTyped[T any](ctx context.Context, cache Cache, key string, value T, expiry time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return ErrJsonMarshal.Wrap(err)
	}

	return cache.Set(ctx, key, string(data), expiry)
}

func GetTyped[T any](ctx context.Context, cache Cache, key string) (T, error) {
	var result T

	value, err := cache.Get(ctx, key)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return result, ErrJsonUnmarshal.Wrap(err)
	}

	return result, nil
}
