package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateEntry struct {
	Rate      float64 `json:"rate"`
	Timestamp int64   `json:"timestamp"`
}

// runContractTests exercises behaviour every backend must share.
func runContractTests(t *testing.T, cache Cache) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "alice:currency_from", "EUR", 0))

		value, err := cache.Get(ctx, "alice:currency_from")
		assert.NoError(t, err)
		assert.Equal(t, "EUR", value)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "cache:USD_JPY", "first", 0))
		require.NoError(t, cache.Set(ctx, "cache:USD_JPY", "second", 0))

		value, err := cache.Get(ctx, "cache:USD_JPY")
		assert.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("missing key", func(t *testing.T) {
		value, err := cache.Get(ctx, "non-existing-key")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.Empty(t, value)
	})

	t.Run("empty value is not missing", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "empty-value-key", "", time.Minute))

		value, err := cache.Get(ctx, "empty-value-key")
		assert.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("sets and gets with a missing key", func(t *testing.T) {
		kvs := map[string]string{
			"bob:currency_from":      "GBP",
			"bob:currency_to":        "CAD",
			"bob:currency_precision": "2",
		}
		require.NoError(t, cache.Sets(ctx, kvs, 0))

		results, err := cache.Gets(ctx, []string{"bob:currency_from", "bob:currency_to", "bob:currency_precision", "bob:unknown"})
		require.NoError(t, err)
		assert.Equal(t, kvs, results)
	})

	t.Run("gets with empty keys slice", func(t *testing.T) {
		results, err := cache.Gets(ctx, []string{})
		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("sets with empty map", func(t *testing.T) {
		assert.NoError(t, cache.Sets(ctx, map[string]string{}, 0))
	})

	t.Run("typed round trip", func(t *testing.T) {
		entry := rateEntry{Rate: 1.6, Timestamp: 1700000000}
		require.NoError(t, SetTyped(ctx, cache, "cache:EUR_AUD", entry, 0))

		got, err := GetTyped[rateEntry](ctx, cache, "cache:EUR_AUD")
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	t.Run("typed get of malformed value", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "cache:BAD_VALUE", "{not json", 0))

		_, err := GetTyped[rateEntry](ctx, cache, "cache:BAD_VALUE")
		assert.ErrorIs(t, err, ErrJsonUnmarshal)
	})

	t.Run("typed get of missing key", func(t *testing.T) {
		_, err := GetTyped[rateEntry](ctx, cache, "cache:NONE_NONE")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})
}
