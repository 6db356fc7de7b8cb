package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFreeCache() Cache {
	return NewFreeCache(freecache.NewCache(10 * 1024 * 1024))
}

func TestFreeCache_Contract(t *testing.T) {
	runContractTests(t, newTestFreeCache())
}

func TestFreeCache_Expiry(t *testing.T) {
	kv := newTestFreeCache()
	ctx := context.Background()

	t.Run("entry with ttl disappears", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "cache:USD_EUR", `{"rate":"0.93","timestamp":1}`, time.Second))

		_, err := kv.Get(ctx, "cache:USD_EUR")
		require.NoError(t, err)

		// freecache expiry has one second resolution
		time.Sleep(2 * time.Second)

		_, err = kv.Get(ctx, "cache:USD_EUR")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("non-positive expiry never expires", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "carol:currency_to", "CHF", -time.Minute))

		value, err := kv.Get(ctx, "carol:currency_to")
		require.NoError(t, err)
		assert.Equal(t, "CHF", value)
	})
}

func TestFreeCache_ParallelUsers(t *testing.T) {
	kv := newTestFreeCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			for j := range 50 {
				precision := fmt.Sprint(j % 13)
				key := user + ":currency_precision"
				assert.NoError(t, kv.Set(ctx, key, precision, 0))

				got, err := kv.Get(ctx, key)
				assert.NoError(t, err)
				assert.Equal(t, precision, got)
			}
		}(fmt.Sprintf("user%d", i))
	}
	wg.Wait()
}
