package exchange

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/infigaming-com/xe-bot/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// rateCacheEntry is written with a bare JSON number for rate. Entries
// written with a quoted decimal still decode.
type rateCacheEntry struct {
	Rate      json.Number `json:"rate"`
	Timestamp int64       `json:"timestamp"`
}

// RateCache holds the latest from->to rate. Entries are stored without a
// backend expiry; freshness is decided on read against the entry timestamp,
// and stale entries stay in place until overwritten.
type RateCache struct {
	lg    *zap.Logger
	store cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

type RateCacheOption func(*RateCache)

func WithTTL(ttl time.Duration) RateCacheOption {
	return func(c *RateCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) RateCacheOption {
	return func(c *RateCache) {
		c.now = now
	}
}

func NewRateCache(lg *zap.Logger, store cache.Cache, opts ...RateCacheOption) *RateCache {
	c := &RateCache{
		lg:    lg,
		store: store,
		ttl:   DefaultRateTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func rateCacheKey(from, to string) string {
	return fmt.Sprintf("cache:%s_%s", from, to)
}

// Lookup returns the cached rate if it is younger than the TTL. Absent,
// stale and undecodable entries, and store errors, are all misses.
func (c *RateCache) Lookup(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	key := rateCacheKey(from, to)
	entry, err := cache.GetTyped[rateCacheEntry](ctx, c.store, key)
	if err != nil {
		if !stderrors.Is(err, cache.ErrKeyNotFound) {
			c.lg.Warn("failed to read rate cache", zap.String("key", key), zap.Error(err))
		}
		return decimal.Zero, false
	}

	age := c.now().Unix() - entry.Timestamp
	if age >= int64(c.ttl/time.Second) {
		return decimal.Zero, false
	}
	r, err := decimal.NewFromString(entry.Rate.String())
	if err != nil {
		c.lg.Warn("invalid rate in rate cache", zap.String("key", key), zap.String("rate", entry.Rate.String()))
		return decimal.Zero, false
	}
	return r, true
}

func (c *RateCache) Store(ctx context.Context, from, to string, rate decimal.Decimal) error {
	entry := rateCacheEntry{
		Rate:      json.Number(rate.String()),
		Timestamp: c.now().Unix(),
	}
	if err := cache.SetTyped(ctx, c.store, rateCacheKey(from, to), entry, 0); err != nil {
		return ErrStoreWrite.Wrap(err)
	}
	return nil
}
