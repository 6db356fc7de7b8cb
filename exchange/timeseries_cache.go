package exchange

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/infigaming-com/xe-bot/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Series maps a YYYY-MM-DD date to the rates published for it.
type Series map[string]map[string]decimal.Decimal

// storedSeries is the on-store form of Series with rates as bare JSON numbers.
type storedSeries map[string]map[string]json.Number

func (s Series) stored() storedSeries {
	out := make(storedSeries, len(s))
	for date, rates := range s {
		day := make(map[string]json.Number, len(rates))
		for code, r := range rates {
			day[code] = json.Number(r.String())
		}
		out[date] = day
	}
	return out
}

func (s storedSeries) series() (Series, error) {
	out := make(Series, len(s))
	for date, rates := range s {
		day := make(map[string]decimal.Decimal, len(rates))
		for code, n := range rates {
			r, err := decimal.NewFromString(n.String())
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", date, code, err)
			}
			day[code] = r
		}
		out[date] = day
	}
	return out, nil
}

// TimeseriesCache keeps upstream time-series responses keyed by the exact
// window and pair requested. Entries never expire.
type TimeseriesCache struct {
	lg    *zap.Logger
	store cache.Cache
}

func NewTimeseriesCache(lg *zap.Logger, store cache.Cache) *TimeseriesCache {
	return &TimeseriesCache{
		lg:    lg,
		store: store,
	}
}

func timeseriesCacheKey(start, end, from, to string) string {
	return fmt.Sprintf("timeseries_cache:%s_%s_%s_%s", start, end, from, to)
}

func (c *TimeseriesCache) Lookup(ctx context.Context, start, end, from, to string) (Series, bool) {
	key := timeseriesCacheKey(start, end, from, to)
	stored, err := cache.GetTyped[storedSeries](ctx, c.store, key)
	if err == nil {
		var series Series
		if series, err = stored.series(); err == nil {
			return series, true
		}
	}
	if !stderrors.Is(err, cache.ErrKeyNotFound) {
		c.lg.Warn("failed to read timeseries cache", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

// Store writes series unless it is empty.
func (c *TimeseriesCache) Store(ctx context.Context, start, end, from, to string, series Series) error {
	if len(series) == 0 {
		return nil
	}
	if err := cache.SetTyped(ctx, c.store, timeseriesCacheKey(start, end, from, to), series.stored(), 0); err != nil {
		return ErrStoreWrite.Wrap(err)
	}
	return nil
}
