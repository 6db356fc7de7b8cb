package exchange

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/infigaming-com/xe-bot/cache"
	"github.com/infigaming-com/xe-bot/rate"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *redis.Client, cache.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client, cache.NewRedisCache(zap.NewNop(), client)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubProvider struct {
	latest      *rate.LatestRates
	series      *rate.TimeseriesRates
	err         error
	latestCalls int
	seriesCalls int
}

func (p *stubProvider) Latest(ctx context.Context, base, symbol string) (*rate.LatestRates, error) {
	p.latestCalls++
	if p.err != nil {
		return nil, p.err
	}
	return p.latest, nil
}

func (p *stubProvider) Timeseries(ctx context.Context, base, symbol, startDate, endDate string) (*rate.TimeseriesRates, error) {
	p.seriesCalls++
	if p.err != nil {
		return nil, p.err
	}
	return p.series, nil
}

type counterCall struct {
	name       string
	value      int64
	attributes map[string]string
}

type fakeRecorder struct {
	mu         sync.Mutex
	counters   []counterCall
	histograms []string
}

func (r *fakeRecorder) RecordCounter(ctx context.Context, name, description, unit string, value int64, attributes map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = append(r.counters, counterCall{name: name, value: value, attributes: attributes})
	return nil
}

func (r *fakeRecorder) RecordHistogram(ctx context.Context, name, description, unit string, value float64, attributes map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.histograms = append(r.histograms, name)
	return nil
}

func strPtr(s string) *string {
	return &s
}
