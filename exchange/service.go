package exchange

import (
	"context"
	"fmt"
	"sort"

	"github.com/infigaming-com/xe-bot/observability/metrics"
	"github.com/infigaming-com/xe-bot/rate"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	metricRateCacheLookups       = "xe.rate_cache.lookups"
	metricTimeseriesCacheLookups = "xe.timeseries_cache.lookups"
)

// Service answers conversion and time-series requests, consulting the
// caches before the upstream provider and writing fresh upstream answers
// back. Concurrent misses for one key both fetch; the last write wins.
type Service struct {
	lg       *zap.Logger
	provider rate.RateProvider
	rates    *RateCache
	series   *TimeseriesCache
	recorder metrics.Recorder
}

type ServiceOption func(*Service)

// WithMetrics records cache hit and miss counters on recorder.
func WithMetrics(recorder metrics.Recorder) ServiceOption {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func NewService(lg *zap.Logger, provider rate.RateProvider, rates *RateCache, series *TimeseriesCache, opts ...ServiceOption) *Service {
	s := &Service{
		lg:       lg,
		provider: provider,
		rates:    rates,
		series:   series,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Rate(ctx context.Context, req ConversionRequest) (*ConversionResult, error) {
	r, hit := s.rates.Lookup(ctx, req.From, req.To)
	s.recordLookup(ctx, metricRateCacheLookups, "rate cache lookups", hit)

	if !hit {
		latest, err := s.provider.Latest(ctx, req.From, req.To)
		if err != nil {
			return nil, ErrUpstream.Wrap(err)
		}
		var ok bool
		r, ok = latest.Rates[req.To]
		if !ok {
			return nil, ErrUpstream.Wrap(fmt.Errorf("no %s rate for base %s", req.To, req.From))
		}
		if err := s.rates.Store(ctx, req.From, req.To, r); err != nil {
			return nil, err
		}
	}

	return &ConversionResult{
		Request:   req,
		Rate:      r,
		Converted: req.Amount.Mul(r),
	}, nil
}

func (s *Service) Timeseries(ctx context.Context, req ConversionRequest, rng TimeseriesRequest) (*TimeseriesResult, error) {
	series, hit := s.series.Lookup(ctx, rng.StartDate, rng.EndDate, req.From, req.To)
	s.recordLookup(ctx, metricTimeseriesCacheLookups, "timeseries cache lookups", hit)

	if !hit {
		fetched, err := s.provider.Timeseries(ctx, req.From, req.To, rng.StartDate, rng.EndDate)
		if err != nil {
			return nil, ErrUpstream.Wrap(err)
		}
		series = fetched.Rates
		if err := s.series.Store(ctx, rng.StartDate, rng.EndDate, req.From, req.To, series); err != nil {
			return nil, err
		}
	}

	points := pointsFor(series, req.To)
	if len(points) == 0 {
		return nil, ErrUpstream.Wrap(fmt.Errorf("no %s rates between %s and %s", req.To, rng.StartDate, rng.EndDate))
	}

	return &TimeseriesResult{
		Request: req,
		Range:   rng,
		Points:  points,
		Min:     lo.MinBy(points, func(a, b Point) bool { return a.Rate.LessThan(b.Rate) }).Rate,
		Max:     lo.MaxBy(points, func(a, b Point) bool { return a.Rate.GreaterThan(b.Rate) }).Rate,
	}, nil
}

// pointsFor extracts the rate for code on each date, skipping dates that do
// not carry it, ordered by date.
func pointsFor(series Series, code string) []Point {
	points := make([]Point, 0, len(series))
	for date, rates := range series {
		if r, ok := rates[code]; ok {
			points = append(points, Point{Date: date, Rate: r})
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

func (s *Service) recordLookup(ctx context.Context, name, description string, hit bool) {
	if s.recorder == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	if err := s.recorder.RecordCounter(ctx, name, description, "1", 1, map[string]string{"result": result}); err != nil {
		s.lg.Warn("failed to record metric", zap.String("metric", name), zap.Error(err))
	}
}
