package rate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/infigaming-com/xe-bot/request"
	"go.uber.org/zap"
)

const DefaultFixerURL = "https://api.apilayer.com/fixer"

type fixerRateProvider struct {
	lg       *zap.Logger
	url      string
	apiKey   string
	timeout  time.Duration
	recorder request.RequestRecorder
}

type FixerOption func(*fixerRateProvider)

func WithTimeout(timeout time.Duration) FixerOption {
	return func(p *fixerRateProvider) {
		p.timeout = timeout
	}
}

// WithRecorder observes every upstream call, e.g. to feed metrics.
func WithRecorder(recorder request.RequestRecorder) FixerOption {
	return func(p *fixerRateProvider) {
		p.recorder = recorder
	}
}

// fixerError is the error object the API returns alongside success=false.
type fixerError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// NewFixerRateProvider talks to a fixer-compatible API rooted at url,
// authenticating each call with the apiKey header.
func NewFixerRateProvider(lg *zap.Logger, url, apiKey string, opts ...FixerOption) RateProvider {
	p := &fixerRateProvider{
		lg:      lg,
		url:     strings.TrimRight(url, "/"),
		apiKey:  apiKey,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *fixerRateProvider) Latest(ctx context.Context, base, symbol string) (*LatestRates, error) {
	var result struct {
		LatestRates
		Error *fixerError `json:"error"`
	}
	if err := p.get(ctx, "/latest", map[string]string{
		"symbols": symbol,
		"base":    base,
	}, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, unsuccessful(result.Error)
	}
	return &result.LatestRates, nil
}

func (p *fixerRateProvider) Timeseries(ctx context.Context, base, symbol, startDate, endDate string) (*TimeseriesRates, error) {
	var result struct {
		TimeseriesRates
		Error *fixerError `json:"error"`
	}
	if err := p.get(ctx, "/timeseries", map[string]string{
		"symbols":    symbol,
		"base":       base,
		"start_date": startDate,
		"end_date":   endDate,
	}, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, unsuccessful(result.Error)
	}
	return &result.TimeseriesRates, nil
}

func (p *fixerRateProvider) get(ctx context.Context, path string, queryParams map[string]string, v any) error {
	opts := []request.Option{
		request.WithLogger(p.lg),
		request.WithRequestTimeout(p.timeout),
		request.WithQueryParams(queryParams),
		request.WithRequestHeaders(map[string]string{"apiKey": p.apiKey}),
	}
	if p.recorder != nil {
		opts = append(opts, request.WithRequestRecorder(p.recorder))
	}

	statusCode, responseBody, err := request.Get(ctx, p.url+path, opts...)
	if err != nil {
		return err
	}
	if statusCode != http.StatusOK {
		return ErrUnexpectedStatus.Wrap(fmt.Errorf("status code: %d, response: %s", statusCode, string(responseBody)))
	}
	if err := json.Unmarshal(responseBody, v); err != nil {
		return ErrInvalidResponse.Wrap(err)
	}
	return nil
}

func unsuccessful(e *fixerError) error {
	if e == nil {
		return ErrUnsuccessfulResponse
	}
	return ErrUnsuccessfulResponse.Wrap(fmt.Errorf("%d %s: %s", e.Code, e.Type, e.Info))
}
