// Package rate talks to the upstream exchange-rate API.
package rate

import (
	"context"

	"github.com/shopspring/decimal"
)

// LatestRates is the upstream answer for the most recent rates of one base.
type LatestRates struct {
	Base      string                     `json:"base"`
	Date      string                     `json:"date"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Success   bool                       `json:"success"`
	Timestamp int64                      `json:"timestamp"`
}

// TimeseriesRates maps a YYYY-MM-DD date to the rates observed that day.
type TimeseriesRates struct {
	Base      string                                `json:"base"`
	StartDate string                                `json:"start_date"`
	EndDate   string                                `json:"end_date"`
	Rates     map[string]map[string]decimal.Decimal `json:"rates"`
	Success   bool                                  `json:"success"`
}

type RateProvider interface {
	// Latest returns the current rate of symbol relative to base.
	Latest(ctx context.Context, base, symbol string) (*LatestRates, error)
	// Timeseries returns daily rates of symbol relative to base between
	// startDate and endDate inclusive. Dates are passed through unvalidated.
	Timeseries(ctx context.Context, base, symbol, startDate, endDate string) (*TimeseriesRates, error)
}
