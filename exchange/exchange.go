// Package exchange converts between currencies on behalf of chat users. It
// resolves per-user defaults, serves rates and time-series windows from the
// key-value store when it can and from the upstream rate API when it must,
// and renders the result as an embed.
package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultFrom           = "USD"
	DefaultTo             = "JPY"
	DefaultRateTTL        = 4 * time.Hour
	DefaultTimeseriesDays = 14
	dateLayout            = "2006-01-02"
)

const (
	DefaultPrecision uint = 4
	MaxPrecision     uint = 12
)

type ConversionRequest struct {
	From      string
	To        string
	Amount    decimal.Decimal
	Precision uint
}

// TimeseriesRequest is an inclusive YYYY-MM-DD date range. Neither bound is
// validated; the upstream API rejects what it cannot parse.
type TimeseriesRequest struct {
	StartDate string
	EndDate   string
}

type UserPreferences struct {
	CurrencyFrom string
	CurrencyTo   string
	Precision    uint
}

type ConversionResult struct {
	Request   ConversionRequest
	Rate      decimal.Decimal
	Converted decimal.Decimal
}

type Point struct {
	Date string
	Rate decimal.Decimal
}

type TimeseriesResult struct {
	Request ConversionRequest
	Range   TimeseriesRequest
	// Points are ordered by date.
	Points []Point
	Min    decimal.Decimal
	Max    decimal.Decimal
}

func defaultPreferences() UserPreferences {
	return UserPreferences{
		CurrencyFrom: DefaultFrom,
		CurrencyTo:   DefaultTo,
		Precision:    DefaultPrecision,
	}
}
