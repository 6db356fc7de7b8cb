package exchange

import (
	"context"
	"strings"
	"time"

	"github.com/infigaming-com/xe-bot/util"
	"github.com/shopspring/decimal"
)

// Options are the xe command arguments as the user typed them. A nil field
// was not supplied.
type Options struct {
	From        *string
	To          *string
	Amount      *string
	Precision   *string
	Timeseries  *string
	SetDefaults bool
}

// Resolution is a fully defaulted request. Range is set only in
// time-series mode.
type Resolution struct {
	Request     ConversionRequest
	Range       *TimeseriesRequest
	SetDefaults bool
}

type Resolver struct {
	prefs          *PreferenceStore
	now            func() time.Time
	timeseriesDays int
}

type ResolverOption func(*Resolver)

func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

func WithTimeseriesDays(days int) ResolverOption {
	return func(r *Resolver) {
		if days > 0 {
			r.timeseriesDays = days
		}
	}
}

func NewResolver(prefs *PreferenceStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		prefs:          prefs,
		now:            time.Now,
		timeseriesDays: DefaultTimeseriesDays,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fills every missing field from the user's stored preferences or
// the package defaults. It never fails.
func (r *Resolver) Resolve(ctx context.Context, user string, opts Options) Resolution {
	from, fromOk := explicit(opts.From)
	to, toOk := explicit(opts.To)
	precision, precisionOk := uint(0), false
	if opts.Precision != nil {
		precision, precisionOk = parsePrecision(*opts.Precision)
	}

	if !fromOk || !toOk || !precisionOk {
		prefs := r.prefs.Load(ctx, user)
		if !fromOk {
			from = prefs.CurrencyFrom
		}
		if !toOk {
			to = prefs.CurrencyTo
		}
		if !precisionOk {
			precision = prefs.Precision
		}
	}

	amount := decimal.NewFromInt(1)
	if opts.Amount != nil {
		amount = util.DecimalOrDefault(*opts.Amount, amount)
	}

	res := Resolution{
		Request: ConversionRequest{
			From:      util.NormalizeCurrency(from),
			To:        util.NormalizeCurrency(to),
			Amount:    amount,
			Precision: precision,
		},
		SetDefaults: opts.SetDefaults,
	}
	if opts.Timeseries != nil {
		rng := r.dateRange(*opts.Timeseries)
		res.Range = &rng
	}
	return res
}

// dateRange splits "start_end" and defaults each missing bound on its own.
func (r *Resolver) dateRange(s string) TimeseriesRequest {
	today := r.now().UTC()
	rng := TimeseriesRequest{
		StartDate: today.AddDate(0, 0, -r.timeseriesDays).Format(dateLayout),
		EndDate:   today.Format(dateLayout),
	}

	tokens := strings.SplitN(s, "_", 2)
	if start := strings.TrimSpace(tokens[0]); start != "" {
		rng.StartDate = start
	}
	if len(tokens) > 1 {
		if end := strings.TrimSpace(tokens[1]); end != "" {
			rng.EndDate = end
		}
	}
	return rng
}

func explicit(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	s := util.NormalizeCurrency(*v)
	return s, s != ""
}
