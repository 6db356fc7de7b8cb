package interaction

import (
	"context"
	"strings"

	"github.com/infigaming-com/xe-bot/embed"
	"github.com/infigaming-com/xe-bot/exchange"
	"github.com/infigaming-com/xe-bot/util"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	xeOptionFrom        = "from"
	xeOptionTo          = "to"
	xeOptionAmount      = "amount"
	xeOptionPrecision   = "precision"
	xeOptionTimeseries  = "timeseries"
	xeOptionSetDefaults = "set_defaults"
)

// XECommand is /xe: a single conversion, a time-series graph, or an update
// of the caller's defaults, depending on the options given.
type XECommand struct {
	lg       *zap.Logger
	resolver *exchange.Resolver
	prefs    *exchange.PreferenceStore
	service  *exchange.Service
	renderer *exchange.Renderer
}

func NewXECommand(lg *zap.Logger, resolver *exchange.Resolver, prefs *exchange.PreferenceStore, service *exchange.Service, renderer *exchange.Renderer) *XECommand {
	return &XECommand{
		lg:       lg,
		resolver: resolver,
		prefs:    prefs,
		service:  service,
		renderer: renderer,
	}
}

func (c *XECommand) Name() string {
	return "xe"
}

func (c *XECommand) Description() string {
	return "Convert from one currency to another"
}

func (c *XECommand) Options() []CommandOption {
	currencies := lo.Map(util.KnownCurrencies, func(code string, _ int) Choice {
		return Choice{Name: code, Value: code}
	})

	return []CommandOption{
		{
			Name:        xeOptionFrom,
			Description: "The currency to convert from (Default USD)",
			Type:        OptionString,
			Choices:     currencies,
		},
		{
			Name:        xeOptionTo,
			Description: "The currency to convert to (Default JPY)",
			Type:        OptionString,
			Choices:     currencies,
		},
		{
			Name:        xeOptionAmount,
			Description: "The amount of the currency (Number)",
			Type:        OptionString,
		},
		{
			Name:        xeOptionPrecision,
			Description: "Precision of the decimal points (max 12, default: 4)",
			Type:        OptionString,
		},
		{
			Name:        xeOptionTimeseries,
			Description: "Get a timeseries graph of historical data (format: YYYY-MM-DD_YYYY-MM-DD)",
			Type:        OptionString,
		},
		{
			Name:        xeOptionSetDefaults,
			Description: "Set the default currencies for this user",
			Type:        OptionString,
			Choices: []Choice{
				{Name: "True", Value: "True"},
				{Name: "False", Value: "False"},
			},
		},
	}
}

func (c *XECommand) Respond(ctx context.Context, options []DataOption) (*MessageData, error) {
	user, err := util.UsernameFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	res := c.resolver.Resolve(ctx, user, parseXEOptions(options))
	req := res.Request

	var e embed.Embed
	switch {
	case res.SetDefaults:
		if err := c.prefs.SetDefaults(ctx, user, req.From, req.To, req.Precision); err != nil {
			return nil, err
		}
		c.lg.Info("defaults updated",
			zap.String("user", user),
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Uint("precision", req.Precision),
		)
		e = c.renderer.RenderDefaultsUpdated()

	case res.Range != nil:
		result, err := c.service.Timeseries(ctx, req, *res.Range)
		if err != nil {
			return nil, err
		}
		e = c.renderer.RenderTimeseries(result)

	default:
		result, err := c.service.Rate(ctx, req)
		if err != nil {
			return nil, err
		}
		e = c.renderer.RenderRate(result)
	}

	return &MessageData{Embeds: []embed.Embed{e}}, nil
}

// Autocomplete offers no suggestions; every xe option is free text or a
// fixed choice list.
func (c *XECommand) Autocomplete(ctx context.Context, options []DataOption) (*AutocompleteData, error) {
	return &AutocompleteData{Choices: []Choice{}}, nil
}

// parseXEOptions keeps the recognised option names and drops the rest.
// timeseries switches mode by presence alone; set_defaults is on when its
// value contains "True" (or is a boolean true).
func parseXEOptions(options []DataOption) exchange.Options {
	m := optionMap(options)
	lookup := func(name string) *string {
		if v, ok := util.GetMapString(m, name); ok {
			return &v
		}
		return nil
	}

	opts := exchange.Options{
		From:       lookup(xeOptionFrom),
		To:         lookup(xeOptionTo),
		Amount:     lookup(xeOptionAmount),
		Precision:  lookup(xeOptionPrecision),
		Timeseries: lookup(xeOptionTimeseries),
	}
	if v := lookup(xeOptionSetDefaults); v != nil {
		opts.SetDefaults = strings.Contains(*v, "True") || *v == "true"
	}
	return opts
}
