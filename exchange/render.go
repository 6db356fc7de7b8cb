package exchange

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/infigaming-com/xe-bot/embed"
	"github.com/samber/lo"
)

const embedTitle = "Exchange Rate"

// Renderer turns results into embeds.
type Renderer struct {
	plotHeight int
	plotWidth  int
}

func NewRenderer() *Renderer {
	return &Renderer{
		plotHeight: 10,
		plotWidth:  40,
	}
}

// RenderRate prints "{amount} {from} --> {converted} {to}" with the
// converted value fixed to the request precision, capped at MaxPrecision.
func (r *Renderer) RenderRate(result *ConversionResult) embed.Embed {
	req := result.Request
	precision := min(req.Precision, MaxPrecision)

	return embed.New(embedTitle, fmt.Sprintf("%s %s --> %s %s",
		req.Amount.String(),
		req.From,
		result.Converted.StringFixed(int32(precision)),
		req.To,
	), embed.ColorXE)
}

func (r *Renderer) RenderTimeseries(result *TimeseriesResult) embed.Embed {
	data := lo.Map(result.Points, func(p Point, _ int) float64 {
		return p.Rate.InexactFloat64()
	})

	opts := []asciigraph.Option{
		asciigraph.Height(r.plotHeight),
		asciigraph.Precision(min(result.Request.Precision, MaxPrecision)),
		asciigraph.Caption(fmt.Sprintf("%s --> %s (%s - %s)",
			result.Request.From, result.Request.To, result.Range.StartDate, result.Range.EndDate)),
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.Width(r.plotWidth))
	}
	plot := asciigraph.Plot(data, opts...)

	return embed.New(embedTitle, "```\n"+plot+"\n```", embed.ColorXE).
		WithField("Min", result.Min.StringFixed(2), true).
		WithField("Max", result.Max.StringFixed(2), true)
}

func (r *Renderer) RenderDefaultsUpdated() embed.Embed {
	return embed.New(embedTitle, "Defaults have been updated", embed.ColorXE)
}
