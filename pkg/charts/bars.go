package charts

import (
	"strconv"

	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

const (
	barMargin = 20
	barGap    = 5
	yTicks    = 4
)

// Bar is the computed geometry of one metric bar.
type Bar struct {
	Name   string
	X, Y   float64
	W, H   float64
	Color  theme.Color
	Value  string
	ValueX float64
	ValueY float64
	LabelX float64
	LabelY float64
}

// Bars draws one bar per record, left to right in input order, coloured by
// the record's threshold band, and returns the bar geometry.
func Bars(r *draw.Recorder, records []metrics.Record, b Box) []Bar {
	th := r.Theme()
	frame(r, b)

	ch := b.H - 2*barMargin
	bars := make([]Bar, 0, len(records))
	if n := len(records); n > 0 {
		bw := (b.W-2*barMargin)/float64(n) - barGap
		for i, rec := range records {
			bh := rec.Value / 100 * ch
			bar := Bar{
				Name:  rec.Name,
				X:     b.X + barMargin + float64(i)*(bw+barGap),
				Y:     b.Y + b.H - barMargin - bh,
				W:     bw,
				H:     bh,
				Color: rec.Status().Color(th),
				Value: metrics.FormatPercent(rec.Value),
			}
			bar.ValueX = bar.X + bw/2
			bar.ValueY = bar.Y + bh/2
			bar.LabelX = bar.X + bw/2
			bar.LabelY = b.Y + b.H - 5

			r.FillRect(bar.X, bar.Y, bar.W, bar.H, bar.Color)
			r.BorderRect(bar.X, bar.Y, bar.W, bar.H, th.Secondary, draw.DefaultBorderWidth)

			r.SetFont(draw.Bold, 8)
			r.SetTextColor(th.White)
			r.Text(bar.Value, bar.ValueX, bar.ValueY, draw.Centered())

			r.SetFont(draw.Normal, 8)
			r.SetTextColor(th.Text)
			r.Text(bar.Name, bar.LabelX, bar.LabelY, draw.Centered(), draw.Rotated(45))

			bars = append(bars, bar)
		}
	}

	r.SetFont(draw.Normal, 7)
	r.SetTextColor(th.Text)
	for i := 0; i <= yTicks; i++ {
		label := strconv.Itoa(i * 25)
		ty := b.Y + b.H - barMargin - float64(i)*ch/yTicks
		r.Text(label, b.X+barMargin-5, ty, draw.RightAligned())
	}
	return bars
}
