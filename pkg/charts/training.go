package charts

import (
	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

const (
	trainingMargin  = 15
	accuracyFloor   = 60
	accuracySpan    = 40
	trainingLineW   = 2
	trainingDotR    = 1
	gridLineWidth   = 0.2
	verticalGrids   = 5
	horizontalGrids = 4
)

// Point is a mapped chart coordinate.
type Point struct {
	X, Y float64
}

// Training draws the accuracy-over-epochs line chart and returns the mapped
// points. An empty series is replaced by metrics.FallbackTraining.
//
// Epochs map linearly from [0,100] and accuracy from [60,100] onto the plot
// area. Values outside those ranges are not clipped.
func Training(r *draw.Recorder, points []metrics.TrainingPoint, b Box) []Point {
	th := r.Theme()
	frame(r, b)

	pw := b.W - 2*trainingMargin
	ph := b.H - 2*trainingMargin

	for i := 0; i <= verticalGrids; i++ {
		gx := b.X + trainingMargin + pw/verticalGrids*float64(i)
		r.Line(gx, b.Y+trainingMargin, gx, b.Y+b.H-trainingMargin, th.ChartGrid, gridLineWidth)
	}
	for i := 0; i <= horizontalGrids; i++ {
		gy := b.Y + trainingMargin + ph/horizontalGrids*float64(i)
		r.Line(b.X+trainingMargin, gy, b.X+b.W-trainingMargin, gy, th.ChartGrid, gridLineWidth)
	}

	data := metrics.TrainingOrFallback(points)
	mapped := make([]Point, len(data))
	for i, p := range data {
		mapped[i] = Point{
			X: b.X + trainingMargin + p.Epoch/100*pw,
			Y: b.Y + b.H - trainingMargin - (p.Accuracy-accuracyFloor)/accuracySpan*ph,
		}
	}

	for i := 0; i+1 < len(mapped); i++ {
		a, c := mapped[i], mapped[i+1]
		r.Line(a.X, a.Y, c.X, c.Y, th.Primary, trainingLineW)
	}
	for _, p := range mapped {
		r.Circle(p.X, p.Y, trainingDotR, th.Primary, 1)
	}

	r.SetFont(draw.Normal, 8)
	r.SetTextColor(th.Text)
	r.Text("Epochs", b.X+b.W/2, b.Y+b.H+5, draw.Centered())
	r.Text("Accuracy (%)", b.X-5, b.Y+b.H/2, draw.Centered(), draw.Rotated(90))

	r.FillRect(b.X+b.W-60, b.Y+5, 8, 3, th.Primary)
	r.Text("Accuracy", b.X+b.W-48, b.Y+8)

	return mapped
}
