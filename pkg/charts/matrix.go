package charts

import (
	"math"
	"strconv"

	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Cell is the computed geometry and colouring of one matrix cell.
type Cell struct {
	Row, Col  int
	X, Y      float64
	Value     int
	Intensity float64
	Fill      theme.Color
	TextColor theme.Color
}

// MatrixLayout is the geometry computed by Matrix.
type MatrixLayout struct {
	CellSize float64
	StartX   float64
	StartY   float64
	Labels   []string
	Cells    []Cell
}

// Matrix draws a confusion-matrix heat grid centred in b. Cell fill runs from
// white at zero to the primary colour at the largest count. A malformed
// matrix draws nothing and returns the validation error.
func Matrix(r *draw.Recorder, m metrics.ConfusionMatrix, labels []string, b Box) (*MatrixLayout, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	th := r.Theme()
	frame(r, b)

	n := m.Size()
	fn := float64(n)
	size := math.Min((b.W-40)/fn, (b.H-40)/fn)
	out := &MatrixLayout{
		CellSize: size,
		StartX:   b.X + (b.W-size*fn)/2,
		StartY:   b.Y + (b.H-size*fn)/2,
		Labels:   metrics.DisplayLabels(n, labels),
		Cells:    make([]Cell, 0, n*n),
	}

	peak := m.Max()
	r.SetFont(draw.Bold, 8)
	for i, row := range m {
		for j, v := range row {
			intensity := 0.0
			if peak > 0 {
				intensity = float64(v) / float64(peak)
			}
			c := Cell{
				Row:       i,
				Col:       j,
				X:         out.StartX + float64(j)*size,
				Y:         out.StartY + float64(i)*size,
				Value:     v,
				Intensity: intensity,
				Fill:      th.Primary.Tint(intensity),
				TextColor: th.Text,
			}
			if intensity > 0.5 {
				c.TextColor = th.White
			}

			r.FillRect(c.X, c.Y, size, size, c.Fill)
			r.BorderRect(c.X, c.Y, size, size, th.ChartGrid, draw.DefaultBorderWidth)
			r.SetTextColor(c.TextColor)
			r.Text(strconv.Itoa(v), c.X+size/2, c.Y+size/2, draw.Centered())

			out.Cells = append(out.Cells, c)
		}
	}

	r.SetFont(draw.Normal, 8)
	r.SetTextColor(th.Text)
	bottom := out.StartY + fn*size
	for i, label := range out.Labels {
		r.Text(label, out.StartX+float64(i)*size+size/2, bottom+15, draw.Centered())
	}
	for i, label := range out.Labels {
		r.Text(label, out.StartX-5, out.StartY+float64(i)*size+size/2, draw.RightAligned())
	}

	r.SetFont(draw.Bold, 9)
	r.Text("Predicted", out.StartX+fn*size/2, bottom+25, draw.Centered())
	r.Text("Actual", out.StartX-25, out.StartY+fn*size/2, draw.Centered(), draw.Rotated(90))

	return out, nil
}
