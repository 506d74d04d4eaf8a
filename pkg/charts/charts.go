// Package charts draws the report's three charts with draw primitives.
//
// Each rasterizer is a pure function of its input and bounding box: it appends
// commands to the recorder and returns the geometry it computed, so callers
// and tests can inspect the mapping without replaying the commands.
package charts

import (
	"github.com/r3d91ll/qmreport/pkg/draw"
)

// Box is a chart's bounding box in millimetres.
type Box struct {
	X, Y, W, H float64
}

// frame paints the white chart background with a grid-coloured border.
func frame(r *draw.Recorder, b Box) {
	th := r.Theme()
	r.FillRect(b.X, b.Y, b.W, b.H, th.White)
	r.BorderRect(b.X, b.Y, b.W, b.H, th.ChartGrid, draw.DefaultBorderWidth)
}
