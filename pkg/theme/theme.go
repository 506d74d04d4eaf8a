// Package theme holds the fixed colour palette of the evaluation report.
package theme

import (
	"fmt"
	"math"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Ints returns the channels as ints, the form PDF surfaces take.
func (c Color) Ints() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Tint returns the colour at intensity t on the white→c ramp. Each channel is
// round(255 - t*(255-c)); t is clamped to [0,1].
func (c Color) Tint(t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	ch := func(v uint8) uint8 {
		return uint8(math.Round(255 - t*(255-float64(v))))
	}
	return Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

// Theme is the set of named colour roles used by every section and chart.
// It is a value: builders copy it at construction and never mutate it.
type Theme struct {
	Primary    Color
	Secondary  Color
	Accent     Color
	Background Color
	Text       Color
	LightGray  Color
	Warning    Color
	Error      Color
	White      Color
	ChartGrid  Color

	// BannerDepth is the darker band at the bottom of the title banner.
	BannerDepth Color
	// CardFill fills the summary box and recommendation cards.
	CardFill Color
	// RowAlt fills every second metrics-table row.
	RowAlt Color
}

// Default returns the report palette.
func Default() Theme {
	return Theme{
		Primary:     RGB(41, 128, 185),
		Secondary:   RGB(52, 73, 94),
		Accent:      RGB(46, 204, 113),
		Background:  RGB(248, 249, 250),
		Text:        RGB(44, 62, 80),
		LightGray:   RGB(236, 240, 241),
		Warning:     RGB(241, 196, 15),
		Error:       RGB(231, 76, 60),
		White:       RGB(255, 255, 255),
		ChartGrid:   RGB(200, 200, 200),
		BannerDepth: RGB(35, 110, 160),
		CardFill:    RGB(250, 251, 252),
		RowAlt:      RGB(248, 249, 250),
	}
}
