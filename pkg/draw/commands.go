// Package draw defines the drawing vocabulary of the report: a closed set of
// commands recorded by the builder and replayed on an output Surface.
//
// Coordinates are millimetres with the origin at the top-left of the page.
// Text positions are baselines, matching PDF text placement.
package draw

import (
	"fmt"

	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Align is the horizontal anchoring of a text run relative to its X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// FontStyle is the Helvetica variant of a text run.
type FontStyle string

const (
	Normal FontStyle = ""
	Bold   FontStyle = "B"
	Italic FontStyle = "I"
)

// Font is a style plus a point size.
type Font struct {
	Style FontStyle
	Size  float64
}

// Command is one recorded drawing operation.
type Command interface {
	apply(s Surface)
}

// FillRect paints a solid rectangle.
type FillRect struct {
	X, Y, W, H float64
	Color      theme.Color
}

// StrokeRect outlines a rectangle.
type StrokeRect struct {
	X, Y, W, H float64
	Color      theme.Color
	Width      float64
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          theme.Color
	Width          float64
}

// Circle is a filled disc. Alpha below 1 draws it translucent.
type Circle struct {
	X, Y, R float64
	Color   theme.Color
	Alpha   float64
}

// Text is a single-line text run. Angle is counter-clockwise degrees around
// the anchor point.
type Text struct {
	X, Y  float64
	Body  string
	Color theme.Color
	Font  Font
	Align Align
	Angle float64
}

// NewPage starts a new page; everything after it lands on that page.
type NewPage struct{}

func (c FillRect) apply(s Surface)   { s.FillRect(c.X, c.Y, c.W, c.H, c.Color) }
func (c StrokeRect) apply(s Surface) { s.StrokeRect(c.X, c.Y, c.W, c.H, c.Color, c.Width) }
func (c Line) apply(s Surface)       { s.Line(c.X1, c.Y1, c.X2, c.Y2, c.Color, c.Width) }
func (c Circle) apply(s Surface)     { s.FillCircle(c.X, c.Y, c.R, c.Color, c.Alpha) }
func (c Text) apply(s Surface)       { s.Text(c) }
func (c NewPage) apply(s Surface)    { s.AddPage() }

// Describe returns a canonical one-line encoding of a command. Two commands
// describe equal iff they draw the same thing.
func Describe(c Command) string {
	switch v := c.(type) {
	case FillRect:
		return fmt.Sprintf("fill %.3f %.3f %.3f %.3f %s", v.X, v.Y, v.W, v.H, v.Color.Hex())
	case StrokeRect:
		return fmt.Sprintf("stroke %.3f %.3f %.3f %.3f %s %.3f", v.X, v.Y, v.W, v.H, v.Color.Hex(), v.Width)
	case Line:
		return fmt.Sprintf("line %.3f %.3f %.3f %.3f %s %.3f", v.X1, v.Y1, v.X2, v.Y2, v.Color.Hex(), v.Width)
	case Circle:
		return fmt.Sprintf("circle %.3f %.3f %.3f %s %.3f", v.X, v.Y, v.R, v.Color.Hex(), v.Alpha)
	case Text:
		return fmt.Sprintf("text %.3f %.3f %q %s %q %.1f %s %.1f",
			v.X, v.Y, v.Body, v.Color.Hex(), v.Font.Style, v.Font.Size, v.Align, v.Angle)
	case NewPage:
		return "page"
	default:
		return fmt.Sprintf("%T", c)
	}
}
