package draw

import "github.com/r3d91ll/qmreport/pkg/theme"

// DefaultBorderWidth is the stroke width of Border.
const DefaultBorderWidth = 0.5

// Recorder accumulates commands. It tracks the current text colour and font
// so sections can set them once and emit several runs, the way a PDF
// content stream does.
type Recorder struct {
	theme     theme.Theme
	cmds      []Command
	textColor theme.Color
	font      Font
}

// NewRecorder returns an empty recorder drawing with th.
func NewRecorder(th theme.Theme) *Recorder {
	return &Recorder{
		theme:     th,
		textColor: th.Text,
		font:      Font{Style: Normal, Size: 10},
	}
}

// Theme returns the palette the recorder was built with.
func (r *Recorder) Theme() theme.Theme { return r.theme }

// FillRect records a filled rectangle.
func (r *Recorder) FillRect(x, y, w, h float64, c theme.Color) {
	r.cmds = append(r.cmds, FillRect{X: x, Y: y, W: w, H: h, Color: c})
}

// BorderRect records a rectangle outline.
func (r *Recorder) BorderRect(x, y, w, h float64, c theme.Color, width float64) {
	r.cmds = append(r.cmds, StrokeRect{X: x, Y: y, W: w, H: h, Color: c, Width: width})
}

// Border records an outline in light gray at DefaultBorderWidth.
func (r *Recorder) Border(x, y, w, h float64) {
	r.BorderRect(x, y, w, h, r.theme.LightGray, DefaultBorderWidth)
}

// Line records a stroke.
func (r *Recorder) Line(x1, y1, x2, y2 float64, c theme.Color, width float64) {
	r.cmds = append(r.cmds, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

// Circle records a filled disc.
func (r *Recorder) Circle(x, y, radius float64, c theme.Color, alpha float64) {
	r.cmds = append(r.cmds, Circle{X: x, Y: y, R: radius, Color: c, Alpha: alpha})
}

// SetTextColor changes the colour of subsequent text.
func (r *Recorder) SetTextColor(c theme.Color) { r.textColor = c }

// TextColor returns the current text colour.
func (r *Recorder) TextColor() theme.Color { return r.textColor }

// SetFont changes the style and size of subsequent text.
func (r *Recorder) SetFont(style FontStyle, size float64) {
	r.font = Font{Style: style, Size: size}
}

// TextOption adjusts a single text run.
type TextOption func(*Text)

// Centered anchors the run at its horizontal centre.
func Centered() TextOption { return func(t *Text) { t.Align = AlignCenter } }

// RightAligned anchors the run at its right edge.
func RightAligned() TextOption { return func(t *Text) { t.Align = AlignRight } }

// Rotated turns the run counter-clockwise by deg degrees.
func Rotated(deg float64) TextOption { return func(t *Text) { t.Angle = deg } }

// Text records a text run in the current colour and font.
func (r *Recorder) Text(body string, x, y float64, opts ...TextOption) {
	t := Text{X: x, Y: y, Body: body, Color: r.textColor, Font: r.font}
	for _, opt := range opts {
		opt(&t)
	}
	r.cmds = append(r.cmds, t)
}

// NewPage records a page break.
func (r *Recorder) NewPage() {
	r.cmds = append(r.cmds, NewPage{})
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.cmds) }

// Since returns the commands recorded after the first n.
func (r *Recorder) Since(n int) []Command {
	if n >= len(r.cmds) {
		return nil
	}
	return append([]Command(nil), r.cmds[n:]...)
}

// Commands returns a copy of everything recorded.
func (r *Recorder) Commands() []Command {
	return append([]Command(nil), r.cmds...)
}
