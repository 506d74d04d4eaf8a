package export

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/r3d91ll/qmreport/pkg/draw"
	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/layout"
	"github.com/r3d91ll/qmreport/pkg/report"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Preview formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// PreviewFormats lists the supported preview formats.
var PreviewFormats = []string{FormatPNG, FormatSVG}

// DefaultPreviewScale renders about 96 dpi.
const DefaultPreviewScale = 3.78

// mmPerPoint converts font sizes from points to millimetres.
const mmPerPoint = 25.4 / 72

// RasterSurface replays one page of commands onto a go-chart renderer,
// scaling millimetres to pixels.
type RasterSurface struct {
	r     chart.Renderer
	scale float64
}

// NewRasterSurface creates a white page of geometry g for the given format.
func NewRasterSurface(format string, g layout.Geometry, scale float64) (*RasterSurface, error) {
	if scale <= 0 {
		scale = DefaultPreviewScale
	}
	var provider chart.RendererProvider
	switch strings.ToLower(format) {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return nil, werrors.FormatUnsupported(format, PreviewFormats...)
	}

	w := int(math.Round(g.Width * scale))
	h := int(math.Round(g.Height * scale))
	r, err := provider(w, h)
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrRenderFailed, werrors.CategoryRender, "failed to create preview renderer")
	}
	r.SetDPI(72)
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrRenderFailed, werrors.CategoryRender, "failed to load preview font")
	}
	r.SetFont(font)

	s := &RasterSurface{r: r, scale: scale}
	s.FillRect(0, 0, g.Width, g.Height, theme.RGB(255, 255, 255))
	return s, nil
}

func (s *RasterSurface) px(v float64) int { return int(math.Round(v * s.scale)) }

func toDrawing(c theme.Color, alpha float64) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}

func (s *RasterSurface) path(x, y, w, h float64) {
	s.r.MoveTo(s.px(x), s.px(y))
	s.r.LineTo(s.px(x+w), s.px(y))
	s.r.LineTo(s.px(x+w), s.px(y+h))
	s.r.LineTo(s.px(x), s.px(y+h))
	s.r.Close()
}

// AddPage is a no-op: a raster surface holds exactly one page.
func (s *RasterSurface) AddPage() {}

func (s *RasterSurface) FillRect(x, y, w, h float64, c theme.Color) {
	s.r.ResetStyle()
	s.r.SetFillColor(toDrawing(c, 1))
	s.path(x, y, w, h)
	s.r.Fill()
}

func (s *RasterSurface) StrokeRect(x, y, w, h float64, c theme.Color, width float64) {
	s.r.ResetStyle()
	s.r.SetStrokeColor(toDrawing(c, 1))
	s.r.SetStrokeWidth(width * s.scale)
	s.path(x, y, w, h)
	s.r.Stroke()
}

func (s *RasterSurface) Line(x1, y1, x2, y2 float64, c theme.Color, width float64) {
	s.r.ResetStyle()
	s.r.SetStrokeColor(toDrawing(c, 1))
	s.r.SetStrokeWidth(width * s.scale)
	s.r.MoveTo(s.px(x1), s.px(y1))
	s.r.LineTo(s.px(x2), s.px(y2))
	s.r.Stroke()
}

func (s *RasterSurface) FillCircle(x, y, radius float64, c theme.Color, alpha float64) {
	s.r.ResetStyle()
	s.r.SetFillColor(toDrawing(c, alpha))
	s.r.Circle(radius*s.scale, s.px(x), s.px(y))
	s.r.Fill()
}

func (s *RasterSurface) Text(t draw.Text) {
	s.r.SetFontColor(toDrawing(t.Color, 1))
	s.r.SetFontSize(t.Font.Size * mmPerPoint * s.scale)

	width := float64(s.r.MeasureText(t.Body).Width())
	ox := alignOffset(t.Align, width)
	if t.Angle == 0 {
		s.r.Text(t.Body, s.px(t.X)+int(math.Round(ox)), s.px(t.Y))
		return
	}

	// Counter-clockwise in page space is a negative angle on a y-down canvas.
	rad := t.Angle * math.Pi / 180
	x := s.px(t.X) + int(math.Round(ox*math.Cos(rad)))
	y := s.px(t.Y) - int(math.Round(ox*math.Sin(rad)))
	s.r.SetTextRotation(-rad)
	s.r.Text(t.Body, x, y)
	s.r.ClearTextRotation()
}

// Err always returns nil; go-chart renderers report failures only on Save.
func (s *RasterSurface) Err() error { return nil }

// Save encodes the page.
func (s *RasterSurface) Save(w io.Writer) error {
	if err := s.r.Save(w); err != nil {
		return werrors.Wrap(err, werrors.ErrRenderFailed, werrors.CategoryRender, "failed to encode preview")
	}
	return nil
}

// RenderPreview draws page (1-based) of doc as a PNG or SVG image.
func RenderPreview(doc *report.Document, g layout.Geometry, page int, format string, scale float64, w io.Writer) error {
	pages := draw.Split(doc.Commands)
	if page < 1 || page > len(pages) {
		return werrors.Ef(werrors.ErrPageOutOfRange, "page %d is outside 1..%d", page, len(pages)).
			WithContext("page", strconv.Itoa(page)).
			WithContext("pages", strconv.Itoa(len(pages)))
	}

	s, err := NewRasterSurface(format, g, scale)
	if err != nil {
		return err
	}
	if err := draw.Execute(s, pages[page-1]); err != nil {
		return err
	}
	return s.Save(w)
}

// PreviewContentType returns the MIME type of a preview format.
func PreviewContentType(format string) string {
	if strings.ToLower(format) == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}
