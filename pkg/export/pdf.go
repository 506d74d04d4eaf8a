// Package export replays finished reports onto output surfaces and writes the
// evaluation history in tabular and dashboard formats.
package export

import (
	"bytes"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/r3d91ll/qmreport/pkg/draw"
	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/report"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// PDF constants for document generation.
const (
	// PDFFont is the core font used for all text. Core fonts need no embedding.
	PDFFont = "Helvetica"

	// PDFCodePage is the single-byte encoding text is translated to.
	PDFCodePage = "cp1252"
)

// PDFSurface draws commands into an fpdf document. Units are millimetres on
// A4 portrait pages.
type PDFSurface struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewPDFSurface creates an empty document with automatic page breaks off;
// pages are added only by explicit page commands.
func NewPDFSurface() *PDFSurface {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)
	return &PDFSurface{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(PDFCodePage),
	}
}

// SetMetadata copies the document identity into the PDF info dictionary.
func (s *PDFSurface) SetMetadata(doc *report.Document) {
	s.pdf.SetTitle(doc.Title, true)
	s.pdf.SetSubject(doc.ModelName, true)
	s.pdf.SetAuthor(doc.Author, true)
	s.pdf.SetCreator(doc.Creator, true)
	s.pdf.SetCreationDate(doc.GeneratedAt)
	s.pdf.SetModificationDate(doc.GeneratedAt)
}

func (s *PDFSurface) AddPage() { s.pdf.AddPage() }

func (s *PDFSurface) FillRect(x, y, w, h float64, c theme.Color) {
	r, g, b := c.Ints()
	s.pdf.SetFillColor(r, g, b)
	s.pdf.Rect(x, y, w, h, "F")
}

func (s *PDFSurface) StrokeRect(x, y, w, h float64, c theme.Color, width float64) {
	r, g, b := c.Ints()
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(width)
	s.pdf.Rect(x, y, w, h, "D")
}

func (s *PDFSurface) Line(x1, y1, x2, y2 float64, c theme.Color, width float64) {
	r, g, b := c.Ints()
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(width)
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *PDFSurface) FillCircle(x, y, radius float64, c theme.Color, alpha float64) {
	r, g, b := c.Ints()
	s.pdf.SetFillColor(r, g, b)
	if alpha < 1 {
		s.pdf.SetAlpha(alpha, "Normal")
		defer s.pdf.SetAlpha(1, "Normal")
	}
	s.pdf.Circle(x, y, radius, "F")
}

func (s *PDFSurface) Text(t draw.Text) {
	r, g, b := t.Color.Ints()
	s.pdf.SetTextColor(r, g, b)
	s.pdf.SetFont(PDFFont, string(t.Font.Style), t.Font.Size)

	body := s.translate(t.Body)
	ox := alignOffset(t.Align, s.pdf.GetStringWidth(body))

	if t.Angle == 0 {
		s.pdf.Text(t.X+ox, t.Y, body)
		return
	}
	s.pdf.TransformBegin()
	s.pdf.TransformRotate(t.Angle, t.X, t.Y)
	s.pdf.Text(t.X+ox, t.Y, body)
	s.pdf.TransformEnd()
}

func (s *PDFSurface) Err() error { return s.pdf.Error() }

// PageCount returns the number of pages added so far.
func (s *PDFSurface) PageCount() int { return s.pdf.PageCount() }

// Output writes the finished document.
func (s *PDFSurface) Output(w io.Writer) error { return s.pdf.Output(w) }

// alignOffset shifts an anchor so text of width w ends up left, centre or
// right aligned on it.
func alignOffset(a draw.Align, w float64) float64 {
	switch a {
	case draw.AlignCenter:
		return -w / 2
	case draw.AlignRight:
		return -w
	default:
		return 0
	}
}

// PDFBytes replays doc on a fresh PDF surface and returns the encoded file.
func PDFBytes(doc *report.Document) ([]byte, error) {
	if doc == nil || len(doc.Commands) == 0 {
		return nil, werrors.E(werrors.ErrEmptyDocument, "document has no drawing commands")
	}

	s := NewPDFSurface()
	s.SetMetadata(doc)
	if err := draw.Execute(s, doc.Commands); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrRenderFailed, werrors.CategoryRender, "failed to encode PDF")
	}
	return buf.Bytes(), nil
}

// RenderPDF writes doc as a PDF to w. Nothing is written unless every page
// renders.
func RenderPDF(doc *report.Document, w io.Writer) error {
	data, err := PDFBytes(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to write PDF")
	}
	return nil
}
