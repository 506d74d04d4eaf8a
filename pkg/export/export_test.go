package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/r3d91ll/qmreport/pkg/draw"
	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/layout"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func buildDoc(t *testing.T, req report.Request) *report.Document {
	t.Helper()
	doc, err := report.NewBuilder().
		WithClock(func() time.Time { return fixedTime }).
		Build(req)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return doc
}

func fullRequest() report.Request {
	return report.Request{
		Metrics: metrics.Scores{Accuracy: 0.91, Precision: 0.9, Recall: 0.89, Specificity: 0.92, F1: 0.9}.
			Records(metrics.DefaultThreshold()),
		ModelName: "SoloQ on Astronomy (Phantom)",
		Charts: &report.ChartData{
			TrainingProgress: []metrics.TrainingPoint{},
			ConfusionMatrix:  metrics.ConfusionMatrix{{55, 1}, {12, 52}},
			ConfusionLabels:  []string{"NonPulsar", "Pulsar"},
		},
	}
}

// -----------------------------------------------------------------------------
// PDF
// -----------------------------------------------------------------------------

func TestPDFBytes(t *testing.T) {
	doc := buildDoc(t, fullRequest())
	data, err := PDFBytes(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestPDFSurfacePageCount(t *testing.T) {
	doc := buildDoc(t, fullRequest())
	s := NewPDFSurface()
	if err := draw.Execute(s, doc.Commands); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PageCount() != doc.Pages {
		t.Errorf("expected %d pages, got %d", doc.Pages, s.PageCount())
	}
}

func TestRenderPDFEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&report.Document{}, &buf)
	if !werrors.IsCode(err, werrors.ErrEmptyDocument) {
		t.Errorf("expected DOCUMENT_EMPTY, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no bytes written, got %d", buf.Len())
	}
}

func TestAlignOffset(t *testing.T) {
	tests := []struct {
		align draw.Align
		want  float64
	}{
		{draw.AlignLeft, 0},
		{draw.AlignCenter, -5},
		{draw.AlignRight, -10},
	}
	for _, tt := range tests {
		if got := alignOffset(tt.align, 10); got != tt.want {
			t.Errorf("alignOffset(%s) = %v, want %v", tt.align, got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------
// Previews
// -----------------------------------------------------------------------------

func TestRenderPreviewFormats(t *testing.T) {
	doc := buildDoc(t, fullRequest())

	var png bytes.Buffer
	if err := RenderPreview(doc, layout.A4(), 1, FormatPNG, 1, &png); err != nil {
		t.Fatalf("png preview failed: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG signature")
	}

	var svg bytes.Buffer
	if err := RenderPreview(doc, layout.A4(), doc.Pages, FormatSVG, 1, &svg); err != nil {
		t.Fatalf("svg preview failed: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("expected an svg element")
	}
}

func TestRenderPreviewErrors(t *testing.T) {
	doc := buildDoc(t, report.Request{})

	var buf bytes.Buffer
	if err := RenderPreview(doc, layout.A4(), doc.Pages+1, FormatPNG, 1, &buf); !werrors.IsCode(err, werrors.ErrPageOutOfRange) {
		t.Errorf("expected PREVIEW_PAGE_OUT_OF_RANGE, got %v", err)
	}
	if err := RenderPreview(doc, layout.A4(), 0, FormatPNG, 1, &buf); !werrors.IsCode(err, werrors.ErrPageOutOfRange) {
		t.Errorf("expected PREVIEW_PAGE_OUT_OF_RANGE for page 0, got %v", err)
	}
	if err := RenderPreview(doc, layout.A4(), 1, "gif", 1, &buf); !werrors.IsCode(err, werrors.ErrFormatUnsupported) {
		t.Errorf("expected FORMAT_UNSUPPORTED, got %v", err)
	}
}

func TestPreviewContentType(t *testing.T) {
	if PreviewContentType("SVG") != "image/svg+xml" || PreviewContentType("png") != "image/png" {
		t.Error("unexpected content types")
	}
}

// -----------------------------------------------------------------------------
// Fingerprint
// -----------------------------------------------------------------------------

func TestFingerprint(t *testing.T) {
	a := Fingerprint(buildDoc(t, fullRequest()))
	b := Fingerprint(buildDoc(t, fullRequest()))
	if a != b {
		t.Error("identical inputs produced different fingerprints")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}

	req := fullRequest()
	req.ModelName = "QAOA"
	if Fingerprint(buildDoc(t, req)) == a {
		t.Error("different inputs produced the same fingerprint")
	}
	if ShortFingerprint(a) != a[:8] {
		t.Error("short fingerprint is not a prefix")
	}
}

// -----------------------------------------------------------------------------
// History exports
// -----------------------------------------------------------------------------

func TestWriteHistoryCSV(t *testing.T) {
	records := history.NewStaticStore().List()

	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, records, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(records)+1 {
		t.Fatalf("expected %d lines, got %d", len(records)+1, len(lines))
	}
	if lines[0] != strings.Join(historyColumns, ",") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025-09-09T13:33:52Z,SoloQ,final_SoloQ_model_.pkl,test.csv,0.880000,0.975000") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestWriteHistoryCSVTSV(t *testing.T) {
	cfg := DefaultCSVConfig()
	cfg.Dialect = DialectTSV
	cfg.IncludeHeader = false
	cfg.Precision = 2

	var buf bytes.Buffer
	rec := history.Record{ModelType: "QAOA", Result: metrics.Scores{Accuracy: 0.75}}
	if err := WriteHistoryCSV(&buf, []history.Record{rec}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "NA\tNA\tQAOA\tNA\tNA\t0.75\t0.00\t0.00\t0.00\t0.00\n"
	if buf.String() != want {
		t.Errorf("unexpected row %q", buf.String())
	}
}

func TestWriteHistoryXLSX(t *testing.T) {
	store := history.NewStaticStore()

	var buf bytes.Buffer
	if err := WriteHistoryXLSX(&buf, store.List(), store.Summaries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetHistory || sheets[1] != SheetSummary {
		t.Errorf("unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(SheetHistory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != store.Count()+1 {
		t.Errorf("expected %d history rows, got %d", store.Count()+1, len(rows))
	}
	summary, _ := f.GetRows(SheetSummary)
	if len(summary) != 3 || summary[1][0] != "QAOA" {
		t.Errorf("unexpected summary rows %v", summary)
	}
}

func TestWriteHistoryDashboard(t *testing.T) {
	store := history.NewStaticStore()

	var buf bytes.Buffer
	if err := WriteHistoryDashboard(&buf, store.List(), store.Summaries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()
	for _, want := range []string{DashboardTitle, "Accuracy per Evaluation", "Mean Scores by Model"} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}
