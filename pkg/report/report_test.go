package report

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/r3d91ll/qmreport/pkg/draw"
	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

var fixedNow = time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)

func testBuilder() *Builder {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return NewBuilder().WithConfig(cfg).WithClock(func() time.Time { return fixedNow })
}

func accuracy(v float64) metrics.Record {
	return metrics.Record{Name: "Accuracy", Value: v, Threshold: &metrics.Threshold{Good: 90, Warning: 70}}
}

func texts(cmds []draw.Command) []draw.Text {
	var out []draw.Text
	for _, c := range cmds {
		if t, ok := c.(draw.Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func findText(cmds []draw.Command, body string) (draw.Text, bool) {
	for _, t := range texts(cmds) {
		if t.Body == body {
			return t, true
		}
	}
	return draw.Text{}, false
}

// ---- End-to-End Tests ----

func TestBuildSingleMetricWithoutCharts(t *testing.T) {
	doc, err := testBuilder().Build(Request{
		Metrics:   []metrics.Record{accuracy(87.65)},
		ModelName: "Test Model",
		Timestamp: "Jan 1, 2025",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Pages < 1 {
		t.Fatalf("expected at least 1 page, got %d", doc.Pages)
	}
	if !doc.HasSection(SectionMetrics) {
		t.Error("expected metrics table section")
	}
	for _, s := range []string{SectionTraining, SectionComparison, SectionConfusion} {
		if doc.HasSection(s) {
			t.Errorf("expected %s to be skipped", s)
		}
	}

	th := theme.Default()
	status, ok := findText(doc.Commands, "Good")
	if !ok {
		t.Fatal("expected a Good status cell")
	}
	if status.Color != th.Warning {
		t.Errorf("expected warning color for Good, got %v", status.Color)
	}
	if _, ok := findText(doc.Commands, "Test Model"); !ok {
		t.Error("expected model name in info card")
	}
	if _, ok := findText(doc.Commands, "Jan 1, 2025"); !ok {
		t.Error("expected supplied timestamp in info card")
	}
	if doc.Filename != "Quantum_Model_Evaluation_2025-01-02.pdf" {
		t.Errorf("unexpected filename %s", doc.Filename)
	}
}

func TestBuildDefaults(t *testing.T) {
	doc, err := testBuilder().Build(Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.HasSection(SectionMetrics) {
		t.Error("expected no metrics table without metrics")
	}
	if _, ok := findText(doc.Commands, "Quantum Neural Network"); !ok {
		t.Error("expected default model name")
	}
	if _, ok := findText(doc.Commands, "January 2, 2025 at 03:04 PM"); !ok {
		t.Error("expected default long-form timestamp")
	}
	want := []string{SectionHeader, SectionInfo, SectionSummary, SectionRecommendations}
	if !reflect.DeepEqual(doc.Sections, want) {
		t.Errorf("expected sections %v, got %v", want, doc.Sections)
	}
}

func TestBuildAllCharts(t *testing.T) {
	doc, err := testBuilder().Build(Request{
		Metrics: []metrics.Record{accuracy(95), accuracy(60)},
		Charts: &ChartData{
			TrainingProgress: []metrics.TrainingPoint{{Epoch: 0, Accuracy: 70}, {Epoch: 100, Accuracy: 95}},
			ConfusionMatrix:  metrics.ConfusionMatrix{{50, 10}, {5, 35}},
			ConfusionLabels:  []string{"Negative", "Positive"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		SectionHeader, SectionInfo, SectionSummary, SectionMetrics,
		SectionTraining, SectionComparison, SectionConfusion, SectionRecommendations,
	}
	if !reflect.DeepEqual(doc.Sections, want) {
		t.Errorf("expected sections %v, got %v", want, doc.Sections)
	}
	if doc.Pages < 2 {
		t.Errorf("expected the charts to spill onto a second page, got %d pages", doc.Pages)
	}
	if _, ok := findText(doc.Commands, "Negative"); !ok {
		t.Error("expected supplied confusion labels")
	}
}

func TestComparisonPrefersExplicitSeries(t *testing.T) {
	doc, err := testBuilder().Build(Request{
		Metrics: []metrics.Record{accuracy(80)},
		Charts: &ChartData{
			MetricsComparison: []metrics.Record{{Name: "SoloQ", Value: 91}, {Name: "QAOA", Value: 85}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := findText(doc.Commands, "SoloQ"); !ok {
		t.Error("expected comparison bars from metricsComparison")
	}
}

func TestComparisonFallsBackToMetrics(t *testing.T) {
	doc, err := testBuilder().Build(Request{
		Metrics: []metrics.Record{accuracy(80)},
		Charts:  &ChartData{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.HasSection(SectionComparison) {
		t.Fatal("expected comparison section from metrics")
	}
	if _, ok := findText(doc.Commands, "80.0%"); !ok {
		t.Error("expected the metric value drawn on its bar")
	}
}

func TestEmptyTrainingSeriesDrawsFallback(t *testing.T) {
	doc, err := testBuilder().Build(Request{Charts: &ChartData{TrainingProgress: []metrics.TrainingPoint{}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.HasSection(SectionTraining) {
		t.Error("expected training section for an empty series")
	}
}

func TestMalformedMatrixAbortsBuild(t *testing.T) {
	for name, m := range map[string]metrics.ConfusionMatrix{
		"empty":  {},
		"jagged": {{1, 2}, {3}},
	} {
		doc, err := testBuilder().Build(Request{Charts: &ChartData{ConfusionMatrix: m}})
		if doc != nil {
			t.Errorf("%s: expected no document", name)
		}
		if !werrors.IsCode(err, werrors.ErrMatrixMalformed) {
			t.Errorf("%s: expected MATRIX_MALFORMED, got %v", name, err)
		}
	}
}

// ---- Pagination Tests ----

func TestLongTableBreaksAndRepeatsHeader(t *testing.T) {
	var recs []metrics.Record
	for i := 0; i < 40; i++ {
		recs = append(recs, accuracy(float64(50+i)))
	}
	doc, err := testBuilder().Build(Request{Metrics: recs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limit := DefaultConfig().Geometry.Limit()
	headers := 0
	for _, c := range doc.Commands {
		switch v := c.(type) {
		case draw.Text:
			if v.Body == "Interpretation" {
				headers++
			}
		case draw.FillRect:
			if v.H == tableRowHeight && v.Y+v.H > limit {
				t.Errorf("table row at y=%.1f crosses the footer limit %.1f", v.Y, limit)
			}
		}
	}
	if headers < 2 {
		t.Errorf("expected the column titles to repeat after a page break, got %d", headers)
	}
	if doc.Pages < 3 {
		t.Errorf("expected at least 3 pages, got %d", doc.Pages)
	}
}

func TestFooterOnEveryPage(t *testing.T) {
	var recs []metrics.Record
	for i := 0; i < 30; i++ {
		recs = append(recs, accuracy(75))
	}
	doc, err := testBuilder().Build(Request{Metrics: recs, Charts: &ChartData{TrainingProgress: []metrics.TrainingPoint{}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, page := range draw.Split(doc.Commands) {
		want := fmt.Sprintf("Page %d", i+1)
		found := false
		for _, txt := range texts(page) {
			if txt.Body == want && txt.Font.Style == draw.Italic && txt.Align == draw.AlignRight {
				found = true
			}
		}
		if !found {
			t.Errorf("page %d: expected footer %q", i+1, want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	req := Request{
		Metrics: []metrics.Record{accuracy(91), accuracy(72)},
		Charts: &ChartData{
			TrainingProgress: metrics.FallbackTraining(),
			ConfusionMatrix:  metrics.ConfusionMatrix{{3, 1}, {0, 4}},
		},
	}
	a, err := testBuilder().Build(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := testBuilder().Build(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a.Commands, b.Commands) {
		t.Error("expected identical commands for identical input")
	}
}

func TestSummaryLineColors(t *testing.T) {
	th := theme.Default()
	doc, err := testBuilder().Build(Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, txt := range texts(doc.Commands) {
		switch {
		case strings.HasPrefix(txt.Body, "  •"):
			if txt.Color != th.Primary {
				t.Errorf("expected bullet %q in primary, got %v", txt.Body, txt.Color)
			}
		case txt.Body == "Key Performance Indicators:":
			if txt.Color != th.Secondary || txt.Font.Style != draw.Bold {
				t.Errorf("unexpected indicator heading style %+v", txt)
			}
		}
	}
}

// ---- Naming Tests ----

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 9, 9, 23, 30, 0, 0, time.FixedZone("X", -3*3600))
	if got := Filename(ts); got != "Quantum_Model_Evaluation_2025-09-10.pdf" {
		t.Errorf("expected UTC date in filename, got %s", got)
	}
}

// ---- Schema Tests ----

func TestDecodeRequestValid(t *testing.T) {
	body := `{
		"metrics": [{"name": "Accuracy", "value": 87.65, "threshold": {"good": 90, "warning": 70}}],
		"modelName": "Test Model",
		"charts": {"trainingProgress": [], "confusionMatrix": [[1, 2], [3, 4]]}
	}`
	req, err := DecodeRequest([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ModelName != "Test Model" || len(req.Metrics) != 1 {
		t.Errorf("unexpected request %+v", req)
	}
	if req.Charts == nil || req.Charts.TrainingProgress == nil {
		t.Error("expected an explicit empty training series to be present")
	}
	if req.Charts.MetricsComparison != nil {
		t.Error("expected absent metricsComparison to stay nil")
	}
}

func TestDecodeRequestInvalid(t *testing.T) {
	tests := map[string]string{
		"value type":     `{"metrics": [{"name": "Accuracy", "value": "high"}]}`,
		"missing name":   `{"metrics": [{"value": 10}]}`,
		"negative count": `{"charts": {"confusionMatrix": [[-1]]}}`,
		"not json":       `{"metrics": [`,
	}
	for name, body := range tests {
		_, err := DecodeRequest([]byte(body))
		if !werrors.IsCode(err, werrors.ErrRequestInvalid) {
			t.Errorf("%s: expected REQUEST_INVALID, got %v", name, err)
		}
	}
}

func TestDecodeRequestEmptyBody(t *testing.T) {
	req, err := DecodeRequest([]byte("  "))
	if err != nil || req == nil {
		t.Fatalf("expected empty request, got %v %v", req, err)
	}
}
