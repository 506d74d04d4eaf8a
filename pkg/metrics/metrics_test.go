package metrics

import (
	"testing"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// ---- Status Tests ----

func TestClassifyBands(t *testing.T) {
	th := &Threshold{Good: 90, Warning: 70}
	tests := []struct {
		value float64
		want  Status
	}{
		{95, Excellent},
		{80, Good},
		{60, NeedsWork},
		{90, Excellent},
		{70, Good},
		{69.99, NeedsWork},
	}
	for _, tt := range tests {
		if got := Classify(tt.value, th); got != tt.want {
			t.Errorf("Classify(%.2f) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestClassifyWithoutThreshold(t *testing.T) {
	if got := Classify(5, nil); got != Excellent {
		t.Errorf("expected Excellent without threshold, got %s", got)
	}
}

func TestStatusLabelsAndColors(t *testing.T) {
	th := theme.Default()
	if NeedsWork.String() != "Needs Work" {
		t.Errorf("unexpected label %q", NeedsWork.String())
	}
	if Excellent.Color(th) != th.Accent || Good.Color(th) != th.Warning || NeedsWork.Color(th) != th.Error {
		t.Error("unexpected band colors")
	}
}

func TestBenchmark(t *testing.T) {
	r := Record{Name: "Accuracy", Value: 80, Threshold: &Threshold{Good: 90, Warning: 70}}
	if r.Benchmark() != "90%" {
		t.Errorf("expected 90%%, got %s", r.Benchmark())
	}
	r.Threshold.Good = 87.5
	if r.Benchmark() != "87.5%" {
		t.Errorf("expected 87.5%%, got %s", r.Benchmark())
	}
	if (Record{Name: "x"}).Benchmark() != "N/A" {
		t.Error("expected N/A without threshold")
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(87.65); got != "87.7%" && got != "87.6%" {
		t.Errorf("unexpected format %q", got)
	}
	if got := FormatPercent(90); got != "90.0%" {
		t.Errorf("expected 90.0%%, got %q", got)
	}
}

// ---- Interpretation Tests ----

func TestInterpret(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"Accuracy", 95, "Excellent"},
		{"Accuracy", 90, "Good"},
		{"Accuracy", 75, "Fair"},
		{"Accuracy", 70, "Poor"},
		{"Precision", 88.92, "High confidence"},
		{"Precision", 80, "Moderate"},
		{"Precision", 75, "Low confidence"},
		{"Recall", 86.78, "Comprehensive"},
		{"Recall", 76, "Adequate"},
		{"Recall", 50, "Limited"},
		{"F1-Score", 87.84, "Well balanced"},
		{"F1 Score", 80, "Acceptable"},
		{"F1 Score", 60, "Imbalanced"},
		{"Loss", 0.05, "Excellent"},
		{"Loss", 0.2, "Good"},
		{"Loss", 0.4, "Fair"},
		{"Loss", 0.5, "High error"},
		{"Specificity", 99, "Standard range"},
		{"accuracy", 99, "Standard range"},
	}
	for _, tt := range tests {
		if got := Interpret(tt.name, tt.value); got != tt.want {
			t.Errorf("Interpret(%q, %.2f) = %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}
}

// ---- Training Tests ----

func TestTrainingOrFallback(t *testing.T) {
	if got := TrainingOrFallback(nil); len(got) != 5 || got[4].Accuracy != 94 {
		t.Errorf("expected fallback sequence, got %v", got)
	}
	own := []TrainingPoint{{Epoch: 10, Accuracy: 70}}
	if got := TrainingOrFallback(own); len(got) != 1 {
		t.Errorf("expected supplied points, got %v", got)
	}
}

// ---- Confusion Matrix Tests ----

func TestConfusionValidate(t *testing.T) {
	tests := []struct {
		name string
		m    ConfusionMatrix
		ok   bool
	}{
		{"square", ConfusionMatrix{{1, 2}, {3, 4}}, true},
		{"all zero", ConfusionMatrix{{0, 0}, {0, 0}}, true},
		{"empty", ConfusionMatrix{}, false},
		{"jagged", ConfusionMatrix{{1, 2}, {3}}, false},
		{"wide", ConfusionMatrix{{1, 2, 3}, {4, 5, 6}}, false},
		{"negative", ConfusionMatrix{{1, -2}, {3, 4}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !werrors.IsCode(err, werrors.ErrMatrixMalformed) {
				t.Errorf("expected MATRIX_MALFORMED, got %v", err)
			}
		})
	}
}

func TestConfusionAggregates(t *testing.T) {
	m := ConfusionMatrix{{50, 10}, {5, 35}}
	if m.Max() != 50 || m.Total() != 100 || m.Correct() != 85 {
		t.Errorf("unexpected aggregates: max=%d total=%d correct=%d", m.Max(), m.Total(), m.Correct())
	}
}

func TestDisplayLabels(t *testing.T) {
	got := DisplayLabels(3, []string{"Cat"})
	want := []string{"Class 1", "Class 2", "Class 3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	got = DisplayLabels(2, []string{"Pulsar", "NonPulsar", "Extra"})
	if len(got) != 2 || got[0] != "Pulsar" || got[1] != "NonPulsar" {
		t.Errorf("expected supplied labels truncated to 2, got %v", got)
	}
}

func TestBinaryConfusion(t *testing.T) {
	m := BinaryConfusion(56, 55, 64, 52)
	if m[0][0] != 55 || m[0][1] != 1 || m[1][0] != 12 || m[1][1] != 52 {
		t.Errorf("unexpected matrix %v", m)
	}
}

// ---- Scores Tests ----

func TestScoresRecords(t *testing.T) {
	s := Scores{Accuracy: 0.91, Precision: 0.9, Recall: 0.89, Specificity: 0.92, F1: 0.9}
	recs := s.Records(DefaultThreshold())
	if len(recs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(recs))
	}
	if recs[4].Name != "F1 Score" {
		t.Errorf("expected F1 Score last, got %s", recs[4].Name)
	}
	if recs[0].Value < 90.99 || recs[0].Value > 91.01 {
		t.Errorf("expected accuracy 91, got %.4f", recs[0].Value)
	}
	recs[0].Threshold.Good = 1
	if recs[1].Threshold.Good != 90 {
		t.Error("expected each record to own its threshold")
	}
}

func TestMean(t *testing.T) {
	m := Mean([]Scores{{Accuracy: 0.8}, {Accuracy: 0.9}})
	if m.Accuracy < 0.8499 || m.Accuracy > 0.8501 {
		t.Errorf("expected mean 0.85, got %.4f", m.Accuracy)
	}
	if Mean(nil) != (Scores{}) {
		t.Error("expected zero scores for empty input")
	}
}
