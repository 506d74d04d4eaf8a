package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// Table lays out rows in left-aligned columns under a styled header.
// Cells may contain escape sequences; widths count visible cells only.
type Table struct {
	Headers []string
	Rows    [][]string
	// Gap is the spacing between columns. Zero means two spaces.
	Gap int
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// String renders the table. The last column is not padded.
func (t *Table) String() string {
	gap := t.Gap
	if gap <= 0 {
		gap = 2
	}
	widths := make([]int, len(t.Headers))
	measure := func(row []string) {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}

	line := func(row []string, style func(string) string) string {
		parts := make([]string, len(row))
		for i, c := range row {
			if i < len(row)-1 {
				c = PadRight(c, widths[i]+gap)
			}
			parts[i] = style(c)
		}
		return strings.TrimRight(strings.Join(parts, ""), " ")
	}

	var sb strings.Builder
	if len(t.Headers) > 0 {
		sb.WriteString(line(t.Headers, Bold))
		sb.WriteString("\n")
		total := 0
		for _, w := range widths {
			total += w + gap
		}
		sb.WriteString(Dim(strings.Repeat(BoxHorizontal, max(total-gap, 0))))
		sb.WriteString("\n")
	}
	for _, r := range t.Rows {
		sb.WriteString(line(r, func(s string) string { return s }))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ----------------------------------------------------------------------------
// Domain tables
// ----------------------------------------------------------------------------

// DatasetTable lists datasets with their classes.
func DatasetTable(datasets []*evaluator.Dataset) string {
	t := &Table{Headers: []string{"ID", "Name", "Classes", "Description"}}
	for _, d := range datasets {
		t.AddRow(Command(d.ID), d.Name, d.Classes[0]+" / "+d.Classes[1], Dim(d.Description))
	}
	return t.String()
}

// ScoreCell renders a percentage in the colour of its band.
func ScoreCell(pct float64, th *metrics.Threshold) string {
	return Status(metrics.Classify(pct, th), metrics.FormatPercent(pct))
}

// ComparisonTable shows every score of every model side by side and marks
// the recommended model.
func ComparisonTable(c *evaluator.Comparison, th *metrics.Threshold) string {
	var models []string
	for _, m := range evaluator.Models {
		if _, ok := c.Results[m]; ok {
			models = append(models, m)
		}
	}

	headers := []string{"Metric"}
	for _, m := range models {
		label := m
		if m == c.Recommendation {
			label += " *"
		}
		headers = append(headers, label)
	}
	t := &Table{Headers: headers}
	for i, name := range metrics.ScoreNames {
		row := []string{name}
		for _, m := range models {
			row = append(row, ScoreCell(c.Results[m].Values()[i]*100, th))
		}
		t.AddRow(row...)
	}
	return t.String() + "\n" + Dim("* recommended: ") + Bold(c.Recommendation)
}

// MetricsTable lists metric records with their benchmark and band.
func MetricsTable(recs []metrics.Record) string {
	t := &Table{Headers: []string{"Metric", "Value", "Benchmark", "Status"}}
	for _, r := range recs {
		s := r.Status()
		t.AddRow(r.Name, metrics.FormatPercent(r.Value), r.Benchmark(), Status(s, s.String()))
	}
	return t.String()
}

// HistoryTable lists history records with their headline scores.
func HistoryTable(records []history.Record, th *metrics.Threshold) string {
	t := &Table{Headers: []string{"ID", "Time", "Model", "File", "Data", "Accuracy", "F1"}}
	for _, r := range records {
		t.AddRow(
			Dim(shortID(r.ID)),
			history.FormatTimestamp(r.Timestamp),
			r.ModelType,
			r.ModelFile,
			r.CSVFile,
			ScoreCell(r.Result.Accuracy*100, th),
			ScoreCell(r.Result.F1*100, th),
		)
	}
	return t.String()
}

// RecordDetail shows one history record in a panel.
func RecordDetail(r history.Record, th *metrics.Threshold) string {
	lines := []string{
		Dim("ID:    ") + r.ID,
		Dim("Time:  ") + history.FormatTimestamp(r.Timestamp),
		Dim("Model: ") + r.ModelType + " (" + r.ModelFile + ")",
		Dim("Data:  ") + r.CSVFile,
		"",
	}
	for _, rec := range r.Metrics(th) {
		lines = append(lines, PadRight(rec.Name, 14)+ScoreCell(rec.Value, th))
	}
	return Panel("Evaluation Run", 52, lines...)
}

// SummaryTable lists per-model aggregates.
func SummaryTable(sums []history.Summary, th *metrics.Threshold) string {
	t := &Table{Headers: []string{"Model", "Runs", "Mean Accuracy", "Mean F1", "Latest"}}
	for _, s := range sums {
		t.AddRow(
			s.ModelType,
			PadLeft(strconv.Itoa(s.Runs), 4),
			ScoreCell(s.Mean.Accuracy*100, th),
			ScoreCell(s.Mean.F1*100, th),
			history.FormatTimestamp(s.Latest),
		)
	}
	return t.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
