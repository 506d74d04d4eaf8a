package export

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// DashboardTitle is the page title of the history dashboard.
const DashboardTitle = "Quantum Model Evaluation History"

// WriteHistoryDashboard writes an interactive HTML page with the accuracy of
// every run over time and the mean scores of each model.
func WriteHistoryDashboard(w io.Writer, records []history.Record, summaries []history.Summary) error {
	page := components.NewPage()
	page.PageTitle = DashboardTitle

	page.AddCharts(runsChart(records), meansChart(summaries))

	if err := page.Render(w); err != nil {
		return werrors.Wrap(err, werrors.ErrExportFailed, werrors.CategoryRender, "failed to render dashboard")
	}
	return nil
}

// runsChart plots accuracy and F1 per run, oldest first.
func runsChart(records []history.Record) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Accuracy per Evaluation",
			Subtitle: "Runs in chronological order",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Run",
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score (%)", Type: "value"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "450px"}),
	)

	labels := make([]string, len(records))
	accuracy := make([]opts.LineData, len(records))
	f1 := make([]opts.LineData, len(records))
	for i := range records {
		r := records[len(records)-1-i]
		labels[i] = history.FormatTimestamp(r.Timestamp) + " " + r.ModelType
		accuracy[i] = opts.LineData{Value: r.Result.Accuracy * 100}
		f1[i] = opts.LineData{Value: r.Result.F1 * 100}
	}

	line.SetXAxis(labels).
		AddSeries("Accuracy", accuracy).
		AddSeries("F1 Score", f1)
	return line
}

// meansChart compares the mean scores of each model type.
func meansChart(summaries []history.Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean Scores by Model"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score (%)", Type: "value"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "450px"}),
	)

	bar.SetXAxis(metrics.ScoreNames)
	for _, s := range summaries {
		vals := s.Mean.Values()
		data := make([]opts.BarData, len(vals))
		for i, v := range vals {
			data[i] = opts.BarData{Value: v * 100}
		}
		bar.AddSeries(s.ModelType, data)
	}
	return bar
}
