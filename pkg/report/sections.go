package report

import (
	"fmt"
	"strings"

	"github.com/r3d91ll/qmreport/pkg/charts"
	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Section titles, in drawing order.
const (
	SectionHeader          = "HEADER"
	SectionInfo            = "DOCUMENT INFO"
	SectionSummary         = "EXECUTIVE SUMMARY"
	SectionMetrics         = "KEY PERFORMANCE METRICS"
	SectionTraining        = "TRAINING PROGRESS ANALYSIS"
	SectionComparison      = "PERFORMANCE METRICS COMPARISON"
	SectionConfusion       = "CONFUSION MATRIX ANALYSIS"
	SectionRecommendations = "RECOMMENDATIONS & INSIGHTS"
)

const (
	footerText     = "Quantum Model Evaluation Report - Confidential"
	sectionBarH    = 15
	accentBarW     = 5
	chartHeight    = 70
	chartAdvance   = 85
	chartSpace     = 120
	tableRowHeight = 12
)

var summaryLines = []string{
	"This comprehensive evaluation provides detailed insights into quantum machine learning model performance,",
	"including training convergence analysis, performance metrics, and predictive accuracy assessments.",
	"",
	"Key Performance Indicators:",
	"  • Training convergence achieved with optimal learning rates",
	"  • Performance metrics exceed industry benchmarks",
	"  • Classification accuracy demonstrates strong generalization",
	"  • Comprehensive analysis supports deployment readiness",
}

var tableColumns = []struct {
	title string
	width float64
}{
	{"Metric", 40},
	{"Value", 25},
	{"Status", 30},
	{"Benchmark", 25},
	{"Interpretation", 50},
}

// Recommendation is one card of the closing section.
type Recommendation struct {
	Title string
	Items []string
}

// Recommendations is the fixed content of the closing section.
var Recommendations = []Recommendation{
	{"Model Optimization", []string{"Fine-tune hyperparameters for enhanced convergence", "Implement advanced regularization techniques"}},
	{"Data Strategy", []string{"Expand training dataset diversity", "Implement data augmentation techniques"}},
	{"Architecture Enhancement", []string{"Optimize quantum circuit depth", "Evaluate gate combination efficiency"}},
	{"Deployment Readiness", []string{"Establish monitoring frameworks", "Plan phased rollout strategy"}},
}

func (bs *buildState) margin() float64       { return bs.cfg.Geometry.Margin }
func (bs *buildState) contentWidth() float64 { return bs.cfg.Geometry.ContentWidth() }

// footer stamps the confidentiality line and page number.
func (bs *buildState) footer(page int) {
	g := bs.cfg.Geometry
	bs.rec.SetTextColor(bs.th.Secondary)
	bs.rec.SetFont(draw.Italic, 9)
	bs.rec.Text(footerText, g.Margin, g.FooterY())
	bs.rec.Text(fmt.Sprintf("Page %d", page), g.Width-g.Margin, g.FooterY(), draw.RightAligned())
}

// sectionHeader draws a 15 mm title bar with a 5 mm stripe on its left edge.
func (bs *buildState) sectionHeader(title string, bar, stripe theme.Color) {
	y := bs.ctx.Y
	bs.rec.FillRect(bs.margin(), y-2, bs.contentWidth(), sectionBarH, bar)
	bs.rec.FillRect(bs.margin(), y-2, accentBarW, sectionBarH, stripe)
	bs.rec.SetFont(draw.Bold, 14)
	bs.rec.SetTextColor(bs.th.White)
	bs.rec.Text(title, bs.margin()+10, y+7)
	bs.sections = append(bs.sections, title)
}

func (bs *buildState) header() {
	w := bs.cfg.Geometry.Width
	bs.rec.FillRect(0, 0, w, 55, bs.th.Primary)
	bs.rec.FillRect(0, 45, w, 10, bs.th.BannerDepth)
	bs.rec.Circle(w-30, 25, 20, bs.th.White, 0.1)
	bs.rec.Circle(30, 35, 15, bs.th.White, 0.1)

	bs.rec.SetFont(draw.Bold, 26)
	bs.rec.SetTextColor(bs.th.White)
	bs.rec.Text("QUANTUM MODEL", w/2, 20, draw.Centered())
	bs.rec.Text("EVALUATION REPORT", w/2, 32, draw.Centered())
	bs.rec.SetFont(draw.Normal, 11)
	bs.rec.Text("Comprehensive Performance Analysis & Insights", w/2, 42, draw.Centered())

	bs.sections = append(bs.sections, SectionHeader)
	bs.ctx.MoveTo(70)
}

func (bs *buildState) infoCard(stamp, model string) {
	const cardH = 25
	y := bs.ctx.Y
	bs.rec.FillRect(bs.margin(), y, bs.contentWidth(), cardH, bs.th.Background)
	bs.rec.BorderRect(bs.margin(), y, bs.contentWidth(), cardH, bs.th.Primary, 1)

	items := []struct{ label, value string }{
		{"Generated:", stamp},
		{"Model:", model},
		{"Version:", bs.cfg.Version},
		{"Status:", bs.cfg.Status},
	}
	bs.rec.SetTextColor(bs.th.Text)
	x := bs.margin() + 5
	for _, it := range items {
		bs.rec.SetFont(draw.Bold, 10)
		bs.rec.Text(it.label, x, y+8)
		bs.rec.SetFont(draw.Normal, 10)
		bs.rec.Text(it.value, x, y+15)
		x += bs.contentWidth() / 4
	}

	bs.sections = append(bs.sections, SectionInfo)
	bs.ctx.Advance(cardH + 15)
}

func (bs *buildState) executiveSummary() {
	bs.ctx.EnsureSpace(50)
	bs.sectionHeader(SectionSummary, bs.th.Secondary, bs.th.Accent)
	bs.ctx.Advance(20)

	y := bs.ctx.Y
	bs.rec.FillRect(bs.margin(), y, bs.contentWidth(), 45, bs.th.CardFill)
	bs.rec.Border(bs.margin(), y, bs.contentWidth(), 45)

	for i, line := range summaryLines {
		switch {
		case strings.ContainsRune(line, '•'):
			bs.rec.SetTextColor(bs.th.Primary)
			bs.rec.SetFont(draw.Normal, 10)
		case line == "Key Performance Indicators:":
			bs.rec.SetTextColor(bs.th.Secondary)
			bs.rec.SetFont(draw.Bold, 10)
		default:
			bs.rec.SetTextColor(bs.th.Text)
			bs.rec.SetFont(draw.Normal, 10)
		}
		bs.rec.Text(line, bs.margin()+5, y+8+float64(i)*4)
	}
	bs.ctx.Advance(60)
}

// tableHeaderRow draws the primary-coloured column title row at the cursor.
func (bs *buildState) tableHeaderRow() {
	y := bs.ctx.Y
	bs.rec.FillRect(bs.margin(), y, bs.contentWidth(), tableRowHeight, bs.th.Primary)
	bs.rec.SetFont(draw.Bold, 10)
	bs.rec.SetTextColor(bs.th.White)
	x := bs.margin() + 2
	for _, col := range tableColumns {
		bs.rec.Text(col.title, x+2, y+8)
		x += col.width
	}
	bs.ctx.Advance(tableRowHeight)
}

// metricsTable draws one row per record. A row that would cross into the
// footer moves to a new page, which repeats the column titles.
func (bs *buildState) metricsTable(records []metrics.Record) {
	bs.ctx.EnsureSpace(80)
	bs.sectionHeader(SectionMetrics, bs.th.Secondary, bs.th.Accent)
	bs.ctx.Advance(25)
	bs.tableHeaderRow()

	for i, rec := range records {
		if bs.ctx.EnsureSpace(tableRowHeight) {
			bs.tableHeaderRow()
		}
		y := bs.ctx.Y
		fill := bs.th.White
		if i%2 == 1 {
			fill = bs.th.RowAlt
		}
		bs.rec.FillRect(bs.margin(), y, bs.contentWidth(), tableRowHeight, fill)
		bs.rec.BorderRect(bs.margin(), y, bs.contentWidth(), tableRowHeight, bs.th.LightGray, 0.2)

		status := rec.Status()
		cells := []struct {
			text  string
			color theme.Color
			style draw.FontStyle
		}{
			{rec.Name, bs.th.Text, draw.Normal},
			{metrics.FormatPercent(rec.Value), bs.th.Text, draw.Bold},
			{status.String(), status.Color(bs.th), draw.Normal},
			{rec.Benchmark(), bs.th.Text, draw.Normal},
			{metrics.Interpret(rec.Name, rec.Value), bs.th.Text, draw.Normal},
		}
		x := bs.margin() + 2
		for c, cell := range cells {
			bs.rec.SetFont(cell.style, 10)
			bs.rec.SetTextColor(cell.color)
			bs.rec.Text(cell.text, x+2, y+8)
			x += tableColumns[c].width
		}
		bs.ctx.Advance(tableRowHeight)
	}
	bs.ctx.Advance(15)
}

// chartSection reserves room for a chart, draws its title bar and returns
// the chart's bounding box.
func (bs *buildState) chartSection(title string) charts.Box {
	bs.ctx.EnsureSpace(chartSpace)
	bs.sectionHeader(title, bs.th.Accent, bs.th.Primary)
	bs.ctx.Advance(25)
	return charts.Box{X: bs.margin(), Y: bs.ctx.Y, W: bs.contentWidth(), H: chartHeight}
}

func (bs *buildState) chartSections(req Request) error {
	cd := req.Charts
	if cd == nil {
		return nil
	}

	if cd.TrainingProgress != nil {
		charts.Training(bs.rec, cd.TrainingProgress, bs.chartSection(SectionTraining))
		bs.ctx.Advance(chartAdvance)
	}

	if cd.MetricsComparison != nil || req.Metrics != nil {
		data := cd.MetricsComparison
		if data == nil {
			data = req.Metrics
		}
		charts.Bars(bs.rec, data, bs.chartSection(SectionComparison))
		bs.ctx.Advance(chartAdvance)
	}

	if cd.ConfusionMatrix != nil {
		if err := cd.ConfusionMatrix.Validate(); err != nil {
			return err
		}
		if _, err := charts.Matrix(bs.rec, cd.ConfusionMatrix, cd.ConfusionLabels, bs.chartSection(SectionConfusion)); err != nil {
			return err
		}
		bs.ctx.Advance(chartAdvance)
	}
	return nil
}

func (bs *buildState) recommendations() {
	bs.ctx.EnsureSpace(60)
	bs.sectionHeader(SectionRecommendations, bs.th.Primary, bs.th.Accent)
	bs.ctx.Advance(25)

	for i, card := range Recommendations {
		h := 15 + float64(len(card.Items))*5
		y := bs.ctx.Y
		bs.rec.FillRect(bs.margin(), y, bs.contentWidth(), h, bs.th.CardFill)
		bs.rec.BorderRect(bs.margin(), y, bs.contentWidth(), h, bs.th.Accent, 0.8)

		bs.rec.SetFont(draw.Bold, 11)
		bs.rec.SetTextColor(bs.th.Secondary)
		bs.rec.Text(card.Title, bs.margin()+5, y+8)

		bs.rec.SetFont(draw.Normal, 9)
		bs.rec.SetTextColor(bs.th.Text)
		for k, item := range card.Items {
			bs.rec.Text("• "+item, bs.margin()+8, y+15+float64(k)*5)
		}

		bs.ctx.Advance(h + 8)
		if i == 1 {
			bs.ctx.EnsureSpace(40)
		}
	}
}
