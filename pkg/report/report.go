// Package report builds the Quantum Model Evaluation Report as an ordered
// list of drawing commands.
//
// Building is pure: the same request, configuration and clock always produce
// the same commands. Output surfaces (see package export) replay the list;
// a build that fails returns no document at all.
package report

import (
	"time"

	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/layout"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Config specifies the fixed parts of a report.
type Config struct {
	// Geometry is the page size and margins.
	// Default: A4 portrait, 20 mm margin, 15 mm footer reserve
	Geometry layout.Geometry

	// Theme is the colour palette.
	// Default: theme.Default()
	Theme theme.Theme

	// Version is shown in the info card.
	// Default: "2.1"
	Version string

	// Status is shown in the info card.
	// Default: "Analysis Complete"
	Status string

	// DefaultModelName is used when a request names no model.
	// Default: "Quantum Neural Network"
	DefaultModelName string

	// Author and Creator are written to the document metadata.
	Author  string
	Creator string

	// Location is the time zone of the default "Generated" timestamp.
	// Default: time.Local
	Location *time.Location
}

// DefaultConfig returns a Config with the standard report settings.
func DefaultConfig() *Config {
	return &Config{
		Geometry:         layout.A4(),
		Theme:            theme.Default(),
		Version:          "2.1",
		Status:           "Analysis Complete",
		DefaultModelName: "Quantum Neural Network",
		Author:           "Quantum Model Evaluation",
		Creator:          "qmreport",
		Location:         time.Local,
	}
}

// Request is the input of a single report build. Every field is optional.
type Request struct {
	// Metrics fills the metrics table; the table is skipped when empty.
	Metrics []metrics.Record `json:"metrics,omitempty"`

	ModelName string `json:"modelName,omitempty"`

	// Timestamp replaces the generated date in the info card.
	Timestamp string `json:"timestamp,omitempty"`

	// Charts enables the chart sections. A nil bundle draws no charts.
	Charts *ChartData `json:"charts,omitempty"`
}

// ChartData carries the per-chart inputs. A nil field skips its section; an
// empty, non-nil TrainingProgress draws the fallback curve.
type ChartData struct {
	TrainingProgress  []metrics.TrainingPoint `json:"trainingProgress,omitempty"`
	MetricsComparison []metrics.Record        `json:"metricsComparison,omitempty"`
	ConfusionMatrix   metrics.ConfusionMatrix `json:"confusionMatrix,omitempty"`
	ConfusionLabels   []string                `json:"confusionLabels,omitempty"`
}

// Document is a finished report ready to be replayed on a surface.
type Document struct {
	Commands    []draw.Command
	Pages       int
	Filename    string
	Title       string
	ModelName   string
	Author      string
	Creator     string
	GeneratedAt time.Time

	// Sections lists the section titles in drawing order.
	Sections []string
}

// HasSection reports whether a section with the given title was drawn.
func (d *Document) HasSection(title string) bool {
	for _, s := range d.Sections {
		if s == title {
			return true
		}
	}
	return false
}

// Filename returns the download name for a report generated at t.
func Filename(t time.Time) string {
	return "Quantum_Model_Evaluation_" + t.UTC().Format("2006-01-02") + ".pdf"
}

// DefaultTimestamp formats t as a long date with hour and minute,
// e.g. "January 2, 2025 at 03:04 PM".
func DefaultTimestamp(t time.Time) string {
	return t.Format("January 2, 2006 at 03:04 PM")
}
