// Package metrics holds the values a report is built from and the rules that
// classify and interpret them.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Threshold holds the band boundaries of a metric, in percent.
type Threshold struct {
	Good    float64 `json:"good" yaml:"good"`
	Warning float64 `json:"warning" yaml:"warning"`
}

// Record is one named metric. Value is a percentage in [0,100].
type Record struct {
	Name        string     `json:"name"`
	Value       float64    `json:"value"`
	Description string     `json:"description,omitempty"`
	Threshold   *Threshold `json:"threshold,omitempty"`
}

// Status is the band a metric falls in.
type Status int

const (
	Excellent Status = iota
	Good
	NeedsWork
)

func (s Status) String() string {
	switch s {
	case Good:
		return "Good"
	case NeedsWork:
		return "Needs Work"
	default:
		return "Excellent"
	}
}

// Color returns the palette colour of the band.
func (s Status) Color(th theme.Theme) theme.Color {
	switch s {
	case Good:
		return th.Warning
	case NeedsWork:
		return th.Error
	default:
		return th.Accent
	}
}

// Classify bands a value against a threshold. Boundaries belong to the better
// band; a nil threshold is always Excellent.
func Classify(value float64, th *Threshold) Status {
	if th == nil {
		return Excellent
	}
	switch {
	case value < th.Warning:
		return NeedsWork
	case value < th.Good:
		return Good
	default:
		return Excellent
	}
}

// Status classifies the record against its own threshold.
func (r Record) Status() Status {
	return Classify(r.Value, r.Threshold)
}

// Benchmark is the good-band boundary as "90%", or "N/A" without a threshold.
func (r Record) Benchmark() string {
	if r.Threshold == nil {
		return "N/A"
	}
	return strconv.FormatFloat(r.Threshold.Good, 'f', -1, 64) + "%"
}

// FormatPercent renders a value with one decimal and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
