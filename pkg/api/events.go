package api

import (
	"sync"
	"time"

	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// -----------------------------------------------------------------------------
// Event Payloads
// -----------------------------------------------------------------------------

// ProgressEvent reports the state of a training run.
type ProgressEvent struct {
	RunID    string `json:"runId"`
	Percent  int    `json:"percent"`
	Complete bool   `json:"complete,omitempty"`
}

// Type returns training_complete for the final event, training_progress
// otherwise.
func (e *ProgressEvent) Type() string {
	if e.Complete {
		return EventTypeTrainingComplete
	}
	return EventTypeTrainingProgress
}

// EvaluationEvent announces a finished model comparison.
type EvaluationEvent struct {
	DatasetID      string                    `json:"datasetId"`
	Results        map[string]metrics.Scores `json:"results"`
	Recommendation string                    `json:"recommendation"`
}

// ReportEvent announces a generated report.
type ReportEvent struct {
	Filename    string `json:"filename"`
	ModelName   string `json:"modelName"`
	Pages       int    `json:"pages"`
	Fingerprint string `json:"fingerprint"`
	GeneratedAt string `json:"generatedAt"`
}

func newReportEvent(filename, model string, pages int, fingerprint string, at time.Time) *ReportEvent {
	return &ReportEvent{
		Filename:    filename,
		ModelName:   model,
		Pages:       pages,
		Fingerprint: fingerprint,
		GeneratedAt: at.UTC().Format(time.RFC3339),
	}
}

// -----------------------------------------------------------------------------
// EventBroadcaster
// -----------------------------------------------------------------------------

// EventBroadcaster publishes server events. Handlers depend on it rather
// than on the hub so tests can record events.
type EventBroadcaster interface {
	BroadcastProgress(event *ProgressEvent) error
	BroadcastEvaluation(event *EvaluationEvent) error
	BroadcastReport(event *ReportEvent) error
}

var _ EventBroadcaster = (*Hub)(nil)

// NopBroadcaster discards every event.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastProgress(*ProgressEvent) error     { return nil }
func (NopBroadcaster) BroadcastEvaluation(*EvaluationEvent) error { return nil }
func (NopBroadcaster) BroadcastReport(*ReportEvent) error         { return nil }

// RecordingBroadcaster keeps every event in memory.
type RecordingBroadcaster struct {
	mu          sync.Mutex
	Progress    []ProgressEvent
	Evaluations []EvaluationEvent
	Reports     []ReportEvent
}

// BroadcastProgress records the event.
func (r *RecordingBroadcaster) BroadcastProgress(event *ProgressEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress = append(r.Progress, *event)
	return nil
}

// BroadcastEvaluation records the event.
func (r *RecordingBroadcaster) BroadcastEvaluation(event *EvaluationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Evaluations = append(r.Evaluations, *event)
	return nil
}

// BroadcastReport records the event.
func (r *RecordingBroadcaster) BroadcastReport(event *ReportEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reports = append(r.Reports, *event)
	return nil
}

// Counts returns the number of recorded progress, evaluation and report
// events.
func (r *RecordingBroadcaster) Counts() (progress, evaluations, reports int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Progress), len(r.Evaluations), len(r.Reports)
}
