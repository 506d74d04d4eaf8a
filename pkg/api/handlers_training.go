package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// maxTrainingRuns bounds the finished runs kept for report generation.
const maxTrainingRuns = 32

// TrainingHandler runs simulated training and keeps recent outcomes.
type TrainingHandler struct {
	evaluator *evaluator.Evaluator
	renderer  *Renderer
	events    EventBroadcaster
	threshold metrics.Threshold

	mu    sync.RWMutex
	runs  map[string]*evaluator.TrainingOutcome
	order []string
}

// NewTrainingHandler creates a TrainingHandler. Reports of finished runs
// are banded with th.
func NewTrainingHandler(ev *evaluator.Evaluator, renderer *Renderer, events EventBroadcaster, th metrics.Threshold) *TrainingHandler {
	if events == nil {
		events = NopBroadcaster{}
	}
	return &TrainingHandler{
		evaluator: ev,
		renderer:  renderer,
		events:    events,
		threshold: th,
		runs:      make(map[string]*evaluator.TrainingOutcome),
	}
}

// RegisterRoutes registers the training API routes on the router.
func (h *TrainingHandler) RegisterRoutes(router *Router) {
	router.POST("/api/training", h.Train)
	router.GET("/api/training/:id", h.Get)
	router.GET("/api/training/:id/report", h.Report)
}

// TrainingResponse is the response body of a finished run.
type TrainingResponse struct {
	RunID   string                     `json:"runId"`
	Outcome *evaluator.TrainingOutcome `json:"outcome"`
}

// Train handles POST /api/training. The body is a training form; omitted
// fields take the form defaults. Progress is broadcast on the progress
// channel under the run ID, which the client may choose with ?runId=.
func (h *TrainingHandler) Train(w http.ResponseWriter, r *http.Request) {
	cfg := evaluator.DefaultTrainingConfig()
	if err := ReadJSON(r, &cfg); err != nil {
		WriteReportError(w, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		WriteReportError(w, err)
		return
	}

	runID := r.URL.Query().Get("runId")
	if runID == "" {
		runID = uuid.NewString()
	}

	outcome, err := h.evaluator.Train(r.Context(), cfg, func(pct int) {
		_ = h.events.BroadcastProgress(&ProgressEvent{RunID: runID, Percent: pct})
	})
	if err != nil {
		WriteReportError(w, err)
		return
	}
	_ = h.events.BroadcastProgress(&ProgressEvent{RunID: runID, Percent: 100, Complete: true})

	h.remember(runID, outcome)
	WriteJSON(w, http.StatusOK, TrainingResponse{RunID: runID, Outcome: outcome})
}

// Get handles GET /api/training/:id.
func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "id")
	outcome, err := h.lookup(id)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, TrainingResponse{RunID: id, Outcome: outcome})
}

// Report handles GET /api/training/:id/report. format=png|svg returns a
// preview page.
func (h *TrainingHandler) Report(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.lookup(PathParam(r, "id"))
	if err != nil {
		WriteReportError(w, err)
		return
	}
	th := h.threshold
	writeReportOrPreview(h.renderer, w, r, outcome.ReportRequest(&th))
}

// remember stores an outcome, evicting the oldest beyond maxTrainingRuns.
func (h *TrainingHandler) remember(id string, outcome *evaluator.TrainingOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.runs[id]; !ok {
		h.order = append(h.order, id)
	}
	h.runs[id] = outcome
	for len(h.order) > maxTrainingRuns {
		delete(h.runs, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *TrainingHandler) lookup(id string) (*evaluator.TrainingOutcome, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	outcome, ok := h.runs[id]
	if !ok {
		return nil, werrors.Ef(werrors.ErrHistoryNotFound, "training run %q not found", id).WithContext("run", id)
	}
	return outcome, nil
}
