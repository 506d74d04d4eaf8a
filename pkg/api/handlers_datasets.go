package api

import (
	"net/http"
	"strings"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/export"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// DatasetHandler serves the demo datasets and their mock evaluations.
type DatasetHandler struct {
	evaluator *evaluator.Evaluator
	renderer  *Renderer
	events    EventBroadcaster
}

// NewDatasetHandler creates a DatasetHandler. A nil events discards events.
func NewDatasetHandler(ev *evaluator.Evaluator, renderer *Renderer, events EventBroadcaster) *DatasetHandler {
	if events == nil {
		events = NopBroadcaster{}
	}
	return &DatasetHandler{evaluator: ev, renderer: renderer, events: events}
}

// RegisterRoutes registers the dataset API routes on the router.
func (h *DatasetHandler) RegisterRoutes(router *Router) {
	router.GET("/api/datasets", h.List)
	router.GET("/api/datasets/:id", h.Get)
	router.POST("/api/datasets/:id/evaluate", h.Evaluate)
	router.POST("/api/datasets/:id/report", h.Report)
}

// DatasetsResponse is the response body for GET /api/datasets.
type DatasetsResponse struct {
	Datasets []*evaluator.Dataset `json:"datasets"`
	Models   []string             `json:"models"`
}

// List handles GET /api/datasets.
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, DatasetsResponse{
		Datasets: h.evaluator.Registry().List(),
		Models:   evaluator.Models,
	})
}

// Get handles GET /api/datasets/:id.
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.evaluator.Registry().Get(PathParam(r, "id"))
	if err != nil {
		WriteReportError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// Evaluate handles POST /api/datasets/:id/evaluate. The request blocks for
// the simulated evaluation delay and is cancelled with the client.
func (h *DatasetHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	c, err := h.evaluator.Compare(r.Context(), PathParam(r, "id"))
	if err != nil {
		WriteReportError(w, err)
		return
	}
	_ = h.events.BroadcastEvaluation(&EvaluationEvent{
		DatasetID:      c.Dataset.ID,
		Results:        c.Results,
		Recommendation: c.Recommendation,
	})
	WriteJSON(w, http.StatusOK, c)
}

// Report handles POST /api/datasets/:id/report?model=SoloQ|QAOA. The
// default model is the recommendation; format=png|svg returns a preview
// page instead of the PDF.
func (h *DatasetHandler) Report(w http.ResponseWriter, r *http.Request) {
	c, err := h.evaluator.Compare(r.Context(), PathParam(r, "id"))
	if err != nil {
		WriteReportError(w, err)
		return
	}
	model := r.URL.Query().Get("model")
	if model == "" {
		model = c.Recommendation
	}
	req, err := c.ReportRequest(model)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	writeReportOrPreview(h.renderer, w, r, req)
}

// writeReportOrPreview dispatches on the "format" query parameter.
func writeReportOrPreview(rr *Renderer, w http.ResponseWriter, r *http.Request, req report.Request) {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "pdf":
		rr.WritePDF(w, req)
	case export.FormatPNG, export.FormatSVG:
		rr.WritePreview(w, r, req)
	default:
		WriteReportError(w, unsupportedReportFormat(r.URL.Query().Get("format")))
	}
}

func unsupportedReportFormat(format string) error {
	return werrors.FormatUnsupported(format, "pdf", export.FormatPNG, export.FormatSVG)
}
