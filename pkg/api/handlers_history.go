package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/r3d91ll/qmreport/pkg/export"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// HistoryHandler serves the evaluation log.
type HistoryHandler struct {
	store     *history.Store
	renderer  *Renderer
	threshold metrics.Threshold
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(store *history.Store, renderer *Renderer, th metrics.Threshold) *HistoryHandler {
	return &HistoryHandler{store: store, renderer: renderer, threshold: th}
}

// RegisterRoutes registers the history API routes on the router. The export
// route is registered first so "export" is never taken for a record ID.
func (h *HistoryHandler) RegisterRoutes(router *Router) {
	router.GET("/api/history", h.List)
	router.GET("/api/history/summary", h.Summary)
	router.GET("/api/history/export/:format", h.Export)
	router.GET("/api/history/:id", h.Get)
	router.GET("/api/history/:id/report", h.Report)
}

// HistoryEntry is a record with its display timestamp.
type HistoryEntry struct {
	history.Record
	Display string `json:"display"`
}

// HistoryResponse is the response body for GET /api/history.
type HistoryResponse struct {
	Records []HistoryEntry `json:"records"`
	Total   int            `json:"total"`
}

// List handles GET /api/history[?model=SoloQ|QAOA], newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records := h.store.List()
	if model := r.URL.Query().Get("model"); model != "" {
		records = h.store.ByModel(model)
	}
	entries := make([]HistoryEntry, len(records))
	for i, rec := range records {
		entries[i] = HistoryEntry{Record: rec, Display: history.FormatTimestamp(rec.Timestamp)}
	}
	WriteJSON(w, http.StatusOK, HistoryResponse{Records: entries, Total: len(entries)})
}

// Summary handles GET /api/history/summary.
func (h *HistoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Summaries())
}

// Get handles GET /api/history/:id.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(PathParam(r, "id"))
	if err != nil {
		WriteReportError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, HistoryEntry{Record: rec, Display: history.FormatTimestamp(rec.Timestamp)})
}

// Report handles GET /api/history/:id/report.
func (h *HistoryHandler) Report(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(PathParam(r, "id"))
	if err != nil {
		WriteReportError(w, err)
		return
	}
	th := h.threshold
	writeReportOrPreview(h.renderer, w, r, rec.ReportRequest(&th))
}

// Export handles GET /api/history/export/:format (csv, tsv, xlsx or html).
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := PathParam(r, "format")

	var buf bytes.Buffer
	if err := export.WriteHistory(&buf, format, h.store); err != nil {
		WriteReportError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.HistoryContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.HistoryFilename(format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
