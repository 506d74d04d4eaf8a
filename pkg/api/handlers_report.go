package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/export"
	"github.com/r3d91ll/qmreport/pkg/logging"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// Report response headers.
const (
	HeaderFingerprint = "X-Report-SHA256"
	HeaderPages       = "X-Report-Pages"
	HeaderRequestID   = "X-Request-ID"
)

// Renderer builds reports and writes them as PDF or preview responses. It is
// shared by every handler that produces a report.
type Renderer struct {
	// Config is copied into a fresh builder per request.
	Config *report.Config

	// PreviewScale is pixels per millimetre for previews.
	// Default: export.DefaultPreviewScale
	PreviewScale float64

	// Clock overrides the build time. Nil uses the wall clock.
	Clock func() time.Time

	// Events receives a report_generated event per PDF. Nil discards them.
	Events EventBroadcaster
}

// NewRenderer creates a renderer with the given builder configuration.
func NewRenderer(config *report.Config, previewScale float64, events EventBroadcaster) *Renderer {
	if config == nil {
		config = report.DefaultConfig()
	}
	if previewScale <= 0 {
		previewScale = export.DefaultPreviewScale
	}
	return &Renderer{Config: config, PreviewScale: previewScale, Events: events}
}

// Build lays out req with the renderer's configuration.
func (rr *Renderer) Build(req report.Request) (*report.Document, error) {
	return report.NewBuilder().WithConfig(rr.Config).WithClock(rr.Clock).Build(req)
}

// WritePDF builds req and sends the PDF as an attachment. Errors are written
// as JSON before any PDF byte is sent.
func (rr *Renderer) WritePDF(w http.ResponseWriter, req report.Request) {
	doc, err := rr.Build(req)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	data, err := export.PDFBytes(doc)
	if err != nil {
		WriteReportError(w, err)
		return
	}

	fp := export.Fingerprint(doc)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(HeaderFingerprint, fp)
	w.Header().Set(HeaderPages, strconv.Itoa(doc.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	logging.LogFields("report", "generated", "file", doc.Filename, "pages", doc.Pages, "sha256", export.ShortFingerprint(fp))
	if rr.Events != nil {
		_ = rr.Events.BroadcastReport(newReportEvent(doc.Filename, doc.ModelName, doc.Pages, fp, doc.GeneratedAt))
	}
}

// WritePreview builds req and sends one page as an image. The page and
// format come from the "page" (default 1) and "format" (default png) query
// parameters.
func (rr *Renderer) WritePreview(w http.ResponseWriter, r *http.Request, req report.Request) {
	page, err := QueryInt(r, "page", 1)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatPNG
	}

	doc, err := rr.Build(req)
	if err != nil {
		WriteReportError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.RenderPreview(doc, rr.Config.Geometry, page, format, rr.PreviewScale, &buf); err != nil {
		WriteReportError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.PreviewContentType(format))
	w.Header().Set(HeaderPages, strconv.Itoa(doc.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// -----------------------------------------------------------------------------
// ReportHandler
// -----------------------------------------------------------------------------

// ReportHandler renders reports from client-supplied requests.
type ReportHandler struct {
	renderer *Renderer
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(renderer *Renderer) *ReportHandler {
	return &ReportHandler{renderer: renderer}
}

// RegisterRoutes registers the report API routes on the router.
func (h *ReportHandler) RegisterRoutes(router *Router) {
	router.POST("/api/report", h.Generate)
	router.POST("/api/report/preview", h.Preview)
}

// Generate handles POST /api/report. An empty body produces the default
// report.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReportRequest(r)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	h.renderer.WritePDF(w, *req)
}

// Preview handles POST /api/report/preview.
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReportRequest(r)
	if err != nil {
		WriteReportError(w, err)
		return
	}
	h.renderer.WritePreview(w, r, *req)
}

func decodeReportRequest(r *http.Request) (*report.Request, error) {
	body, err := ReadBody(r)
	if err != nil {
		return nil, err
	}
	req, err := report.DecodeRequest(body)
	if err != nil {
		if re, ok := werrors.AsReportError(err); ok {
			re.WithContext("endpoint", r.URL.Path)
		}
		return nil, err
	}
	return req, nil
}
