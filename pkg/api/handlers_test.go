package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	handler http.Handler
	events  *RecordingBroadcaster
	store   *history.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	events := &RecordingBroadcaster{}
	renderer := NewRenderer(report.DefaultConfig(), 1, nil)
	renderer.Clock = func() time.Time { return fixedNow }

	store := history.NewStaticStore()
	srv := NewServer(&ServerConfig{Port: 8081})
	RegisterRoutes(srv.Router(), Services{
		Evaluator: evaluator.New(nil, evaluator.Config{Threshold: *metrics.DefaultThreshold()}),
		History:   store,
		Renderer:  renderer,
		Threshold: *metrics.DefaultThreshold(),
		Events:    events,
		Version:   "test",
	})
	return &testAPI{handler: srv.Handler(), events: events, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *APIError {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("Expected error in response")
	}
	return resp.Error
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatal("Expected success response")
	}
	if err := json.Unmarshal(resp.Data, target); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

// -----------------------------------------------------------------------------
// Report Endpoint Tests
// -----------------------------------------------------------------------------

const testReportBody = `{"metrics":[{"name":"Accuracy","value":87.65,"threshold":{"good":90,"warning":70}}],` +
	`"modelName":"Test Model","timestamp":"Jan 1, 2025"}`

func TestReportHandler_Generate(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodPost, "/api/report", testReportBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Quantum_Model_Evaluation_2025-01-01.pdf") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}
	if fp := rec.Header().Get(HeaderFingerprint); len(fp) != 64 {
		t.Errorf("Expected 64-char fingerprint, got %q", fp)
	}
	if rec.Header().Get(HeaderPages) == "" {
		t.Error("Expected page count header")
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Expected PDF body")
	}

	if _, _, reports := a.events.Counts(); reports != 1 {
		t.Errorf("Expected 1 report event, got %d", reports)
	}
	if got := a.events.Reports[0].ModelName; got != "Test Model" {
		t.Errorf("Expected event for Test Model, got %q", got)
	}
}

func TestReportHandler_Deterministic(t *testing.T) {
	a := newTestAPI(t)
	first := a.do(t, http.MethodPost, "/api/report", testReportBody).Header().Get(HeaderFingerprint)
	second := a.do(t, http.MethodPost, "/api/report", testReportBody).Header().Get(HeaderFingerprint)
	if first != second {
		t.Errorf("Expected identical fingerprints, got %s and %s", first, second)
	}
}

func TestReportHandler_EmptyBody(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodPost, "/api/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected default report, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReportHandler_Invalid(t *testing.T) {
	a := newTestAPI(t)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"out of range value", `{"metrics":[{"name":"Accuracy","value":140}]}`, werrors.ErrRequestInvalid},
		{"missing name", `{"metrics":[{"value":40}]}`, werrors.ErrRequestInvalid},
		{"malformed matrix", `{"charts":{"confusionMatrix":[[1,2],[3]]}}`, werrors.ErrMatrixMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/api/report", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}
			if apiErr := decodeError(t, rec); apiErr.Code != tt.code {
				t.Errorf("Expected %s, got %s", tt.code, apiErr.Code)
			}
		})
	}
	if _, _, reports := a.events.Counts(); reports != 0 {
		t.Errorf("Expected no report events, got %d", reports)
	}
}

func TestReportHandler_Preview(t *testing.T) {
	a := newTestAPI(t)

	t.Run("png", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/report/preview?page=1", testReportBody)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected image/png, got %q", ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
			t.Error("Expected PNG signature")
		}
	})

	t.Run("svg", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/report/preview?format=svg", testReportBody)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Error("Expected SVG markup")
		}
	})

	t.Run("page out of range", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/report/preview?page=99", testReportBody)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
		if apiErr := decodeError(t, rec); apiErr.Code != werrors.ErrPageOutOfRange {
			t.Errorf("Expected %s, got %s", werrors.ErrPageOutOfRange, apiErr.Code)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, "/api/report/preview?format=gif", testReportBody)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
	})
}

// -----------------------------------------------------------------------------
// Dataset Endpoint Tests
// -----------------------------------------------------------------------------

func TestDatasetHandler_List(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/api/datasets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp DatasetsResponse
	decodeData(t, rec, &resp)
	if len(resp.Datasets) != 3 || resp.Datasets[0].ID != "astronomy" {
		t.Errorf("Unexpected datasets: %+v", resp.Datasets)
	}
	if len(resp.Models) != 2 {
		t.Errorf("Expected 2 models, got %v", resp.Models)
	}
}

func TestDatasetHandler_Evaluate(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodPost, "/api/datasets/particles/evaluate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var c struct {
		Results        map[string]metrics.Scores `json:"results"`
		Recommendation string                    `json:"recommendation"`
	}
	decodeData(t, rec, &c)
	if c.Recommendation != evaluator.ModelSoloQ {
		t.Errorf("Expected SoloQ recommendation, got %q", c.Recommendation)
	}
	if c.Results[evaluator.ModelQAOA].Accuracy != 0.88 {
		t.Errorf("Expected QAOA accuracy 0.88, got %v", c.Results[evaluator.ModelQAOA].Accuracy)
	}
	if _, evals, _ := a.events.Counts(); evals != 1 {
		t.Errorf("Expected 1 evaluation event, got %d", evals)
	}
}

func TestDatasetHandler_NotFound(t *testing.T) {
	a := newTestAPI(t)
	for _, path := range []string{"/api/datasets/moons", "/api/datasets/moons/evaluate"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "evaluate") {
			method = http.MethodPost
		}
		rec := a.do(t, method, path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
			continue
		}
		if apiErr := decodeError(t, rec); apiErr.Code != werrors.ErrDatasetNotFound {
			t.Errorf("%s: expected DATASET_NOT_FOUND, got %s", path, apiErr.Code)
		}
	}
}

func TestDatasetHandler_Report(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodPost, "/api/datasets/wines/report?model=QAOA", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if a.events.Reports[0].ModelName != "QAOA on Wine Quality" {
		t.Errorf("Unexpected model name %q", a.events.Reports[0].ModelName)
	}

	rec = a.do(t, http.MethodPost, "/api/datasets/wines/report?model=Classic", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown model, got %d", rec.Code)
	}

	rec = a.do(t, http.MethodPost, "/api/datasets/wines/report?format=docx", "")
	if apiErr := decodeError(t, rec); apiErr.Code != werrors.ErrFormatUnsupported {
		t.Errorf("Expected FORMAT_UNSUPPORTED, got %s", apiErr.Code)
	}
}

// -----------------------------------------------------------------------------
// Training Endpoint Tests
// -----------------------------------------------------------------------------

func TestTrainingHandler_Train(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodPost, "/api/training?runId=run-1",
		`{"datasetChoice":"single","singleFile":"pulsar.csv","numEpochs":50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp TrainingResponse
	decodeData(t, rec, &resp)
	if resp.RunID != "run-1" {
		t.Errorf("Expected run-1, got %q", resp.RunID)
	}
	if resp.Outcome.Config.NumEpochs != 50 || resp.Outcome.Config.LearningRate != 0.1 {
		t.Errorf("Expected form defaults merged with body, got %+v", resp.Outcome.Config)
	}

	progress, _, _ := a.events.Counts()
	if progress != 52 {
		t.Errorf("Expected 51 progress events and 1 completion, got %d", progress)
	}
	last := a.events.Progress[progress-1]
	if !last.Complete || last.Type() != EventTypeTrainingComplete {
		t.Errorf("Expected final completion event, got %+v", last)
	}

	rec = a.do(t, http.MethodGet, "/api/training/run-1/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected report of finished run, got %d", rec.Code)
	}
	if rec = a.do(t, http.MethodGet, "/api/training/run-2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown run, got %d", rec.Code)
	}
}

func TestTrainingHandler_Invalid(t *testing.T) {
	a := newTestAPI(t)
	tests := []struct {
		body string
		code string
	}{
		{`{}`, werrors.ErrDatasetChoiceEmpty},
		{`{"datasetChoice":"single","singleFile":"data.txt"}`, werrors.ErrFileFormatInvalid},
		{`{"datasetChoice":"separate","trainFile":"a.csv"}`, werrors.ErrFieldRequired},
		{`{"datasetChoice":"single","singleFile":"a.csv","testSize":1.5}`, werrors.ErrValueOutOfRange},
		{`{"datasetChoice":`, werrors.ErrRequestInvalid},
	}
	for _, tt := range tests {
		rec := a.do(t, http.MethodPost, "/api/training", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.body, rec.Code)
			continue
		}
		if apiErr := decodeError(t, rec); apiErr.Code != tt.code {
			t.Errorf("%s: expected %s, got %s", tt.body, tt.code, apiErr.Code)
		}
	}
	if progress, _, _ := a.events.Counts(); progress != 0 {
		t.Errorf("Expected no progress for invalid forms, got %d", progress)
	}
}

// -----------------------------------------------------------------------------
// History Endpoint Tests
// -----------------------------------------------------------------------------

func TestHistoryHandler_List(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/api/history", "")
	var resp HistoryResponse
	decodeData(t, rec, &resp)
	if resp.Total != 11 {
		t.Errorf("Expected 11 records, got %d", resp.Total)
	}
	if resp.Records[0].Display != "Sep 9, 2025, 01:33 PM" {
		t.Errorf("Expected newest first, got %q", resp.Records[0].Display)
	}

	rec = a.do(t, http.MethodGet, "/api/history?model=QAOA", "")
	decodeData(t, rec, &resp)
	if resp.Total != 2 {
		t.Errorf("Expected 2 QAOA records, got %d", resp.Total)
	}
}

func TestHistoryHandler_GetAndReport(t *testing.T) {
	a := newTestAPI(t)
	id := a.store.List()[0].ID

	rec := a.do(t, http.MethodGet, "/api/history/"+id, "")
	var entry HistoryEntry
	decodeData(t, rec, &entry)
	if entry.ID != id {
		t.Errorf("Expected record %s, got %s", id, entry.ID)
	}

	rec = a.do(t, http.MethodGet, "/api/history/"+id+"/report", "")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Errorf("Expected PDF report, got %d", rec.Code)
	}

	rec = a.do(t, http.MethodGet, "/api/history/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHistoryHandler_Export(t *testing.T) {
	a := newTestAPI(t)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"csv", "text/csv", "id,timestamp,model_type"},
		{"tsv", "text/tab-separated-values", "id\ttimestamp"},
		{"xlsx", "application/vnd.openxmlformats", "PK"},
		{"html", "text/html", ""},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := a.do(t, http.MethodGet, "/api/history/export/"+tt.format, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Expected %s, got %s", tt.contentType, ct)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("Unexpected body prefix %q", rec.Body.String()[:10])
			}
		})
	}

	rec := a.do(t, http.MethodGet, "/api/history/export/pdf", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unsupported export, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(t, http.MethodGet, "/api/health", "")
	var resp HealthResponse
	decodeData(t, rec, &resp)
	if resp.Status != "ok" || resp.Datasets != 3 || resp.Records != 11 {
		t.Errorf("Unexpected health: %+v", resp)
	}
}
