// Package history provides the read-only log of past model evaluations.
package history

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// idSpace namespaces the deterministic record IDs.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("qmreport/history"))

// Record is one logged evaluation run.
type Record struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	ModelType string         `json:"modelType"`
	ModelFile string         `json:"modelFile"`
	CSVFile   string         `json:"csvFile"`
	Result    metrics.Scores `json:"result"`
}

// RecordID derives the stable identifier of a run from its timestamp.
func RecordID(ts time.Time) string {
	return uuid.NewSHA1(idSpace, []byte(ts.UTC().Format(time.RFC3339Nano))).String()
}

// Metrics returns the run's scores as percentage records.
func (r Record) Metrics(th *metrics.Threshold) []metrics.Record {
	return r.Result.Records(th)
}

// ReportRequest builds a report of the run with its scores as the
// comparison chart.
func (r Record) ReportRequest(th *metrics.Threshold) report.Request {
	return report.Request{
		Metrics:   r.Metrics(th),
		ModelName: r.ModelType + " (" + r.ModelFile + ")",
		Timestamp: report.DefaultTimestamp(r.Timestamp.UTC()),
		Charts:    &report.ChartData{MetricsComparison: r.Metrics(nil)},
	}
}

// FormatTimestamp renders a timestamp the way the history list shows it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006, 03:04 PM")
}

// Summary aggregates the runs of one model type.
type Summary struct {
	ModelType string         `json:"modelType"`
	Runs      int            `json:"runs"`
	Mean      metrics.Scores `json:"mean"`
	Latest    time.Time      `json:"latest"`
}

// Store holds evaluation records in memory.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

// NewStore creates a store from records, assigning IDs where missing.
func NewStore(records []Record) *Store {
	s := &Store{records: make([]Record, 0, len(records))}
	for _, r := range records {
		if r.ID == "" {
			r.ID = RecordID(r.Timestamp)
		}
		s.records = append(s.records, r)
	}
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Timestamp.After(s.records[j].Timestamp)
	})
	return s
}

// NewStaticStore returns the store seeded with the fixed evaluation log.
func NewStaticStore() *Store {
	return NewStore(staticRecords())
}

// LoadFile reads a JSON array of records.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrFileRead, werrors.CategoryIO, "failed to read history file").
			WithContext("path", path)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrFileFormatInvalid, werrors.CategoryValidation, "history file is not a JSON record list").
			WithContext("path", path)
	}
	return NewStore(records), nil
}

// List returns all records, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// Get returns the record with id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, werrors.HistoryNotFound(id)
}

// ByModel returns the records of one model type, newest first.
func (s *Store) ByModel(modelType string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, r := range s.records {
		if r.ModelType == modelType {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the newest record.
func (s *Store) Latest() (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return Record{}, werrors.E(werrors.ErrHistoryEmpty, "no evaluations have been logged")
	}
	return s.records[0], nil
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Summaries returns per-model aggregates ordered by model type.
func (s *Store) Summaries() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores := make(map[string][]metrics.Scores)
	latest := make(map[string]time.Time)
	for _, r := range s.records {
		scores[r.ModelType] = append(scores[r.ModelType], r.Result)
		if r.Timestamp.After(latest[r.ModelType]) {
			latest[r.ModelType] = r.Timestamp
		}
	}

	out := make([]Summary, 0, len(scores))
	for model, list := range scores {
		out = append(out, Summary{
			ModelType: model,
			Runs:      len(list),
			Mean:      metrics.Mean(list),
			Latest:    latest[model],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelType < out[j].ModelType })
	return out
}
