// Package evaluator provides the demo datasets and the mock evaluations that
// feed the report builder. No model is executed: results are fixed per
// dataset and delivered after a simulated delay.
package evaluator

import (
	"sort"
	"sync"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// Model names.
const (
	ModelSoloQ = "SoloQ"
	ModelQAOA  = "QAOA"
)

// Models lists the evaluated models in display order.
var Models = []string{ModelSoloQ, ModelQAOA}

// ClassCounts is the per-class sample total and number classified correctly.
type ClassCounts struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// ModelResult is the fixed outcome of one model on one dataset.
type ModelResult struct {
	Scores metrics.Scores `json:"scores"`
	Counts [2]ClassCounts `json:"counts"`
}

// Confusion builds the two-class confusion matrix from the raw counts.
func (r ModelResult) Confusion() metrics.ConfusionMatrix {
	return metrics.BinaryConfusion(r.Counts[0].Total, r.Counts[0].Correct, r.Counts[1].Total, r.Counts[1].Correct)
}

// Dataset is a demo dataset and the canned results of every model on it.
type Dataset struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Classes     [2]string              `json:"classes"`
	Results     map[string]ModelResult `json:"-"`
}

// Result returns the canned result of model on the dataset.
func (d *Dataset) Result(model string) (ModelResult, error) {
	r, ok := d.Results[model]
	if !ok {
		return ModelResult{}, werrors.Ef(werrors.ErrModelUnknown, "model %q is not evaluated on %s", model, d.ID).
			WithContext("model", model).
			WithContext("dataset", d.ID)
	}
	return r, nil
}

// Registry manages the available datasets.
type Registry struct {
	datasets map[string]*Dataset
	mu       sync.RWMutex
}

// NewRegistry creates an empty dataset registry.
func NewRegistry() *Registry {
	return &Registry{datasets: make(map[string]*Dataset)}
}

// Register adds a dataset to the registry.
func (r *Registry) Register(d *Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[d.ID]; exists {
		return werrors.Ef(werrors.ErrDatasetExists, "dataset %q already registered", d.ID)
	}
	r.datasets[d.ID] = d
	return nil
}

// Get retrieves a dataset by ID.
func (r *Registry) Get(id string) (*Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.datasets[id]
	if !ok {
		return nil, werrors.DatasetNotFound(id)
	}
	return d, nil
}

// IDs returns the registered dataset IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.datasets))
	for id := range r.datasets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns the registered datasets sorted by ID.
func (r *Registry) List() []*Dataset {
	ids := r.IDs()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Dataset, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.datasets[id])
	}
	return out
}

// DefaultRegistry returns a registry holding the three demo datasets.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	// Fresh registry with distinct IDs: Register cannot fail.
	for _, d := range demoDatasets() {
		_ = registry.Register(d)
	}
	return registry
}

func demoDatasets() []*Dataset {
	return []*Dataset{
		{
			ID:          "wines",
			Name:        "Wine Quality",
			Description: "Evaluate quantum models on wine quality classification",
			Classes:     [2]string{"BadWine", "GoodWine"},
			Results: map[string]ModelResult{
				ModelSoloQ: {
					Scores: metrics.Scores{Accuracy: 0.81, Precision: 0.80, Recall: 0.79, Specificity: 0.82, F1: 0.795},
					Counts: [2]ClassCounts{{49, 38}, {51, 41}},
				},
				ModelQAOA: {
					Scores: metrics.Scores{Accuracy: 0.77, Precision: 0.76, Recall: 0.75, Specificity: 0.78, F1: 0.755},
					Counts: [2]ClassCounts{{49, 40}, {51, 38}},
				},
			},
		},
		{
			ID:          "astronomy",
			Name:        "Astronomy (Phantom)",
			Description: "Test models on astronomical phantom data classification",
			Classes:     [2]string{"NonPulsar", "Pulsar"},
			Results: map[string]ModelResult{
				ModelSoloQ: {
					Scores: metrics.Scores{Accuracy: 0.91, Precision: 0.90, Recall: 0.89, Specificity: 0.92, F1: 0.90},
					Counts: [2]ClassCounts{{56, 55}, {64, 52}},
				},
				ModelQAOA: {
					Scores: metrics.Scores{Accuracy: 0.85, Precision: 0.83, Recall: 0.84, Specificity: 0.87, F1: 0.835},
					Counts: [2]ClassCounts{{56, 55}, {64, 52}},
				},
			},
		},
		{
			ID:          "particles",
			Name:        "Particles Physics",
			Description: "Evaluate quantum algorithms on particles physics data",
			Classes:     [2]string{"Pions", "OtherProtons"},
			Results: map[string]ModelResult{
				ModelSoloQ: {
					Scores: metrics.Scores{Accuracy: 0.93, Precision: 0.92, Recall: 0.91, Specificity: 0.94, F1: 0.915},
					Counts: [2]ClassCounts{{49, 44}, {51, 50}},
				},
				ModelQAOA: {
					Scores: metrics.Scores{Accuracy: 0.88, Precision: 0.86, Recall: 0.87, Specificity: 0.89, F1: 0.865},
					Counts: [2]ClassCounts{{49, 41}, {51, 51}},
				},
			},
		},
	}
}
