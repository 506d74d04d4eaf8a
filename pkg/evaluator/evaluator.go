package evaluator

import (
	"context"
	"time"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/logging"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// Config tunes the simulated timings.
type Config struct {
	// Delay is how long a comparison takes.
	// Default: 1s
	Delay time.Duration

	// StepInterval is the pause between training progress steps.
	// Default: 50ms
	StepInterval time.Duration

	// Threshold bands the mock results in generated reports.
	// Default: good 90, warning 70
	Threshold metrics.Threshold
}

// DefaultConfig returns the standard simulated timings.
func DefaultConfig() Config {
	return Config{
		Delay:        time.Second,
		StepInterval: 50 * time.Millisecond,
		Threshold:    *metrics.DefaultThreshold(),
	}
}

// Evaluator runs mock evaluations against a dataset registry.
type Evaluator struct {
	registry *Registry
	config   Config
}

// New creates an evaluator. A nil registry uses DefaultRegistry.
func New(registry *Registry, config Config) *Evaluator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Evaluator{registry: registry, config: config}
}

// Registry returns the dataset registry.
func (e *Evaluator) Registry() *Registry { return e.registry }

// Comparison is the result of evaluating every model on one dataset.
type Comparison struct {
	Dataset        *Dataset                  `json:"dataset"`
	Results        map[string]metrics.Scores `json:"results"`
	Recommendation string                    `json:"recommendation"`
	threshold      metrics.Threshold
}

// Compare evaluates both models on the dataset after the configured delay.
func (e *Evaluator) Compare(ctx context.Context, datasetID string) (*Comparison, error) {
	d, err := e.registry.Get(datasetID)
	if err != nil {
		return nil, err
	}

	logging.LogEvent("eval", "comparing models on %s", d.ID)
	if err := sleep(ctx, e.config.Delay); err != nil {
		return nil, err
	}

	c := &Comparison{
		Dataset:        d,
		Results:        make(map[string]metrics.Scores, len(d.Results)),
		Recommendation: ModelSoloQ,
		threshold:      e.config.Threshold,
	}
	for name, r := range d.Results {
		c.Results[name] = r.Scores
	}
	return c, nil
}

// ReportRequest turns one model's result into a report request with the
// model comparison and confusion matrix charts.
func (c *Comparison) ReportRequest(model string) (report.Request, error) {
	res, err := c.Dataset.Result(model)
	if err != nil {
		return report.Request{}, err
	}
	th := c.threshold

	var comparison []metrics.Record
	for _, m := range Models {
		if r, ok := c.Results[m]; ok {
			comparison = append(comparison, metrics.Record{
				Name:      m + " Accuracy",
				Value:     r.Accuracy * 100,
				Threshold: &metrics.Threshold{Good: th.Good, Warning: th.Warning},
			})
		}
	}

	return report.Request{
		Metrics:   res.Scores.Records(&th),
		ModelName: model + " on " + c.Dataset.Name,
		Charts: &report.ChartData{
			MetricsComparison: comparison,
			ConfusionMatrix:   res.Confusion(),
			ConfusionLabels:   c.Dataset.Classes[:],
		},
	}, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	cancelled := func() error {
		return werrors.Wrap(ctx.Err(), werrors.ErrCancelled, werrors.CategoryInternal, "evaluation cancelled")
	}
	if d <= 0 {
		if ctx.Err() != nil {
			return cancelled()
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return cancelled()
	case <-t.C:
		return nil
	}
}
