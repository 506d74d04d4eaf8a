package evaluator

import (
	"context"
	"strings"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/logging"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// Dataset choices of the training form.
const (
	ChoiceSingle   = "single"
	ChoiceSeparate = "separate"
)

// TrainingConfig is the training form.
type TrainingConfig struct {
	DatasetChoice string  `json:"datasetChoice"`
	SingleFile    string  `json:"singleFile,omitempty"`
	TrainFile     string  `json:"trainFile,omitempty"`
	TestFile      string  `json:"testFile,omitempty"`
	Class0Name    string  `json:"class0Name,omitempty"`
	Class1Name    string  `json:"class1Name,omitempty"`
	NumEpochs     int     `json:"numEpochs"`
	NumIterations int     `json:"numIterations"`
	LearningRate  float64 `json:"learningRate"`
	TestSize      float64 `json:"testSize"`
	ValSize       float64 `json:"valSize"`
}

// DefaultTrainingConfig returns the form defaults. DatasetChoice is left
// empty and must be chosen.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Class0Name:    "Class 0",
		Class1Name:    "Class 1",
		NumEpochs:     100,
		NumIterations: 1,
		LearningRate:  0.1,
		TestSize:      0.2,
		ValSize:       0.25,
	}
}

// ValidateCSVName rejects file names without a .csv extension.
func ValidateCSVName(name string) error {
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return werrors.E(werrors.ErrFileFormatInvalid, "Invalid file format: please upload a CSV file").
			WithContext("file", name)
	}
	return nil
}

// Validate checks the form in the order it is filled in.
func (c TrainingConfig) Validate() error {
	switch c.DatasetChoice {
	case "":
		return werrors.E(werrors.ErrDatasetChoiceEmpty, "Dataset choice required")
	case ChoiceSingle:
		if c.SingleFile == "" {
			return werrors.E(werrors.ErrFieldRequired, "File required").WithContext("field", "singleFile")
		}
		if err := ValidateCSVName(c.SingleFile); err != nil {
			return err
		}
	case ChoiceSeparate:
		if c.TrainFile == "" || c.TestFile == "" {
			return werrors.E(werrors.ErrFieldRequired, "Files required").WithContext("field", "trainFile,testFile")
		}
		for _, f := range []string{c.TrainFile, c.TestFile} {
			if err := ValidateCSVName(f); err != nil {
				return err
			}
		}
	default:
		return werrors.Ef(werrors.ErrDatasetChoiceEmpty, "unknown dataset choice %q", c.DatasetChoice)
	}

	switch {
	case c.NumEpochs <= 0:
		return werrors.E(werrors.ErrValueOutOfRange, "numEpochs must be positive")
	case c.NumIterations <= 0:
		return werrors.E(werrors.ErrValueOutOfRange, "numIterations must be positive")
	case c.LearningRate <= 0:
		return werrors.E(werrors.ErrValueOutOfRange, "learningRate must be positive")
	case c.TestSize <= 0 || c.TestSize >= 1:
		return werrors.E(werrors.ErrValueOutOfRange, "testSize must be between 0 and 1")
	case c.ValSize <= 0 || c.ValSize >= 1:
		return werrors.E(werrors.ErrValueOutOfRange, "valSize must be between 0 and 1")
	}
	return nil
}

// EpochAccuracy is one row of the training curve.
type EpochAccuracy struct {
	Epoch      float64 `json:"epoch"`
	Training   float64 `json:"training"`
	Validation float64 `json:"validation"`
	Test       float64 `json:"test"`
}

// ConfusionShare is a confusion-matrix cell as a percentage of samples.
type ConfusionShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TrainingOutcome is the fixed result of a simulated training run.
type TrainingOutcome struct {
	Config    TrainingConfig   `json:"config"`
	Curve     []EpochAccuracy  `json:"curve"`
	Metrics   []metrics.Record `json:"metrics"`
	Confusion []ConfusionShare `json:"confusion"`
}

func trainingOutcome(cfg TrainingConfig) *TrainingOutcome {
	return &TrainingOutcome{
		Config: cfg,
		Curve: []EpochAccuracy{
			{0, 45, 42, 40},
			{20, 65, 62, 58},
			{40, 78, 75, 72},
			{60, 85, 82, 79},
			{80, 90, 87, 84},
			{100, 92.45, 89.23, 87.65},
		},
		Metrics: []metrics.Record{
			{Name: "Accuracy", Value: 87.65},
			{Name: "Precision", Value: 88.92},
			{Name: "Recall", Value: 86.78},
			{Name: "F1 Score", Value: 87.84},
		},
		Confusion: []ConfusionShare{
			{"True Negative", 45.2},
			{"False Positive", 8.8},
			{"False Negative", 7.3},
			{"True Positive", 38.7},
		},
	}
}

// ReportRequest converts the outcome into a report with the training curve.
func (o *TrainingOutcome) ReportRequest(th *metrics.Threshold) report.Request {
	recs := make([]metrics.Record, len(o.Metrics))
	copy(recs, o.Metrics)
	for i := range recs {
		if th != nil {
			t := *th
			recs[i].Threshold = &t
		}
	}
	points := make([]metrics.TrainingPoint, len(o.Curve))
	for i, c := range o.Curve {
		points[i] = metrics.TrainingPoint{Epoch: c.Epoch, Accuracy: c.Training}
	}
	return report.Request{
		Metrics:   recs,
		ModelName: "Quantum Neural Network",
		Charts:    &report.ChartData{TrainingProgress: points},
	}
}

// Train validates the form and runs the simulated training loop, reporting
// progress from 0 to 100 in steps of 2.
func (e *Evaluator) Train(ctx context.Context, cfg TrainingConfig, progress func(pct int)) (*TrainingOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.LogFields("eval", "training started", "choice", cfg.DatasetChoice, "epochs", cfg.NumEpochs)

	for pct := 0; pct <= 100; pct += 2 {
		if progress != nil {
			progress(pct)
		}
		if err := sleep(ctx, e.config.StepInterval); err != nil {
			return nil, err
		}
	}

	logging.LogEvent("eval", "training completed")
	return trainingOutcome(cfg), nil
}
