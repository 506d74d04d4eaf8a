// Package config handles qmreport configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/metrics"
	"github.com/r3d91ll/qmreport/pkg/report"
)

// Config is the root configuration structure.
type Config struct {
	Report     ReportConfig     `yaml:"report"`
	Server     ServerConfig     `yaml:"server"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ReportConfig holds the fixed report texts and output settings.
type ReportConfig struct {
	Author           string            `yaml:"author"`
	Creator          string            `yaml:"creator"`
	Version          string            `yaml:"version"`
	Status           string            `yaml:"status"`
	DefaultModelName string            `yaml:"default_model_name"`
	OutputDir        string            `yaml:"output_dir"`
	PreviewScale     float64           `yaml:"preview_scale"`
	Threshold        metrics.Threshold `yaml:"threshold"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	EnableLogging bool          `yaml:"enable_logging"`
}

// EvaluationConfig holds the simulated evaluation timings.
type EvaluationConfig struct {
	Delay        time.Duration `yaml:"delay"`
	StepInterval time.Duration `yaml:"step_interval"`

	// HistoryFile replaces the built-in evaluation log when set.
	HistoryFile string `yaml:"history_file"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// File receives a copy of all log output when set.
	File string `yaml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	rc := report.DefaultConfig()
	ec := evaluator.DefaultConfig()
	return &Config{
		Report: ReportConfig{
			Author:           rc.Author,
			Creator:          rc.Creator,
			Version:          rc.Version,
			Status:           rc.Status,
			DefaultModelName: rc.DefaultModelName,
			OutputDir:        ".",
			PreviewScale:     3.78,
			Threshold:        *metrics.DefaultThreshold(),
		},
		Server: ServerConfig{
			Host:          "localhost",
			Port:          8081,
			ReadTimeout:   15 * time.Second,
			WriteTimeout:  30 * time.Second,
			IdleTimeout:   60 * time.Second,
			CORSOrigins:   []string{"http://localhost:5173"},
			EnableLogging: true,
		},
		Evaluation: EvaluationConfig{
			Delay:        ec.Delay,
			StepInterval: ec.StepInterval,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	invalid := func(field, msg string) error {
		return werrors.E(werrors.ErrConfigInvalid, msg).WithContext("field", field)
	}
	switch {
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return invalid("server.port", fmt.Sprintf("port %d is outside 1..65535", c.Server.Port))
	case c.Report.PreviewScale <= 0:
		return invalid("report.preview_scale", "preview scale must be positive")
	case c.Report.Threshold.Good < c.Report.Threshold.Warning:
		return invalid("report.threshold", "threshold.good must not be below threshold.warning")
	case c.Evaluation.Delay < 0 || c.Evaluation.StepInterval < 0:
		return invalid("evaluation", "evaluation timings must not be negative")
	}
	return nil
}

// Apply copies the report settings onto a builder configuration.
func (r ReportConfig) Apply(rc *report.Config) {
	if r.Author != "" {
		rc.Author = r.Author
	}
	if r.Creator != "" {
		rc.Creator = r.Creator
	}
	if r.Version != "" {
		rc.Version = r.Version
	}
	if r.Status != "" {
		rc.Status = r.Status
	}
	if r.DefaultModelName != "" {
		rc.DefaultModelName = r.DefaultModelName
	}
}

// ReportBuilderConfig returns a builder configuration with the report
// settings applied.
func (c *Config) ReportBuilderConfig() *report.Config {
	rc := report.DefaultConfig()
	c.Report.Apply(rc)
	return rc
}

// EvaluatorConfig returns the evaluator settings.
func (c *Config) EvaluatorConfig() evaluator.Config {
	return evaluator.Config{
		Delay:        c.Evaluation.Delay,
		StepInterval: c.Evaluation.StepInterval,
		Threshold:    c.Report.Threshold,
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.ConfigNotFound(path)
		}
		return nil, werrors.Wrap(err, werrors.ErrFileRead, werrors.CategoryIO, "failed to read config").
			WithContext("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrConfigParseFailed, werrors.CategoryConfig, "failed to parse config").
			WithContext("path", path)
	}
	if err := cfg.Validate(); err != nil {
		if re, ok := werrors.AsReportError(err); ok {
			re.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return werrors.Wrap(err, werrors.ErrConfigWriteFailed, werrors.CategoryConfig, "failed to create config directory").
			WithContext("path", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return werrors.Wrap(err, werrors.ErrConfigWriteFailed, werrors.CategoryConfig, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return werrors.Wrap(err, werrors.ErrConfigWriteFailed, werrors.CategoryConfig, "failed to write config file").
			WithContext("path", path)
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if _, err := os.Stat("qmreport.yaml"); err == nil {
		return "qmreport.yaml"
	}
	if _, err := os.Stat("config/qmreport.yaml"); err == nil {
		return "config/qmreport.yaml"
	}
	return "qmreport.yaml"
}

// InitConfig writes a default config file. An existing file is kept unless
// force is set.
func InitConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return werrors.E(werrors.ErrConfigAlreadyExists, "config file already exists").WithContext("path", path)
	}
	return Default().Save(path)
}
