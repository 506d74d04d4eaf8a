package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/history"
)

// CSVDialect specifies the CSV format variant.
type CSVDialect string

const (
	// DialectStandard uses RFC 4180 comma-separated values.
	DialectStandard CSVDialect = "standard"

	// DialectTSV uses tab-separated values instead of comma.
	DialectTSV CSVDialect = "tsv"
)

// CSVConfig specifies options for history CSV export.
type CSVConfig struct {
	// Dialect specifies the CSV format variant.
	// Default: DialectStandard
	Dialect CSVDialect

	// IncludeHeader writes column headers as the first row.
	// Default: true
	IncludeHeader bool

	// TimestampFormat specifies the format for the timestamp column.
	// Default: time.RFC3339 (ISO 8601, readable by R and pandas).
	TimestampFormat string

	// Precision is the number of decimal places for scores.
	// Default: 6
	Precision int

	// NAString is the representation for missing values.
	// Default: "NA"
	NAString string
}

// DefaultCSVConfig returns a CSVConfig with RFC 4180 output and ISO 8601
// timestamps.
func DefaultCSVConfig() *CSVConfig {
	return &CSVConfig{
		Dialect:         DialectStandard,
		IncludeHeader:   true,
		TimestampFormat: time.RFC3339,
		Precision:       6,
		NAString:        "NA",
	}
}

// historyColumns is the fixed column order of history exports.
var historyColumns = []string{
	"id",
	"timestamp",
	"model_type",
	"model_file",
	"csv_file",
	"accuracy",
	"precision",
	"recall",
	"specificity",
	"f1_score",
}

// CSVWriter writes history records to CSV format.
type CSVWriter struct {
	config      *CSVConfig
	writer      *csv.Writer
	headerDone  bool
	rowsWritten int
}

// NewCSVWriter creates a CSVWriter for w. If config is nil,
// DefaultCSVConfig() is used.
func NewCSVWriter(w io.Writer, config *CSVConfig) *CSVWriter {
	if config == nil {
		config = DefaultCSVConfig()
	}

	csvWriter := csv.NewWriter(w)
	if config.Dialect == DialectTSV {
		csvWriter.Comma = '\t'
	}

	return &CSVWriter{config: config, writer: csvWriter}
}

// WriteHeader writes the header row once.
func (cw *CSVWriter) WriteHeader() error {
	if cw.headerDone {
		return nil
	}
	if err := cw.writer.Write(historyColumns); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to write CSV header")
	}
	cw.headerDone = true
	return nil
}

// Write writes a single record, preceded by the header on first use when
// IncludeHeader is set.
func (cw *CSVWriter) Write(r history.Record) error {
	if cw.config.IncludeHeader && !cw.headerDone {
		if err := cw.WriteHeader(); err != nil {
			return err
		}
	}
	if err := cw.writer.Write(cw.formatRecord(r)); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to write CSV row")
	}
	cw.rowsWritten++
	return nil
}

// Flush flushes buffered rows to the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to flush CSV writer")
	}
	return nil
}

// RowsWritten returns the number of data rows written, excluding the header.
func (cw *CSVWriter) RowsWritten() int {
	return cw.rowsWritten
}

func (cw *CSVWriter) formatRecord(r history.Record) []string {
	na := cw.config.NAString
	timestamp := na
	if !r.Timestamp.IsZero() {
		timestamp = r.Timestamp.UTC().Format(cw.config.TimestampFormat)
	}

	row := []string{
		orNA(r.ID, na),
		timestamp,
		orNA(r.ModelType, na),
		orNA(r.ModelFile, na),
		orNA(r.CSVFile, na),
	}
	for _, v := range r.Result.Values() {
		row = append(row, strconv.FormatFloat(v, 'f', cw.config.Precision, 64))
	}
	return row
}

func orNA(s, na string) string {
	if s == "" {
		return na
	}
	return s
}

// WriteHistoryCSV writes records to w. If config is nil, DefaultCSVConfig()
// is used.
func WriteHistoryCSV(w io.Writer, records []history.Record, config *CSVConfig) error {
	cw := NewCSVWriter(w, config)
	if cw.config.IncludeHeader {
		if err := cw.WriteHeader(); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	return cw.Flush()
}
