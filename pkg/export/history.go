package export

import (
	"io"
	"strings"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/history"
)

// History export formats.
const (
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
)

// HistoryFormats lists the supported history export formats.
var HistoryFormats = []string{FormatCSV, FormatTSV, FormatXLSX, FormatHTML}

// WriteHistory exports the store in the named format.
func WriteHistory(w io.Writer, format string, store *history.Store) error {
	records := store.List()
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteHistoryCSV(w, records, DefaultCSVConfig())
	case FormatTSV:
		cfg := DefaultCSVConfig()
		cfg.Dialect = DialectTSV
		return WriteHistoryCSV(w, records, cfg)
	case FormatXLSX:
		return WriteHistoryXLSX(w, records, store.Summaries())
	case FormatHTML:
		return WriteHistoryDashboard(w, records, store.Summaries())
	default:
		return werrors.FormatUnsupported(format, HistoryFormats...)
	}
}

// HistoryContentType returns the MIME type of a history export format.
func HistoryContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatTSV:
		return "text/tab-separated-values; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// HistoryFilename returns the download name of a history export.
func HistoryFilename(format string) string {
	return "evaluation_history." + strings.ToLower(format)
}
