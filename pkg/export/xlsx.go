package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/history"
)

// Workbook sheet names.
const (
	SheetHistory = "History"
	SheetSummary = "Summary"
)

var summaryColumns = []string{"model_type", "runs", "latest", "accuracy", "precision", "recall", "specificity", "f1_score"}

// WriteHistoryXLSX writes records to an Excel workbook with one row per run
// on the History sheet and per-model averages on the Summary sheet.
func WriteHistoryXLSX(w io.Writer, records []history.Record, summaries []history.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetHistory); err != nil {
		return xlsxError(err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return xlsxError(err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return xlsxError(err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return xlsxError(err)
	}

	if err := writeRow(f, SheetHistory, 1, toAny(historyColumns)); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{r.ID, r.Timestamp.UTC(), r.ModelType, r.ModelFile, r.CSVFile}
		for _, v := range r.Result.Values() {
			row = append(row, v)
		}
		if err := writeRow(f, SheetHistory, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, SheetSummary, 1, toAny(summaryColumns)); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{s.ModelType, s.Runs, s.Latest.UTC()}
		for _, v := range s.Mean.Values() {
			row = append(row, v)
		}
		if err := writeRow(f, SheetSummary, i+2, row); err != nil {
			return err
		}
	}

	for sheet, n := range map[string]int{SheetHistory: len(historyColumns), SheetSummary: len(summaryColumns)} {
		last, _ := excelize.ColumnNumberToName(n)
		if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
			return xlsxError(err)
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return xlsxError(err)
		}
	}

	if idx, err := f.GetSheetIndex(SheetHistory); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.Write(w); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to write workbook")
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return xlsxError(err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return xlsxError(err)
		}
	}
	return nil
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func xlsxError(err error) error {
	return werrors.Wrap(err, werrors.ErrExportFailed, werrors.CategoryRender, "failed to build workbook")
}
