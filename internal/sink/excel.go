package sink

import (
	"fmt"

	"newshound/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXSink writes records to a single-sheet spreadsheet workbook.
type XLSXSink struct {
	path  string
	sheet string
}

// NewXLSXSink creates an XLSX sink writing to path with the given
// sheet name.
func NewXLSXSink(path, sheet string) *XLSXSink {
	return &XLSXSink{path: path, sheet: sheet}
}

// Path returns the output file path.
func (s *XLSXSink) Path() string {
	return s.path
}

// Write overwrites the workbook with one sheet containing the header
// row and one row per record, in the same column order as the CSV
// output.
func (s *XLSXSink) Write(records []models.Headline) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, s.sheet, 1, models.Columns()); err != nil {
		return err
	}

	for i, r := range records {
		if err := writeRow(f, s.sheet, i+2, r.Row()); err != nil {
			return err
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}

	// SetSheetRow writes the whole row from the anchor cell.
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	return nil
}
