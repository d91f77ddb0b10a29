package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"newshound/internal/models"
)

// CSVSink writes records as comma-separated UTF-8 text with a header
// row.
type CSVSink struct {
	path string
}

// NewCSVSink creates a CSV sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Path returns the output file path.
func (s *CSVSink) Path() string {
	return s.path
}

// Write overwrites the output file with a header row followed by one
// row per record.
func (s *CSVSink) Write(records []models.Headline) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(models.Columns()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close csv file: %w", err)
	}

	return nil
}
