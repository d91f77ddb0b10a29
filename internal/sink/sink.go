// Package sink persists headline records to tabular output files.
package sink

import (
	"errors"

	"newshound/internal/models"
)

// Sink writes the full ordered record sequence to a destination,
// replacing any previous contents.
type Sink interface {
	Write(records []models.Headline) error
	Path() string
}

// WriteAll attempts every sink regardless of earlier failures: one
// sink failing must not block the others. The returned error joins
// whatever failed.
func WriteAll(records []models.Headline, sinks ...Sink) error {
	var errs []error

	for _, s := range sinks {
		if err := s.Write(records); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
