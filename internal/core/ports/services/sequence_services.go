package services

import "context"

// SequenceSvcFacade defines gapless-per-prefix document numbering.
type SequenceSvcFacade interface {
	// Next returns the next number for prefix in the given year, formatted
	// PREFIX-YYYY-NNNNNN.
	Next(ctx context.Context, prefix string, year int) (string, error)
}
