package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zonebms/zone_backend/internal/apperrors"
	"github.com/zonebms/zone_backend/internal/core/domain"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	portssvc "github.com/zonebms/zone_backend/internal/core/ports/services"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

// counterCollection holds one counter record per prefix and year. The record
// id is deterministic ("SO-2026") so concurrent seeding collides on create
// instead of producing two counters.
const counterCollection = "counters"

type sequenceService struct {
	BaseService
	store portsrepo.DocumentStore
}

// NewSequenceService creates the number generator over the document store.
func NewSequenceService(store portsrepo.DocumentStore) portssvc.SequenceSvcFacade {
	return &sequenceService{store: store}
}

// Ensure sequenceService implements the SequenceSvcFacade interface
var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// Next claims the next number for prefix in year via a compare-and-swap on
// the counter record, retrying a bounded number of times on conflict.
func (s *sequenceService) Next(ctx context.Context, prefix string, year int) (string, error) {
	source, ok := domain.NumberSources()[prefix]
	if !ok {
		return "", fmt.Errorf("%w: unknown number prefix %q", apperrors.ErrValidation, prefix)
	}

	counterID := fmt.Sprintf("%s-%d", prefix, year)
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		counter, err := s.store.Get(ctx, counterCollection, counterID)
		if errors.Is(err, apperrors.ErrNotFound) {
			counter, err = s.seedCounter(ctx, counterID, prefix, year, source)
		}
		if err != nil {
			return "", err
		}

		current := mapping.Int(counter, "value")
		next := current + 1
		cond := portsrepo.Condition{Field: "value", Op: portsrepo.CondEq, Value: current}
		if _, err := s.store.UpdateWhere(ctx, counterCollection, counterID, cond, portsrepo.Record{"value": next}); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			return "", err
		}
		return formatNumber(prefix, year, next), nil
	}
	return "", fmt.Errorf("%w: could not claim next number for %s-%d", apperrors.ErrConflict, prefix, year)
}

// seedCounter creates the counter for a prefix and year, starting from the
// highest number already present in the backing collection so numbering
// continues seamlessly over pre-counter data.
func (s *sequenceService) seedCounter(ctx context.Context, counterID, prefix string, year int, source domain.NumberSource) (portsrepo.Record, error) {
	seed, err := s.highestExisting(ctx, prefix, year, source)
	if err != nil {
		return nil, err
	}
	fields := portsrepo.Record{
		"id":     counterID,
		"prefix": prefix,
		"year":   year,
		"value":  seed,
	}
	counter, err := s.store.Create(ctx, counterCollection, fields)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// A concurrent caller seeded it first.
		return s.store.Get(ctx, counterCollection, counterID)
	}
	return counter, err
}

func (s *sequenceService) highestExisting(ctx context.Context, prefix string, year int, source domain.NumberSource) (int64, error) {
	sortBy := &portsrepo.Sort{Field: source.NumberField, Desc: true}
	records, err := s.store.List(ctx, source.Collection, nil, sortBy, 0)
	if err != nil {
		return 0, err
	}
	want := fmt.Sprintf("%s-%d-", prefix, year)
	for _, record := range records {
		number := mapping.String(record, source.NumberField)
		if !strings.HasPrefix(number, want) {
			continue
		}
		seq, err := strconv.ParseInt(number[len(want):], 10, 64)
		if err != nil {
			continue
		}
		// Records are sorted descending, the first match is the highest.
		return seq, nil
	}
	return 0, nil
}

func formatNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}
