package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zonebms/zone_backend/internal/apperrors"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

// DocumentStore is an in-memory, mutex-guarded record store. It backs the
// service tests and local development without a database.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]portsrepo.Record
}

// NewDocumentStore creates an empty in-memory store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]portsrepo.Record),
	}
}

// Ensure DocumentStore implements portsrepo.DocumentStore
var _ portsrepo.DocumentStore = (*DocumentStore)(nil)

func (s *DocumentStore) Create(_ context.Context, collection string, fields portsrepo.Record) (portsrepo.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collections[collection]
	if coll == nil {
		coll = make(map[string]portsrepo.Record)
		s.collections[collection] = coll
	}

	record := copyRecord(fields)
	id, _ := record["id"].(string)
	if id == "" {
		id = uuid.NewString()
	} else if _, exists := coll[id]; exists {
		return nil, fmt.Errorf("%w: record %s already exists in %s", apperrors.ErrDuplicate, id, collection)
	}
	now := time.Now().UTC()
	record["id"] = id
	record["created_at"] = now
	record["updated_at"] = now
	coll[id] = record
	return copyRecord(record), nil
}

func (s *DocumentStore) Get(_ context.Context, collection, id string) (portsrepo.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: record %s in %s", apperrors.ErrNotFound, id, collection)
	}
	return copyRecord(record), nil
}

func (s *DocumentStore) List(_ context.Context, collection string, filter portsrepo.Filter, sortBy *portsrepo.Sort, limit int) ([]portsrepo.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]portsrepo.Record, 0)
	for _, record := range s.collections[collection] {
		if matchesFilter(record, filter) {
			results = append(results, copyRecord(record))
		}
	}
	if sortBy != nil {
		sort.SliceStable(results, func(i, j int) bool {
			cmp := compareValues(results[i][sortBy.Field], results[j][sortBy.Field])
			if sortBy.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *DocumentStore) Update(_ context.Context, collection, id string, fields portsrepo.Record) (portsrepo.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(collection, id, fields)
}

func (s *DocumentStore) UpdateWhere(_ context.Context, collection, id string, cond portsrepo.Condition, fields portsrepo.Record) (portsrepo.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: record %s in %s", apperrors.ErrNotFound, id, collection)
	}
	if !holds(record, cond) {
		return nil, fmt.Errorf("%w: condition on %s failed for record %s", apperrors.ErrConflict, cond.Field, id)
	}
	return s.applyLocked(collection, id, fields)
}

func (s *DocumentStore) Increment(_ context.Context, collection, id, field string, delta decimal.Decimal) (portsrepo.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: record %s in %s", apperrors.ErrNotFound, id, collection)
	}
	current, _ := mapping.AsDecimal(record[field])
	return s.applyLocked(collection, id, portsrepo.Record{field: current.Add(delta)})
}

func (s *DocumentStore) Delete(_ context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return false, nil
	}
	delete(s.collections[collection], id)
	return true, nil
}

func (s *DocumentStore) Count(_ context.Context, collection string, filter portsrepo.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.collections[collection] {
		if matchesFilter(record, filter) {
			count++
		}
	}
	return count, nil
}

func (s *DocumentStore) FindOne(ctx context.Context, collection string, filter portsrepo.Filter) (portsrepo.Record, error) {
	records, err := s.List(ctx, collection, filter, &portsrepo.Sort{Field: "created_at"}, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no record in %s matches filter", apperrors.ErrNotFound, collection)
	}
	return records[0], nil
}

// applyLocked merges fields into an existing record. Callers hold the write lock.
func (s *DocumentStore) applyLocked(collection, id string, fields portsrepo.Record) (portsrepo.Record, error) {
	record, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w: record %s in %s", apperrors.ErrNotFound, id, collection)
	}
	for key, value := range fields {
		if key == "id" || key == "created_at" {
			continue
		}
		record[key] = copyValue(value)
	}
	record["updated_at"] = time.Now().UTC()
	return copyRecord(record), nil
}

func matchesFilter(record portsrepo.Record, filter portsrepo.Filter) bool {
	for key, want := range filter {
		if compareValues(record[key], want) != 0 {
			return false
		}
	}
	return true
}

func holds(record portsrepo.Record, cond portsrepo.Condition) bool {
	cmp := compareValues(record[cond.Field], cond.Value)
	switch cond.Op {
	case portsrepo.CondGTE:
		return cmp >= 0
	default:
		return cmp == 0
	}
}

// compareValues orders two record values: numerically when both sides are
// numeric, by time when both are timestamps, otherwise as strings.
func compareValues(a, b any) int {
	if da, aok := mapping.AsDecimal(a); aok {
		if db, bok := mapping.AsDecimal(b); bok {
			return da.Cmp(db)
		}
	}
	if ta, aok := a.(time.Time); aok {
		if tb, bok := b.(time.Time); bok {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func copyRecord(record portsrepo.Record) portsrepo.Record {
	out := make(portsrepo.Record, len(record))
	for key, value := range record {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[key] = copyValue(entry)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = copyValue(entry)
		}
		return out
	default:
		return value
	}
}
