package pgsql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zonebms/zone_backend/internal/apperrors"
	portsrepo "github.com/zonebms/zone_backend/internal/core/ports/repositories"
	"github.com/zonebms/zone_backend/internal/utils/mapping"
)

// PgxDocumentStore persists records in a single JSONB-backed table keyed by
// (collection, id). Document fields live in the data column; id, created_at
// and updated_at are regular columns so ordering and lookups stay cheap.
type PgxDocumentStore struct {
	pool *pgxpool.Pool
}

// NewPgxDocumentStore creates the document store over a pgx pool.
func NewPgxDocumentStore(pool *pgxpool.Pool) *PgxDocumentStore {
	return &PgxDocumentStore{pool: pool}
}

// Ensure PgxDocumentStore implements portsrepo.DocumentStore
var _ portsrepo.DocumentStore = (*PgxDocumentStore)(nil)

func (s *PgxDocumentStore) Create(ctx context.Context, collection string, fields portsrepo.Record) (portsrepo.Record, error) {
	id, _ := fields["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	data := make(portsrepo.Record, len(fields))
	for key, value := range fields {
		if key == "id" {
			continue
		}
		data[key] = value
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record for %s: %w", collection, err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO records (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4);
	`
	if _, err := s.pool.Exec(ctx, query, collection, id, payload, now); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: record %s already exists in %s", apperrors.ErrDuplicate, id, collection)
		}
		return nil, fmt.Errorf("failed to insert record into %s: %w", collection, err)
	}
	return assembleRecord(id, payload, now, now)
}

func (s *PgxDocumentStore) Get(ctx context.Context, collection, id string) (portsrepo.Record, error) {
	query := `
		SELECT data, created_at, updated_at FROM records
		WHERE collection = $1 AND id = $2;
	`
	return s.queryOne(ctx, collection, id, query, collection, id)
}

func (s *PgxDocumentStore) List(ctx context.Context, collection string, filter portsrepo.Filter, sortBy *portsrepo.Sort, limit int) ([]portsrepo.Record, error) {
	query := `
		SELECT id, data, created_at, updated_at FROM records
		WHERE collection = $1 AND data @> $2
	`
	match, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}
	args := []any{collection, match}
	switch {
	case sortBy == nil:
		query += ` ORDER BY created_at`
	case sortBy.Field == "created_at" || sortBy.Field == "updated_at":
		query += ` ORDER BY ` + sortBy.Field
	default:
		query += ` ORDER BY data->>$3`
		args = append(args, sortBy.Field)
	}
	if sortBy != nil && sortBy.Desc {
		query += ` DESC`
	}
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records in %s: %w", collection, err)
	}
	defer rows.Close()

	results := make([]portsrepo.Record, 0)
	for rows.Next() {
		var (
			id                   string
			payload              []byte
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &payload, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record from %s: %w", collection, err)
		}
		record, err := assembleRecord(id, payload, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading records from %s: %w", collection, err)
	}
	return results, nil
}

func (s *PgxDocumentStore) Update(ctx context.Context, collection, id string, fields portsrepo.Record) (portsrepo.Record, error) {
	patch, err := marshalPatch(collection, fields)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE records SET data = data || $3, updated_at = $4
		WHERE collection = $1 AND id = $2
		RETURNING data, created_at, updated_at;
	`
	return s.queryOne(ctx, collection, id, query, collection, id, patch, time.Now().UTC())
}

func (s *PgxDocumentStore) UpdateWhere(ctx context.Context, collection, id string, cond portsrepo.Condition, fields portsrepo.Record) (portsrepo.Record, error) {
	patch, err := marshalPatch(collection, fields)
	if err != nil {
		return nil, err
	}

	condSQL, condArg := conditionSQL(cond)
	query := fmt.Sprintf(`
		UPDATE records SET data = data || $3, updated_at = $4
		WHERE collection = $1 AND id = $2 AND %s
		RETURNING data, created_at, updated_at;
	`, condSQL)

	record, err := s.queryOne(ctx, collection, id, query, collection, id, patch, time.Now().UTC(), condArg)
	if errors.Is(err, apperrors.ErrNotFound) {
		// The row may exist with the condition failing. Tell those apart so
		// callers can retry conflicts instead of reporting missing records.
		var exists bool
		checkErr := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM records WHERE collection = $1 AND id = $2)`, collection, id).Scan(&exists)
		if checkErr == nil && exists {
			return nil, fmt.Errorf("%w: condition on %s failed for record %s", apperrors.ErrConflict, cond.Field, id)
		}
	}
	return record, err
}

func (s *PgxDocumentStore) Increment(ctx context.Context, collection, id, field string, delta decimal.Decimal) (portsrepo.Record, error) {
	// Numeric fields are stored as JSON strings to keep decimal precision, so
	// the new value goes back in as text.
	query := `
		UPDATE records
		SET data = jsonb_set(data, ARRAY[$3], to_jsonb(((COALESCE(data->>$3, '0'))::numeric + $4::numeric)::text), true),
		    updated_at = $5
		WHERE collection = $1 AND id = $2
		RETURNING data, created_at, updated_at;
	`
	return s.queryOne(ctx, collection, id, query, collection, id, field, delta.String(), time.Now().UTC())
}

func (s *PgxDocumentStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM records WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete record %s from %s: %w", id, collection, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PgxDocumentStore) Count(ctx context.Context, collection string, filter portsrepo.Filter) (int64, error) {
	match, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}
	var count int64
	query := `SELECT count(*) FROM records WHERE collection = $1 AND data @> $2`
	if err := s.pool.QueryRow(ctx, query, collection, match).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records in %s: %w", collection, err)
	}
	return count, nil
}

func (s *PgxDocumentStore) FindOne(ctx context.Context, collection string, filter portsrepo.Filter) (portsrepo.Record, error) {
	records, err := s.List(ctx, collection, filter, &portsrepo.Sort{Field: "created_at"}, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no record in %s matches filter", apperrors.ErrNotFound, collection)
	}
	return records[0], nil
}

// queryOne runs a query expected to return one record row of
// (data, created_at, updated_at), mapping pgx.ErrNoRows to ErrNotFound.
func (s *PgxDocumentStore) queryOne(ctx context.Context, collection, id, query string, args ...any) (portsrepo.Record, error) {
	var (
		payload              []byte
		createdAt, updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx, query, args...).Scan(&payload, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: record %s in %s", apperrors.ErrNotFound, id, collection)
		}
		return nil, fmt.Errorf("failed to read record %s from %s: %w", id, collection, err)
	}
	return assembleRecord(id, payload, createdAt, updatedAt)
}

// assembleRecord decodes the JSONB payload and folds the column values back
// into the record. Numbers decode as json.Number so decimal precision survives.
func assembleRecord(id string, payload []byte, createdAt, updatedAt time.Time) (portsrepo.Record, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	record := make(portsrepo.Record)
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	record["id"] = id
	record["created_at"] = createdAt
	record["updated_at"] = updatedAt
	return record, nil
}

func marshalFilter(filter portsrepo.Filter) ([]byte, error) {
	if len(filter) == 0 {
		return []byte(`{}`), nil
	}
	match, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}
	return match, nil
}

func marshalPatch(collection string, fields portsrepo.Record) ([]byte, error) {
	patch := make(portsrepo.Record, len(fields))
	for key, value := range fields {
		if key == "id" || key == "created_at" || key == "updated_at" {
			continue
		}
		patch[key] = value
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update for %s: %w", collection, err)
	}
	return payload, nil
}

// conditionSQL renders a guard over one data field. Numeric comparisons cast
// through ::numeric so "5", "5.0" and 5 all agree.
func conditionSQL(cond portsrepo.Condition) (string, any) {
	if value, ok := mapping.AsDecimal(cond.Value); ok {
		op := "="
		if cond.Op == portsrepo.CondGTE {
			op = ">="
		}
		return fmt.Sprintf(`(data->>%s)::numeric %s $5::numeric`, quoteLiteral(cond.Field), op), value.String()
	}
	op := "="
	if cond.Op == portsrepo.CondGTE {
		op = ">="
	}
	return fmt.Sprintf(`data->>%s %s $5`, quoteLiteral(cond.Field), op), fmt.Sprint(cond.Value)
}

func quoteLiteral(field string) string {
	return `'` + field + `'`
}
