package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// Record is one persisted document: a flat bag of snake_case fields plus the
// store-assigned id, created_at and updated_at.
type Record = map[string]any

// Filter selects records whose fields equal every given value.
type Filter = map[string]any

// Sort orders a listing by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// CondOp is a comparison operator for conditional updates.
type CondOp string

const (
	// CondEq requires the field to equal the value at write time.
	CondEq CondOp = "eq"
	// CondGTE requires the field to be numerically >= the value at write time.
	CondGTE CondOp = "gte"
)

// Condition guards a conditional update. It is evaluated atomically with the
// write, which is what makes compare-and-swap sequences and stock checks safe
// under concurrent requests.
type Condition struct {
	Field string
	Op    CondOp
	Value any
}

// DocumentStore is the persistence collaborator: a collection-keyed record
// store. Implementations assign id (when absent), created_at and updated_at
// on Create, and bump updated_at on every update.
//
// Errors: Get/Update/UpdateWhere/Increment/FindOne return apperrors.ErrNotFound
// for a missing record; Create returns apperrors.ErrDuplicate when an explicit
// id or unique field collides; UpdateWhere returns apperrors.ErrConflict when
// the condition does not hold at write time.
type DocumentStore interface {
	Create(ctx context.Context, collection string, fields Record) (Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	List(ctx context.Context, collection string, filter Filter, sort *Sort, limit int) ([]Record, error)
	Update(ctx context.Context, collection, id string, fields Record) (Record, error)
	// UpdateWhere applies fields only if cond holds at write time.
	UpdateWhere(ctx context.Context, collection, id string, cond Condition, fields Record) (Record, error)
	// Increment atomically adds delta to a numeric field and returns the
	// updated record. Balances must be moved with this, never with Update,
	// to stay correct under concurrent postings.
	Increment(ctx context.Context, collection, id, field string, delta decimal.Decimal) (Record, error)
	Delete(ctx context.Context, collection, id string) (bool, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	FindOne(ctx context.Context, collection string, filter Filter) (Record, error)
}
