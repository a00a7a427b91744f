package mapping

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zonebms/zone_backend/internal/core/ports/repositories"
)

// String reads a field as a string, tolerating absence.
func String(r repositories.Record, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Decimal reads a numeric field. Records round-trip through JSON, so the value
// may arrive as a decimal.Decimal, json.Number, string, float64 or int.
func Decimal(r repositories.Record, key string) decimal.Decimal {
	d, _ := AsDecimal(r[key])
	return d
}

// DecimalPtr is Decimal for optional fields: nil when the field is absent.
func DecimalPtr(r repositories.Record, key string) *decimal.Decimal {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	d, _ := AsDecimal(v)
	return &d
}

// AsDecimal attempts to read any record value as a decimal. The second return
// reports whether the value was numeric.
func AsDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return d, true
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d, true
		}
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	}
	return decimal.Zero, false
}

// Int reads an integer field with the same tolerance as Decimal.
func Int(r repositories.Record, key string) int64 {
	switch n := r[key].(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
	case decimal.Decimal:
		return n.IntPart()
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d.IntPart()
		}
	}
	return 0
}

// Time reads a timestamp field stored either natively or as RFC 3339 text.
func Time(r repositories.Record, key string) time.Time {
	switch t := r[key].(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
