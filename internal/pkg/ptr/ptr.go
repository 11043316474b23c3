package ptr

import (
	"github.com/jackc/pgx/v5/pgtype"
)

func Of[T any](v T) *T {
	return &v
}

// ValueOr dereferences p, or returns fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

// IntFromPgtype maps a nullable INTEGER column such as a household size.
func IntFromPgtype(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}
