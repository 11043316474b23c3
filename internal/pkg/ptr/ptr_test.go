//go:build unit

package ptr_test

import (
	"testing"

	"ration-slot-booking/internal/pkg/ptr"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestValueOr(t *testing.T) {
	assert.Equal(t, 6, ptr.ValueOr(ptr.Of(6), 4))
	assert.Equal(t, 4, ptr.ValueOr[int](nil, 4))
	assert.Equal(t, 0, ptr.ValueOr(ptr.Of(0), 4), "zero is a value, not absence")
}

func TestIntFromPgtype(t *testing.T) {
	assert.Nil(t, ptr.IntFromPgtype(pgtype.Int4{}))
	assert.Equal(t, ptr.Of(3), ptr.IntFromPgtype(pgtype.Int4{Int32: 3, Valid: true}))
}
