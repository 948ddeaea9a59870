package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// The pool opens with the pgx stdlib driver, so constraint violations arrive
// as *pgconn.PgError. These helpers are the only place repository code is
// allowed to inspect Postgres error codes.
func TestIsUniqueViolation(t *testing.T) {
	t.Run("pgx unique violation matches", func(t *testing.T) {
		var err error = &pgconn.PgError{Code: "23505"}
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsForeignKeyViolation(err))
	})

	t.Run("wrapped error still matches", func(t *testing.T) {
		err := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("unrelated error does not match", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New("connection reset")))
		assert.False(t, IsUniqueViolation(nil))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	var err error = &pgconn.PgError{Code: "23503"}
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))
}
