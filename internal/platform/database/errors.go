package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation as surfaced by the pgx driver.
func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation, typically because the referenced row was deleted concurrently.
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
