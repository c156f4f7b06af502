package utils

import (
	"errors"

	"github.com/jackc/pgconn"
)

// pgUniqueViolation is the Postgres SQLSTATE for a unique constraint hit.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The database constraint is the final arbiter for races that
// slip past application-level existence checks.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
