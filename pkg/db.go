package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCheckViolation    = "23514"
	pgNotNullViolation  = "23502"
	pgNumericOutOfRange = "22003"
)

// IsConstraintViolationError reports whether postgres refused a row because a
// column value broke a CHECK / NOT NULL constraint or did not fit its numeric type.
func IsConstraintViolationError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgCheckViolation, pgNotNullViolation, pgNumericOutOfRange:
		return true
	}
	return false
}
