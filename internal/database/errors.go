package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE raised when a called function does not exist
const undefinedFunctionCode = "42883"

var (
	// ErrNotFound is returned when a mutation targets a row that does not exist
	ErrNotFound = errors.New("record not found")

	// ErrProcedureNotFound means the get_smart_routes migration was never applied
	ErrProcedureNotFound = errors.New("stored procedure not found")
)

// isUndefinedFunction reports whether err is an undefined_function error from either driver
func isUndefinedFunction(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == undefinedFunctionCode
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == undefinedFunctionCode
	}
	return false
}
