package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isLockUnavailable verifica si un error es un conflicto de bloqueo/serialización:
// 55P03 (lock_not_available, por FOR UPDATE NOWAIT) o 40001 (serialization_failure).
// Estos errores se traducen a domain.ErrConflicto para que el caller reintente.
func isLockUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "55P03" || pgErr.Code == "40001"
	}
	return false
}
