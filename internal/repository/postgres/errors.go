package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	ierr "github.com/chairflow/chairflow/internal/errors"
)

const pqUniqueViolation = "23505"

// wrapDBError maps driver errors onto the application's sentinel errors.
func wrapDBError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithHintf("database operation on %s failed", entity).
		Mark(ierr.ErrDatabase)
}
