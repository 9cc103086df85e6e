package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the catalog tables can raise on insert: a repeated
// category slug or component name, and a prompt pointing at a missing
// category or component.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// MapError converts a store error into a domain sentinel: a missing row
// becomes notFoundErr and a unique violation becomes duplicateErr. Anything
// else passes through for the caller to wrap.
func MapError(err error, notFoundErr, duplicateErr error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFoundErr
	}
	if pgErr, ok := pgError(err); ok && pgErr.Code == uniqueViolation {
		return duplicateErr
	}
	return err
}

// ForeignKeyViolation reports whether err is a foreign key violation and
// names the violated constraint, so an insert that references an unknown
// category or component can be blamed on the right input field.
func ForeignKeyViolation(err error) (string, bool) {
	if pgErr, ok := pgError(err); ok && pgErr.Code == foreignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
