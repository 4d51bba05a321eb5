// AngelaMos | 2026
// errors.go

package core

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

const pgUniqueViolation = "23505"

// DuplicateKeyError keeps the violated constraint so callers can tell
// which unique index rejected the row.
type DuplicateKeyError struct {
	Constraint string
	Err        error
}

func (e *DuplicateKeyError) Error() string {
	if e.Constraint == "" {
		return ErrDuplicateKey.Error()
	}
	return ErrDuplicateKey.Error() + ": " + e.Constraint
}

func (e *DuplicateKeyError) Unwrap() []error {
	return []error{ErrDuplicateKey, e.Err}
}

// MapDBError converts driver errors into the package sentinels.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateKeyError{Constraint: pgErr.ConstraintName, Err: err}
	}

	return err
}

// IsConstraintViolation reports whether err is a unique violation of
// the named constraint.
func IsConstraintViolation(err error, constraint string) bool {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Constraint == constraint
	}
	return false
}
