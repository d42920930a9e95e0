package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	notNullViolationCode    = "23502"
	checkViolationCode      = "23514"
)

var (
	ErrDuplicate        = errors.New("duplicate value")
	ErrInvalidReference = errors.New("referenced row does not exist")
	ErrConstraint       = errors.New("constraint violation")
)

// StorageError reports a failed table operation. Err keeps the driver error
// reachable through errors.As.
type StorageError struct {
	Entity    string
	Operation string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Entity, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// mapError tags well-known constraint violations with a sentinel while
// keeping the original *pgconn.PgError in the chain.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w (%s): %w", ErrInvalidReference, pgErr.ConstraintName, err)
	case notNullViolationCode, checkViolationCode:
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}

	return err
}
