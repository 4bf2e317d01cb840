package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared by all repositories. Callers distinguish
// failure kinds with errors.Is and decide their own skip/abort policy;
// the ingest pipeline skips every one of these, direct API callers
// usually treat ErrForeignKey as misuse.
var (
	// ErrDuplicateKey is returned when a row with the same primary key
	// already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrForeignKey is returned when a referenced entity does not exist.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrNotFound is returned by deletes targeting a missing row.
	ErrNotFound = errors.New("not found")

	// ErrConstraint is the match target for ConstraintError.
	ErrConstraint = errors.New("constraint violation")
)

// ConstraintError reports a business-rule predicate that rejected an
// insert. Rule is the predicate name (e.g. "isOnlyReview"), Key the
// offending identifier.
type ConstraintError struct {
	Rule string
	Key  string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation: %s rejected %s", e.Rule, e.Key)
}

// Is makes errors.Is(err, ErrConstraint) match any ConstraintError.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}

// Postgres SQLSTATE codes for integrity violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError translates driver-level integrity errors into the
// repository taxonomy. Other errors pass through unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateKey
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}
