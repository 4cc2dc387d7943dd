package postgres_adapter

import (
	"errors"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateWriteError turns integrity violations into domain errors so that
// callers never see a storage error for a rule the store enforces.
// It returns nil when err is not an integrity violation.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == "accounts_username_key" {
			return domain.ErrUsernameTaken
		}
		return domain.ErrDuplicateEdge
	case pgForeignKeyViolation:
		return domain.NewValidationError("Referenced object does not exist.", nil)
	case pgCheckViolation:
		if pgErr.ConstraintName == "follows_not_self" {
			return domain.ErrCannotFollowSelf
		}
		return domain.NewValidationError("Value out of range.", nil)
	}
	return nil
}
