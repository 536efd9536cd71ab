package repository

import (
	"errors"
	"fmt"

	"bulkmart/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	uniqueViolation = "23505"
)

// storeError marks err as a store failure so callers can tell it from a domain error.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrStoreUnavailable, op, err)
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// pageBounds clamps a caller supplied page to sane values.
func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
