package sqlite

import (
	"errors"
	"fmt"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/mattn/go-sqlite3"
)

// constraintCode returns the extended SQLite result code when err is a
// constraint violation.
func constraintCode(err error) (sqlite3.ErrNoExtended, bool) {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return sqliteErr.ExtendedCode, true
	}
	return 0, false
}

// storageError wraps a driver error as a resource fault. The driver text is
// kept for logs; the boundary replaces it with a generic message.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, op, err)
}
