package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves every account ordered by id.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// AccountExists reports whether an account with the given id is stored.
	AccountExists(ctx context.Context, accountID int64) (bool, error)

	// AccountNameExists reports whether another account already uses name.
	// excludeID is ignored when zero.
	AccountNameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	// FindParentID returns the parent of accountID, or nil for a root account.
	FindParentID(ctx context.Context, accountID int64) (*int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account and returns its generated id.
	SaveAccount(ctx context.Context, account domain.Account) (int64, error)

	// UpdateAccount rewrites name, type, parent and active flag and returns
	// the number of rows modified.
	UpdateAccount(ctx context.Context, account domain.Account) (int64, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
