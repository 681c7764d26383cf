package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts returns a snapshot of the whole chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account and returns its id.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (int64, error)

	// UpdateAccount rewrites an account and returns the number of rows modified.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (int64, error)

	// SeedDefaultChart creates the starter chart of accounts, skipping names already in use.
	SeedDefaultChart(ctx context.Context) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
