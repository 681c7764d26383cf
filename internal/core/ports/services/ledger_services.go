package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
)

// LedgerRuleChecker is consulted by every mutation path while it still holds
// exclusive access to the store.
type LedgerRuleChecker interface {
	// CheckDeactivation rejects setting isActive=false on an account with history.
	CheckDeactivation(ctx context.Context, repos portsrepo.RepositoryProvider, accountID int64, isActive bool) error

	// ValidateTransaction rejects self-referencing transfers and unknown or inactive parties.
	ValidateTransaction(ctx context.Context, repos portsrepo.RepositoryProvider, txn domain.Transaction) error
}

// TransactionSvc defines the transaction-side operations of the ledger
type TransactionSvc interface {
	// RecordTransaction validates and stores a transaction, returning its id.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (int64, error)

	// ListTransactionsByAccount returns every transaction touching accountID.
	ListTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// LedgerGuardSvcFacade combines the guard's rule checks and its transaction operations
type LedgerGuardSvcFacade interface {
	LedgerRuleChecker
	TransactionSvc
}
