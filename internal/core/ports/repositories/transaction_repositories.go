package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// HasTransactions reports whether accountID is the debit or credit party
	// of at least one transaction.
	HasTransactions(ctx context.Context, accountID int64) (bool, error)

	// ListTransactionsByAccount returns the transactions touching accountID, oldest first.
	ListTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)

	// ListTransactions returns every transaction, oldest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger transactions.
// There is deliberately no update or delete.
type TransactionWriter interface {
	// SaveTransaction inserts a transaction and returns its generated id.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
