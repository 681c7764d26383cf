package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
)

// LedgerGuard enforces the rules that keep the ledger consistent: accounts
// with history stay active, and transactions move value between two distinct,
// existing, active accounts. Account balances are never touched here.
type LedgerGuard struct {
	BaseService
	tm portsrepo.TransactionManager
}

// NewLedgerGuard creates a LedgerGuard using tm for its own operations.
func NewLedgerGuard(tm portsrepo.TransactionManager) *LedgerGuard {
	return &LedgerGuard{tm: tm}
}

// Ensure LedgerGuard implements the LedgerGuardSvcFacade interface
var _ portssvc.LedgerGuardSvcFacade = (*LedgerGuard)(nil)

// CheckDeactivation fails with ErrCannotDeactivateWithHistory when isActive is
// false and the account takes part in any transaction.
func (g *LedgerGuard) CheckDeactivation(ctx context.Context, repos portsrepo.RepositoryProvider, accountID int64, isActive bool) error {
	if isActive {
		return nil
	}
	hasHistory, err := repos.TransactionRepo.HasTransactions(ctx, accountID)
	if err != nil {
		return err
	}
	if hasHistory {
		return fmt.Errorf("%w (account %d)", apperrors.ErrCannotDeactivateWithHistory, accountID)
	}
	return nil
}

// ValidateTransaction checks txn against the stored accounts. It must run in
// the same unit of work as the insert it protects.
func (g *LedgerGuard) ValidateTransaction(ctx context.Context, repos portsrepo.RepositoryProvider, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	for _, id := range []int64{txn.DebitAccountID, txn.CreditAccountID} {
		account, err := repos.AccountRepo.FindAccountByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w (account %d)", apperrors.ErrAccountNotFound, id)
			}
			return err
		}
		if !account.IsActive {
			return fmt.Errorf("%w (account %d)", apperrors.ErrAccountInactive, id)
		}
	}
	return nil
}

// RecordTransaction validates and stores a transaction, returning its id.
func (g *LedgerGuard) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (int64, error) {
	txn, err := req.ToDomain()
	if err != nil {
		g.logOutcome(ctx, err, "Rejected transaction", slog.String("date", req.Date))
		return 0, err
	}

	var id int64
	err = g.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := g.ValidateTransaction(ctx, repos, txn); err != nil {
			return err
		}
		var err error
		id, err = repos.TransactionRepo.SaveTransaction(ctx, txn)
		return err
	})
	if err != nil {
		g.logOutcome(ctx, err, "Failed to record transaction",
			slog.Int64("debit_account_id", txn.DebitAccountID),
			slog.Int64("credit_account_id", txn.CreditAccountID))
		return 0, err
	}

	g.LogInfo(ctx, "Transaction recorded",
		slog.Int64("transaction_id", id),
		slog.String("amount", txn.Amount.String()))
	return id, nil
}

// ListTransactionsByAccount returns the transactions touching accountID.
// An unknown account is reported as apperrors.ErrNotFound.
func (g *LedgerGuard) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	err := g.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		exists, err := repos.AccountRepo.AccountExists(ctx, accountID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		txns, err = repos.TransactionRepo.ListTransactionsByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			g.LogError(ctx, err, "Failed to list transactions", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}
