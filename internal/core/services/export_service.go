package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// sampleTransactions fill the template's transactions table.
var sampleTransactions = []struct {
	Date        time.Time
	Debit       string
	Credit      string
	Amount      string
	Description string
}{
	{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "Cash", "Revenue", "1000.00", "Sale income"},
	{time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "Rent Expense", "Cash", "300.00", "Office rent"},
}

// exportService implements the LedgerExportSvc interface
type exportService struct {
	BaseService
	tm portsrepo.TransactionManager
}

// NewExportService creates a service that snapshots the ledger through tm.
func NewExportService(tm portsrepo.TransactionManager) portssvc.LedgerExportSvc {
	return &exportService{tm: tm}
}

// Ensure exportService implements the LedgerExportSvc interface
var _ portssvc.LedgerExportSvc = (*exportService)(nil)

// ExportLedger reads the chart and every transaction under one exclusive window.
func (s *exportService) ExportLedger(ctx context.Context) (domain.LedgerSnapshot, error) {
	var snapshot domain.LedgerSnapshot
	err := s.tm.WithExclusiveAccess(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		accounts, err := repos.AccountRepo.ListAccounts(ctx)
		if err != nil {
			return err
		}
		txns, err := repos.TransactionRepo.ListTransactions(ctx)
		if err != nil {
			return err
		}
		snapshot = domain.LedgerSnapshot{Accounts: accounts, Transactions: txns}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to export ledger")
		return domain.LedgerSnapshot{}, err
	}

	s.LogInfo(ctx, "Ledger exported",
		slog.Int("accounts", len(snapshot.Accounts)),
		slog.Int("transactions", len(snapshot.Transactions)))
	return snapshot, nil
}

// TemplateLedger returns the starter template; it never touches the store.
func (s *exportService) TemplateLedger() domain.LedgerSnapshot {
	return TemplateLedger()
}

// TemplateLedger builds the starter chart of accounts, numbered from 1 in
// seeding order, with the sample transactions posted between them.
func TemplateLedger() domain.LedgerSnapshot {
	accounts := make([]domain.Account, len(defaultChart))
	ids := make(map[string]int64, len(defaultChart))
	for i, entry := range defaultChart {
		acc := domain.NewAccount(entry.Name, entry.Type, nil)
		acc.ID = int64(i + 1)
		accounts[i] = acc
		ids[acc.Name] = acc.ID
	}

	txns := make([]domain.Transaction, len(sampleTransactions))
	for i, sample := range sampleTransactions {
		txns[i] = domain.Transaction{
			ID:              int64(i + 1),
			Date:            sample.Date,
			Amount:          decimal.RequireFromString(sample.Amount),
			DebitAccountID:  ids[sample.Debit],
			CreditAccountID: ids[sample.Credit],
			Description:     sample.Description,
		}
	}
	return domain.LedgerSnapshot{Accounts: accounts, Transactions: txns}
}
