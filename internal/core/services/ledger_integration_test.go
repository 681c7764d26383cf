package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/SscSPs/bookkeeping_core/internal/platform/schema"
	"github.com/SscSPs/bookkeeping_core/internal/repositories/database/sqlite"
	"github.com/SscSPs/bookkeeping_core/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerIntegrationSuite runs the services against a migrated in-memory store.
type LedgerIntegrationSuite struct {
	suite.Suite
	ctx context.Context
	gw  *sqlite.Gateway
	svc *portssvc.ServiceContainer
}

func (s *LedgerIntegrationSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := database.OpenSQLite(s.ctx, database.MemoryPath)
	s.Require().NoError(err)

	migrations, err := schema.EmbeddedMigrations()
	s.Require().NoError(err)
	engine, err := schema.NewEngine(db, migrations, nil)
	s.Require().NoError(err)
	_, err = engine.ApplyPending(s.ctx)
	s.Require().NoError(err)

	s.gw = sqlite.NewGateway(db, nil)
	s.svc = services.NewServiceContainer(s.gw)
}

func (s *LedgerIntegrationSuite) TearDownTest() {
	s.Require().NoError(s.gw.Close(s.ctx))
}

func (s *LedgerIntegrationSuite) create(name, accountType string, parentID *int64) (int64, error) {
	return s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: name, AccountType: accountType, ParentID: parentID})
}

func (s *LedgerIntegrationSuite) TestChartOfAccountsScenario() {
	cashID, err := s.create("Cash", "Asset", nil)
	s.Require().NoError(err)
	s.Equal(int64(1), cashID)

	_, err = s.create("Cash", "Liability", nil)
	s.ErrorIs(err, apperrors.ErrDuplicateName)

	pettyID, err := s.create("Petty Cash", "Asset", int64Ptr(cashID))
	s.Require().NoError(err)

	for _, missing := range []int64{999, 0, -3} {
		_, err = s.create("Ghost", "Asset", int64Ptr(missing))
		s.ErrorIs(err, apperrors.ErrParentNotFound, "parent %d", missing)
	}

	revenueID, err := s.create("Revenue", "Income", nil)
	s.Require().NoError(err)

	_, err = s.svc.Ledger.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		Date: "2025-01-01", Amount: decimal.RequireFromString("1000.00"),
		DebitAccountID: cashID, CreditAccountID: revenueID, Description: "Sale income",
	})
	s.Require().NoError(err)

	_, err = s.svc.Account.UpdateAccount(s.ctx, cashID, dto.UpdateAccountRequest{
		Name: "Cash", AccountType: "Asset", IsActive: boolPtr(false),
	})
	s.ErrorIs(err, apperrors.ErrCannotDeactivateWithHistory)

	accounts, err := s.svc.Account.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(accounts, 3)
	for _, acc := range accounts {
		s.True(acc.IsActive, acc.Name)
		s.True(acc.Balance.Equal(decimal.Zero), "recording never moves balances")
	}
	s.Equal(pettyID, accounts[1].ID)
	s.Equal(cashID, *accounts[1].ParentID)
}

func (s *LedgerIntegrationSuite) TestUpdateAccount_AppliesChanges() {
	cashID, err := s.create("Cash", "Asset", nil)
	s.Require().NoError(err)
	bankID, err := s.create("Bank", "Asset", nil)
	s.Require().NoError(err)

	rows, err := s.svc.Account.UpdateAccount(s.ctx, bankID, dto.UpdateAccountRequest{
		Name: "Main Bank", AccountType: "Asset", ParentID: int64Ptr(cashID), IsActive: boolPtr(false),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), rows)

	bank, err := s.svc.Account.GetAccountByID(s.ctx, bankID)
	s.Require().NoError(err)
	s.Equal("Main Bank", bank.Name)
	s.False(bank.IsActive)
	s.Equal(cashID, *bank.ParentID)

	_, err = s.svc.Account.UpdateAccount(s.ctx, cashID, dto.UpdateAccountRequest{
		Name: "Cash", AccountType: "Asset", ParentID: int64Ptr(bankID), IsActive: boolPtr(true),
	})
	s.ErrorIs(err, apperrors.ErrParentCycle)

	rows, err = s.svc.Account.UpdateAccount(s.ctx, 404, dto.UpdateAccountRequest{
		Name: "Nobody", AccountType: "Equity", IsActive: boolPtr(true),
	})
	s.Require().NoError(err)
	s.Equal(int64(0), rows)
}

func (s *LedgerIntegrationSuite) TestUpdateAccount_HistoryRejectionWinsOverOtherFaults() {
	cashID, err := s.create("Cash", "Asset", nil)
	s.Require().NoError(err)
	revenueID, err := s.create("Revenue", "Income", nil)
	s.Require().NoError(err)
	_, err = s.svc.Ledger.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		Date: "2025-01-01", Amount: decimal.NewFromInt(50), DebitAccountID: cashID, CreditAccountID: revenueID,
	})
	s.Require().NoError(err)

	requests := map[string]dto.UpdateAccountRequest{
		"duplicate name": {Name: "Revenue", AccountType: "Asset", IsActive: boolPtr(false)},
		"missing parent": {Name: "Cash", AccountType: "Asset", ParentID: int64Ptr(999), IsActive: boolPtr(false)},
		"self parent":    {Name: "Cash", AccountType: "Asset", ParentID: int64Ptr(cashID), IsActive: boolPtr(false)},
	}
	for name, req := range requests {
		_, err := s.svc.Account.UpdateAccount(s.ctx, cashID, req)
		s.ErrorIs(err, apperrors.ErrCannotDeactivateWithHistory, name)
	}

	rows, err := s.svc.Account.UpdateAccount(s.ctx, 404, dto.UpdateAccountRequest{
		Name: "Revenue", AccountType: "Income", IsActive: boolPtr(true),
	})
	s.Require().NoError(err)
	s.Equal(int64(0), rows)
}

func (s *LedgerIntegrationSuite) TestRecordTransaction_RejectsInactiveAndSelf() {
	cashID, err := s.create("Cash", "Asset", nil)
	s.Require().NoError(err)
	spareID, err := s.create("Spare", "Expense", nil)
	s.Require().NoError(err)
	_, err = s.svc.Account.UpdateAccount(s.ctx, spareID, dto.UpdateAccountRequest{
		Name: "Spare", AccountType: "Expense", IsActive: boolPtr(false),
	})
	s.Require().NoError(err)

	_, err = s.svc.Ledger.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		Date: "2025-01-02", Amount: decimal.NewFromInt(300), DebitAccountID: spareID, CreditAccountID: cashID,
	})
	s.ErrorIs(err, apperrors.ErrAccountInactive)

	_, err = s.svc.Ledger.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
		Date: "2025-01-02", Amount: decimal.NewFromInt(300), DebitAccountID: cashID, CreditAccountID: cashID,
	})
	s.ErrorIs(err, apperrors.ErrSelfReferentialTransaction)

	txns, err := s.svc.Ledger.ListTransactionsByAccount(s.ctx, cashID)
	s.Require().NoError(err)
	s.Empty(txns)
}

func (s *LedgerIntegrationSuite) TestSeedDefaultChart_IsRepeatable() {
	_, err := s.create("Cash", "Asset", nil)
	s.Require().NoError(err)

	created, err := s.svc.Account.SeedDefaultChart(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, created)

	created, err = s.svc.Account.SeedDefaultChart(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, created)

	accounts, err := s.svc.Account.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 6)
	types := map[domain.AccountType]int{}
	for _, acc := range accounts {
		types[acc.AccountType]++
	}
	s.Equal(2, types[domain.Asset])
	s.Equal(1, types[domain.Expense])
}

func (s *LedgerIntegrationSuite) TestExportLedger_Snapshot() {
	cashID, err := s.create("Cash", "Asset", nil)
	s.Require().NoError(err)
	revenueID, err := s.create("Revenue", "Income", nil)
	s.Require().NoError(err)
	for _, date := range []string{"2025-02-01", "2025-01-15"} {
		_, err = s.svc.Ledger.RecordTransaction(s.ctx, dto.RecordTransactionRequest{
			Date: date, Amount: decimal.NewFromInt(10), DebitAccountID: cashID, CreditAccountID: revenueID,
		})
		s.Require().NoError(err)
	}

	snapshot, err := s.svc.Export.ExportLedger(s.ctx)
	s.Require().NoError(err)
	s.Len(snapshot.Accounts, 2)
	s.Require().Len(snapshot.Transactions, 2)
	s.Equal("2025-01-15", snapshot.Transactions[0].Date.Format("2006-01-02"), "oldest first")
}

func TestLedgerIntegrationSuite(t *testing.T) {
	suite.Run(t, new(LedgerIntegrationSuite))
}
