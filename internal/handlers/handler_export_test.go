package handlers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/utils/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExportService ---

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportLedger(ctx context.Context) (domain.LedgerSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LedgerSnapshot), args.Error(1)
}

func (m *MockExportService) TemplateLedger() domain.LedgerSnapshot {
	args := m.Called()
	return args.Get(0).(domain.LedgerSnapshot)
}

var _ portssvc.LedgerExportSvc = (*MockExportService)(nil)

// readArchiveMember returns the CSV records of one member of a zip body.
func (suite *AccountHandlerTestSuite) readArchiveMember(body []byte, name string) [][]string {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	suite.Require().NoError(err)
	f, err := zr.Open(name)
	suite.Require().NoError(err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	suite.Require().NoError(err)
	return records
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestExportLedger() {
	snapshot := domain.LedgerSnapshot{
		Accounts: []domain.Account{
			{ID: 1, Name: "Cash", AccountType: domain.Asset, Balance: decimal.Zero, IsActive: true},
			{ID: 2, Name: "Revenue", AccountType: domain.Income, Balance: decimal.Zero, IsActive: true},
		},
		Transactions: []domain.Transaction{{
			ID: 1, Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("12.5"),
			DebitAccountID: 1, CreditAccountID: 2, Description: "Walk-in sale",
		}},
	}
	suite.mockExportService.On("ExportLedger", mock.Anything).Return(snapshot, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/export", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/zip", w.Header().Get("Content-Type"))
	suite.Regexp(`^attachment; filename="ledger_export_\d{8}_\d{6}\.zip"$`, w.Header().Get("Content-Disposition"))

	txns := suite.readArchiveMember(w.Body.Bytes(), export.TransactionsFile)
	suite.Equal([][]string{
		{"date", "debit_account", "credit_account", "amount", "description"},
		{"2025-03-04", "Cash", "Revenue", "12.50", "Walk-in sale"},
	}, txns)
	suite.Len(suite.readArchiveMember(w.Body.Bytes(), export.AccountsFile), 3)
}

func (suite *AccountHandlerTestSuite) TestExportLedger_StorageFault() {
	suite.mockExportService.On("ExportLedger", mock.Anything).
		Return(domain.LedgerSnapshot{}, apperrors.ErrLockUnavailable).Once()

	w := suite.do(http.MethodGet, "/api/v1/export", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("LOCK_UNAVAILABLE", suite.decodeError(w).Code)
	suite.Empty(w.Header().Get("Content-Disposition"))
}

func (suite *AccountHandlerTestSuite) TestDownloadTemplate() {
	suite.mockExportService.On("TemplateLedger").Return(services.TemplateLedger()).Once()

	w := suite.do(http.MethodGet, "/api/v1/template", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="ledger_template.zip"`, w.Header().Get("Content-Disposition"))

	accounts := suite.readArchiveMember(w.Body.Bytes(), export.AccountsFile)
	suite.Len(accounts, 7)
	suite.Equal([]string{"Owner's Equity", "Equity", "", "0.00", "true"}, accounts[4])

	txns := suite.readArchiveMember(w.Body.Bytes(), export.TransactionsFile)
	suite.Equal([]string{"2025-01-02", "Rent Expense", "Cash", "300.00", "Office rent"}, txns[2])
}
