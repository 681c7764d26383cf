package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CheckDeactivation(ctx context.Context, repos portsrepo.RepositoryProvider, accountID int64, isActive bool) error {
	args := m.Called(ctx, repos, accountID, isActive)
	return args.Error(0)
}

func (m *MockLedgerService) ValidateTransaction(ctx context.Context, repos portsrepo.RepositoryProvider, txn domain.Transaction) error {
	args := m.Called(ctx, repos, txn)
	return args.Error(0)
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerGuardSvcFacade = (*MockLedgerService)(nil)

// --- Test Cases (share AccountHandlerTestSuite's router) ---

func (suite *AccountHandlerTestSuite) TestRecordTransaction_Success() {
	suite.mockLedgerService.On("RecordTransaction", mock.Anything, mock.MatchedBy(func(req dto.RecordTransactionRequest) bool {
		return req.Date == "2025-01-01" && req.Amount.Equal(decimal.RequireFromString("1000.00")) &&
			req.DebitAccountID == 1 && req.CreditAccountID == 2
	})).Return(int64(5), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", gin.H{
		"date": "2025-01-01", "amount": "1000.00", "debitAccountId": 1, "creditAccountId": 2, "description": "Sale income",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"id":5}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestRecordTransaction_SelfReferential() {
	suite.mockLedgerService.On("RecordTransaction", mock.Anything, mock.Anything).
		Return(int64(0), apperrors.ErrSelfReferentialTransaction).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", gin.H{
		"date": "2025-01-01", "amount": 10, "debitAccountId": 1, "creditAccountId": 1,
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("SELF_REFERENTIAL_TRANSACTION", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestRecordTransaction_MissingParty() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", gin.H{"date": "2025-01-01", "amount": 10, "debitAccountId": 1})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListTransactionsByAccount() {
	txns := []domain.Transaction{{
		ID: 1, Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1000),
		DebitAccountID: 1, CreditAccountID: 2, Description: "Sale income",
	}}
	suite.mockLedgerService.On("ListTransactionsByAccount", mock.Anything, int64(1)).Return(txns, nil).Once()
	suite.mockLedgerService.On("ListTransactionsByAccount", mock.Anything, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1/transactions", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("Sale income", resp.Transactions[0].Description)

	w = suite.do(http.MethodGet, "/api/v1/accounts/3/transactions", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
