package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form accepted alongside RFC 3339.
const DateLayout = "2006-01-02"

// RecordTransactionRequest defines the data needed to record a transaction.
type RecordTransactionRequest struct {
	Date            string          `json:"date" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  int64           `json:"debitAccountId" binding:"required,gt=0"`
	CreditAccountID int64           `json:"creditAccountId" binding:"required,gt=0"`
	Description     string          `json:"description"`
}

// ToDomain parses the request into an unsaved domain.Transaction.
func (r RecordTransactionRequest) ToDomain() (domain.Transaction, error) {
	date, err := ParseTransactionDate(r.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		Date:            date,
		Amount:          r.Amount,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Description:     r.Description,
	}, nil
}

// ParseTransactionDate accepts either YYYY-MM-DD or an RFC 3339 timestamp.
func ParseTransactionDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
	}
	return t, nil
}

// RecordTransactionResponse returns the generated transaction id.
type RecordTransactionResponse struct {
	ID int64 `json:"id"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  int64           `json:"debitAccountId"`
	CreditAccountID int64           `json:"creditAccountId"`
	Description     string          `json:"description"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID,
		Date:            txn.Date,
		Amount:          txn.Amount,
		DebitAccountID:  txn.DebitAccountID,
		CreditAccountID: txn.CreditAccountID,
		Description:     txn.Description,
	}
}

// ListTransactionsResponse wraps the transactions of one account.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
