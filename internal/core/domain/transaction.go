package domain

import (
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Transaction is a double-entry movement of Amount from CreditAccountID to
// DebitAccountID. Transactions are immutable once stored.
type Transaction struct {
	ID              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  int64           `json:"debitAccountId"`
	CreditAccountID int64           `json:"creditAccountId"`
	Description     string          `json:"description"`
}

// Validate checks the rules that hold independently of stored accounts.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return apperrors.ErrInvalidDate
	}
	if !t.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if t.DebitAccountID <= 0 || t.CreditAccountID <= 0 {
		return apperrors.ErrAccountNotFound
	}
	if t.DebitAccountID == t.CreditAccountID {
		return apperrors.ErrSelfReferentialTransaction
	}
	return nil
}
