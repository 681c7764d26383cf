package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction is the stored shape of a row in the transactions table.
type Transaction struct {
	ID              int64           `db:"id"`
	Date            string          `db:"date"` // RFC 3339, UTC
	Amount          decimal.Decimal `db:"amount"`
	DebitAccountID  int64           `db:"debit_account_id"`
	CreditAccountID int64           `db:"credit_account_id"`
	Description     sql.NullString  `db:"description"` // Nullable
}
