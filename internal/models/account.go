package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is the stored shape of a row in the accounts table.
type Account struct {
	ID       int64           `db:"id"`
	Name     string          `db:"name"`
	Type     string          `db:"type"`
	ParentID sql.NullInt64   `db:"parent_id"` // Nullable
	Balance  decimal.Decimal `db:"balance"`   // Stored as TEXT to keep exact decimals
	IsActive bool            `db:"is_active"`
}
