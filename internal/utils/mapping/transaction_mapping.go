package mapping

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:              d.ID,
		Date:            d.Date.UTC().Format(time.RFC3339),
		Amount:          d.Amount,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Description:     sql.NullString{String: d.Description, Valid: d.Description != ""},
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	date, err := time.Parse(time.RFC3339, m.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid stored date %q for transaction %d: %w", m.Date, m.ID, err)
	}
	return domain.Transaction{
		ID:              m.ID,
		Date:            date,
		Amount:          m.Amount,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Description:     m.Description.String,
	}, nil
}
