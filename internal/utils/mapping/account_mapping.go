package mapping

import (
	"database/sql"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/SscSPs/bookkeeping_core/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:       d.ID,
		Name:     d.Name,
		Type:     string(d.AccountType),
		ParentID: ToNullInt64(d.ParentID),
		Balance:  d.Balance,
		IsActive: d.IsActive,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.ID,
		Name:        m.Name,
		AccountType: domain.AccountType(m.Type),
		ParentID:    FromNullInt64(m.ParentID),
		Balance:     m.Balance,
		IsActive:    m.IsActive,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToNullInt64 maps an optional id onto a nullable column value.
func ToNullInt64(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// FromNullInt64 maps a nullable column value onto an optional id.
func FromNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}
