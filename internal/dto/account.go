package dto

import (
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,account_type"`
	ParentID    *int64 `json:"parentId"` // Optional, use pointer for nullability
}

// UpdateAccountRequest defines the full replacement of an account's editable fields.
// IsActive is a pointer so that an omitted flag is rejected rather than read as false.
type UpdateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,account_type"`
	ParentID    *int64 `json:"parentId"`
	IsActive    *bool  `json:"isActive" binding:"required"`
}

// Active returns the requested active flag, defaulting to true when unset.
func (r UpdateAccountRequest) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// CreateAccountResponse returns the generated account id.
type CreateAccountResponse struct {
	ID int64 `json:"id"`
}

// UpdateAccountResponse reports how many rows the update touched.
type UpdateAccountResponse struct {
	RowsAffected int64 `json:"rowsAffected"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	ParentID    *int64             `json:"parentId"`
	Balance     decimal.Decimal    `json:"balance"`
	IsActive    bool               `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          acc.ID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		ParentID:    acc.ParentID,
		Balance:     acc.Balance,
		IsActive:    acc.IsActive,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
