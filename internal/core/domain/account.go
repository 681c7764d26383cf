package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Income    AccountType = "Income"
	Expense   AccountType = "Expense"
)

// AccountTypes lists the closed set of account types in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// ParseAccountType converts a raw string into an AccountType. Matching is
// exact: "asset" or " Asset" are rejected.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AccountTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountType, s)
}

// IsValid reports whether t belongs to the closed set.
func (t AccountType) IsValid() bool {
	_, err := ParseAccountType(string(t))
	return err == nil
}

// Account represents a node in the chart of accounts.
type Account struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	ParentID    *int64          `json:"parentId"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
}

// NewAccount returns an unsaved account with a zero balance, marked active.
func NewAccount(name string, accountType AccountType, parentID *int64) Account {
	return Account{
		Name:        strings.TrimSpace(name),
		AccountType: accountType,
		ParentID:    parentID,
		Balance:     decimal.Zero,
		IsActive:    true,
	}
}

// Validate checks the fields that do not need the store to verify.
func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.ErrInvalidName
	}
	if !a.AccountType.IsValid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountType, a.AccountType)
	}
	if a.ParentID != nil && a.ID != 0 && *a.ParentID == a.ID {
		return apperrors.ErrParentCycle
	}
	return nil
}
