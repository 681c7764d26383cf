// Package export writes a ledger snapshot as spreadsheet-friendly CSV: one
// chart-of-accounts table and one transactions table, bundled in a zip archive.
package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Member names inside the archive.
const (
	TransactionsFile = "Transactions.csv"
	AccountsFile     = "ChartOfAccounts.csv"
)

const dateFormat = "2006-01-02"

var (
	accountHeader     = []string{"account_name", "account_type", "parent_account", "balance", "is_active"}
	transactionHeader = []string{"date", "debit_account", "credit_account", "amount", "description"}
)

// WriteArchive writes both tables of snapshot into a zip archive on w.
func WriteArchive(w io.Writer, snapshot domain.LedgerSnapshot) error {
	zw := zip.NewWriter(w)
	names := snapshot.AccountNames()

	f, err := zw.Create(TransactionsFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", TransactionsFile, err)
	}
	if err := WriteTransactions(f, snapshot.Transactions, names); err != nil {
		return err
	}

	f, err = zw.Create(AccountsFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", AccountsFile, err)
	}
	if err := WriteAccounts(f, snapshot.Accounts); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// WriteAccounts writes the chart of accounts. Parents are written by name.
func WriteAccounts(w io.Writer, accounts []domain.Account) error {
	cw := csv.NewWriter(w)

	names := domain.LedgerSnapshot{Accounts: accounts}.AccountNames()

	if err := cw.Write(accountHeader); err != nil {
		return fmt.Errorf("writing accounts header: %w", err)
	}
	for i, acc := range accounts {
		if err := cw.Write(marshalAccount(acc, names)); err != nil {
			return fmt.Errorf("writing account row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactions writes transactions with both parties resolved through names.
func WriteTransactions(w io.Writer, txns []domain.Transaction, names map[int64]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("writing transactions header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(marshalTransaction(txn, names)); err != nil {
			return fmt.Errorf("writing transaction row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func marshalAccount(acc domain.Account, names map[int64]string) []string {
	parent := ""
	if acc.ParentID != nil {
		parent = accountName(*acc.ParentID, names)
	}
	return []string{
		acc.Name,
		string(acc.AccountType),
		parent,
		formatAmount(acc.Balance),
		strconv.FormatBool(acc.IsActive),
	}
}

func marshalTransaction(txn domain.Transaction, names map[int64]string) []string {
	return []string{
		txn.Date.UTC().Format(dateFormat),
		accountName(txn.DebitAccountID, names),
		accountName(txn.CreditAccountID, names),
		formatAmount(txn.Amount),
		txn.Description,
	}
}

// accountName falls back to the id when the account is not in the snapshot.
func accountName(id int64, names map[int64]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return strconv.FormatInt(id, 10)
}

// formatAmount keeps at least two decimal places and never drops precision.
func formatAmount(d decimal.Decimal) string {
	places := int32(2)
	if -d.Exponent() > places {
		places = -d.Exponent()
	}
	return d.StringFixed(places)
}
