package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/models"
	"github.com/SscSPs/bookkeeping_core/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

type SQLiteTransactionRepository struct {
	q Querier
}

// newSQLiteTransactionRepository creates a repository for ledger transactions bound to q.
func newSQLiteTransactionRepository(q Querier) portsrepo.TransactionRepositoryFacade {
	return &SQLiteTransactionRepository{q: q}
}

// Ensure SQLiteTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

// HasTransactions reports whether accountID is a party to any transaction.
func (r *SQLiteTransactionRepository) HasTransactions(ctx context.Context, accountID int64) (bool, error) {
	return Exists(ctx, r.q,
		"SELECT 1 FROM transactions WHERE debit_account_id = ? OR credit_account_id = ?",
		accountID, accountID)
}

// SaveTransaction inserts a transaction.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)

	res, err := r.q.ExecContext(ctx,
		"INSERT INTO transactions (date, amount, debit_account_id, credit_account_id, description) VALUES (?, ?, ?, ?, ?)",
		m.Date, m.Amount, m.DebitAccountID, m.CreditAccountID, m.Description,
	)
	if err != nil {
		return 0, translateTransactionError(err, m)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("read inserted transaction id", err)
	}
	return id, nil
}

// ListTransactionsByAccount returns the transactions touching accountID, oldest first.
func (r *SQLiteTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, fmt.Sprintf("list transactions for account %d", accountID),
		"WHERE debit_account_id = ? OR credit_account_id = ?", accountID, accountID)
}

// ListTransactions returns the whole ledger, oldest first.
func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, "list transactions", "")
}

func (r *SQLiteTransactionRepository) queryTransactions(ctx context.Context, op, where string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, date, amount, debit_account_id, credit_account_id, description
		FROM transactions `+where+`
		ORDER BY date, id`, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.ID, &m.Date, &m.Amount, &m.DebitAccountID, &m.CreditAccountID, &m.Description); err != nil {
			return nil, storageError("scan transaction row", err)
		}
		txn, err := mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, storageError("decode transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate transaction rows", err)
	}
	return txns, nil
}

func translateTransactionError(err error, m models.Transaction) error {
	code, ok := constraintCode(err)
	if !ok {
		return storageError("save transaction", err)
	}
	switch code {
	case sqlite3.ErrConstraintForeignKey:
		return apperrors.ErrAccountNotFound
	case sqlite3.ErrConstraintCheck:
		if m.DebitAccountID == m.CreditAccountID {
			return apperrors.ErrSelfReferentialTransaction
		}
		return apperrors.ErrInvalidAmount
	default:
		return storageError("save transaction", err)
	}
}
