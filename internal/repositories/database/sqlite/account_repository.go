package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_core/internal/models"
	"github.com/SscSPs/bookkeeping_core/internal/utils/mapping"
	"github.com/mattn/go-sqlite3"
)

const accountColumns = "id, name, type, parent_id, balance, is_active"

type SQLiteAccountRepository struct {
	q Querier
}

// newSQLiteAccountRepository creates a repository for account data bound to q.
func newSQLiteAccountRepository(q Querier) portsrepo.AccountRepositoryFacade {
	return &SQLiteAccountRepository{q: q}
}

// Ensure SQLiteAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.ID, &m.Name, &m.Type, &m.ParentID, &m.Balance, &m.IsActive)
	return m, err
}

// SaveAccount inserts a new account.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	m := mapping.ToModelAccount(account)

	res, err := r.q.ExecContext(ctx,
		"INSERT INTO accounts (name, type, parent_id, balance, is_active) VALUES (?, ?, ?, ?, ?)",
		m.Name, m.Type, m.ParentID, m.Balance, m.IsActive,
	)
	if err != nil {
		return 0, translateAccountError(err, "save account "+m.Name)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("read inserted account id", err)
	}
	return id, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	m, err := scanAccount(r.q.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ?", accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, storageError(fmt.Sprintf("find account %d", accountID), err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves every account ordered by id.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT "+accountColumns+" FROM accounts ORDER BY id")
	if err != nil {
		return nil, storageError("list accounts", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, storageError("scan account row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// AccountExists reports whether an account with the given id is stored.
func (r *SQLiteAccountRepository) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	return Exists(ctx, r.q, "SELECT 1 FROM accounts WHERE id = ?", accountID)
}

// AccountNameExists reports whether an account other than excludeID uses name.
// The comparison is case-sensitive, matching the UNIQUE index.
func (r *SQLiteAccountRepository) AccountNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return Exists(ctx, r.q, "SELECT 1 FROM accounts WHERE name = ? AND id != ?", name, excludeID)
}

// FindParentID returns the parent of accountID.
func (r *SQLiteAccountRepository) FindParentID(ctx context.Context, accountID int64) (*int64, error) {
	var parent sql.NullInt64
	err := r.q.QueryRowContext(ctx, "SELECT parent_id FROM accounts WHERE id = ?", accountID).Scan(&parent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		return nil, storageError(fmt.Sprintf("find parent of account %d", accountID), err)
	}
	return mapping.FromNullInt64(parent), nil
}

// UpdateAccount updates name, type, parent and active flag. Balance is never
// written here.
func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) (int64, error) {
	m := mapping.ToModelAccount(account)

	res, err := r.q.ExecContext(ctx,
		"UPDATE accounts SET name = ?, type = ?, parent_id = ?, is_active = ? WHERE id = ?",
		m.Name, m.Type, m.ParentID, m.IsActive, m.ID,
	)
	if err != nil {
		return 0, translateAccountError(err, fmt.Sprintf("update account %d", m.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, storageError("read affected rows", err)
	}
	return affected, nil
}

func translateAccountError(err error, op string) error {
	code, ok := constraintCode(err)
	if !ok {
		return storageError(op, err)
	}
	switch code {
	case sqlite3.ErrConstraintUnique:
		return apperrors.ErrDuplicateName
	case sqlite3.ErrConstraintForeignKey:
		return apperrors.ErrParentNotFound
	case sqlite3.ErrConstraintTrigger:
		return apperrors.ErrCannotDeactivateWithHistory
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
		return fmt.Errorf("%w: account rejected by schema constraint", apperrors.ErrValidation)
	default:
		return storageError(op, err)
	}
}
