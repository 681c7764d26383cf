// Package sqlite implements the repository ports on an embedded SQLite file.
//
// All access goes through Gateway, which owns the only database handle and
// admits one unit of work at a time. Readers take the same exclusive slot as
// writers, so each unit of work sees a consistent snapshot of the store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_core/internal/core/ports/repositories"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Gateway serializes all access to the store.
type Gateway struct {
	db     *sql.DB
	slot   chan struct{}
	closed atomic.Bool
	logger *slog.Logger
}

// NewGateway takes ownership of db. Migrations must already have run.
func NewGateway(db *sql.DB, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		db:     db,
		slot:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Ensure Gateway implements portsrepo.TransactionManager
var _ portsrepo.TransactionManager = (*Gateway)(nil)

// WithExclusiveAccess runs fn with sole access to the store inside one
// storage transaction. fn's error is returned unchanged after rollback. A
// panic in fn is recovered, rolled back and reported as ErrLockUnavailable.
func (g *Gateway) WithExclusiveAccess(ctx context.Context, fn portsrepo.UnitOfWork) (err error) {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()

	if g.closed.Load() {
		return fmt.Errorf("%w: gateway is closed", apperrors.ErrLockUnavailable)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}

	done := false
	defer func() {
		if r := recover(); r != nil {
			g.rollback(tx)
			g.logger.Error("Recovered panic inside exclusive access window", slog.Any("panic", r))
			err = fmt.Errorf("%w: operation aborted: %v", apperrors.ErrLockUnavailable, r)
			return
		}
		if !done {
			g.rollback(tx)
		}
	}()

	if err = fn(ctx, newRepositoryProvider(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return storageError("commit transaction", err)
	}
	done = true
	return nil
}

// Exists evaluates a predicate query under exclusive access, outside any
// unit of work.
func (g *Gateway) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	if err := g.acquire(ctx); err != nil {
		return false, err
	}
	defer g.release()

	if g.closed.Load() {
		return false, fmt.Errorf("%w: gateway is closed", apperrors.ErrLockUnavailable)
	}
	return Exists(ctx, g.db, query, args...)
}

// Close marks the gateway unusable and closes the database handle once any
// in-flight unit of work has finished.
func (g *Gateway) Close(ctx context.Context) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()
	if g.closed.Swap(true) {
		return nil
	}
	return g.db.Close()
}

func (g *Gateway) acquire(ctx context.Context) error {
	select {
	case g.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", apperrors.ErrLockUnavailable, ctx.Err())
	}
}

func (g *Gateway) release() {
	<-g.slot
}

func (g *Gateway) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		g.logger.Error("Failed to roll back transaction", slog.String("error", err.Error()))
	}
}

// Exists reports whether query returns at least one row. query is the inner
// SELECT of an EXISTS predicate.
func Exists(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var found bool
	if err := q.QueryRowContext(ctx, "SELECT EXISTS("+query+")", args...).Scan(&found); err != nil {
		return false, storageError("exists query", err)
	}
	return found, nil
}
