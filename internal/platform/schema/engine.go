// Package schema brings a ledger database to the latest schema known to this
// build. Progress is recorded in the schema_migrations table of the database
// itself, one row per applied version; the highest row is the schema version
// counter. Each migration runs in its own storage transaction together with the
// row that records it, so the counter can never run ahead of the schema.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
)

const ledgerTable = "schema_migrations"

// Migration is one versioned schema change.
type Migration struct {
	Version     uint
	Description string
	Script      string
}

// AppliedMigration is a row of the migration ledger.
type AppliedMigration struct {
	Version     uint
	Description string
	AppliedAt   time.Time
}

// MigrationError reports a migration whose script or bookkeeping failed.
// It matches apperrors.ErrFatalStartup as well as the underlying cause.
type MigrationError struct {
	Version     uint
	Description string
	Err         error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %d (%s) failed: %v", e.Version, e.Description, e.Err)
}

func (e *MigrationError) Unwrap() []error {
	return []error{apperrors.ErrFatalStartup, e.Err}
}

// Engine applies pending migrations to a database.
type Engine struct {
	db         *sql.DB
	migrations []Migration
	logger     *slog.Logger
	now        func() time.Time
}

// NewEngine creates an engine over db. migrations must be sorted by strictly
// increasing, non-zero version.
func NewEngine(db *sql.DB, migrations []Migration, logger *slog.Logger) (*Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: migration engine needs a database handle", apperrors.ErrFatalStartup)
	}
	var prev uint
	for i, m := range migrations {
		if m.Version == 0 || (i > 0 && m.Version <= prev) {
			return nil, fmt.Errorf("%w: migration versions must be strictly increasing and non-zero (got %d after %d)",
				apperrors.ErrFatalStartup, m.Version, prev)
		}
		prev = m.Version
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{db: db, migrations: migrations, logger: logger, now: time.Now}, nil
}

// LatestVersion is the highest version this build knows about, or 0.
func (e *Engine) LatestVersion() uint {
	if len(e.migrations) == 0 {
		return 0
	}
	return e.migrations[len(e.migrations)-1].Version
}

// CurrentVersion reads the schema version counter. An uninitialised database reports 0.
func (e *Engine) CurrentVersion(ctx context.Context) (uint, error) {
	var exists bool
	err := e.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)", ledgerTable,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to inspect schema: %w", apperrors.ErrFatalStartup, err)
	}
	if !exists {
		return 0, nil
	}

	var version int64
	err = e.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM "+ledgerTable).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read schema version: %w", apperrors.ErrFatalStartup, err)
	}
	return uint(version), nil
}

// Applied lists the migration ledger in version order.
func (e *Engine) Applied(ctx context.Context) ([]AppliedMigration, error) {
	if err := e.bootstrap(ctx); err != nil {
		return nil, err
	}
	rows, err := e.db.QueryContext(ctx, "SELECT version, description, applied_at FROM "+ledgerTable+" ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migration ledger: %w", err)
	}
	defer rows.Close()

	applied := []AppliedMigration{}
	for rows.Next() {
		var (
			m         AppliedMigration
			version   int64
			appliedAt string
		)
		if err := rows.Scan(&version, &m.Description, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration ledger row: %w", err)
		}
		m.Version = uint(version)
		if m.AppliedAt, err = time.Parse(time.RFC3339Nano, appliedAt); err != nil {
			return nil, fmt.Errorf("migration %d has unreadable applied_at %q: %w", m.Version, appliedAt, err)
		}
		applied = append(applied, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating migration ledger: %w", err)
	}
	return applied, nil
}

// ApplyPending runs, in ascending order, every migration newer than the
// stored counter and returns how many were applied. It stops at the first
// failure; migrations committed before it stay applied.
func (e *Engine) ApplyPending(ctx context.Context) (int, error) {
	if err := e.bootstrap(ctx); err != nil {
		return 0, err
	}

	current, err := e.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	if latest := e.LatestVersion(); current > latest {
		e.logger.Warn("Database schema is newer than this build; no migrations applied",
			slog.Uint64("schema_version", uint64(current)),
			slog.Uint64("latest_known_version", uint64(latest)))
		return 0, nil
	}

	applied := 0
	for _, m := range e.migrations {
		if m.Version <= current {
			continue
		}
		e.logger.Info("Applying migration",
			slog.Uint64("version", uint64(m.Version)),
			slog.String("description", m.Description))
		if err := e.apply(ctx, m); err != nil {
			e.logger.Error("Migration failed",
				slog.Uint64("version", uint64(m.Version)),
				slog.String("error", err.Error()))
			return applied, err
		}
		applied++
	}

	if applied == 0 {
		e.logger.Info("No new migrations to apply.", slog.Uint64("schema_version", uint64(current)))
	} else {
		e.logger.Info("Database migrations applied successfully.",
			slog.Int("applied", applied),
			slog.Uint64("schema_version", uint64(e.LatestVersion())))
	}
	return applied, nil
}

func (e *Engine) bootstrap(ctx context.Context) error {
	_, err := e.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+ledgerTable+` (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("%w: failed to create migration ledger: %w", apperrors.ErrFatalStartup, err)
	}
	return nil
}

func (e *Engine) apply(ctx context.Context, m Migration) (err error) {
	fail := func(cause error) error {
		return &MigrationError{Version: m.Version, Description: m.Description, Err: cause}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("begin: %w", err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, m.Script); err != nil {
		return fail(err)
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO "+ledgerTable+" (version, description, applied_at) VALUES (?, ?, ?)",
		int64(m.Version), m.Description, e.now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fail(fmt.Errorf("record version: %w", err))
	}
	// Mirrored for tools that read the SQLite header instead of the ledger table.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fail(fmt.Errorf("set user_version: %w", err))
	}
	if err = tx.Commit(); err != nil {
		return fail(fmt.Errorf("commit: %w", err))
	}
	return nil
}
