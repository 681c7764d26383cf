package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database; used by tests.
const MemoryPath = ":memory:"

// OpenSQLite opens the ledger database at path with foreign keys enforced.
// The returned handle never opens more than one connection, so an in-memory
// database lives exactly as long as the handle.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path cannot be empty", apperrors.ErrFatalStartup)
	}

	if path != MemoryPath {
		// Create the data directory if it doesn't exist
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: failed to create database directory %s: %w", apperrors.ErrFatalStartup, dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", apperrors.ErrFatalStartup, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to open database %s: %w", apperrors.ErrFatalStartup, path, err)
	}

	var fkEnabled bool
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fkEnabled); err != nil || !fkEnabled {
		db.Close()
		return nil, fmt.Errorf("%w: foreign key enforcement unavailable (err: %v)", apperrors.ErrFatalStartup, err)
	}

	slog.Debug("Opened SQLite database", slog.String("path", path))
	return db, nil
}

// CloseSQLite closes the database handle.
func CloseSQLite(db *sql.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
			return
		}
		slog.Debug("SQLite database closed.")
	}
}

func dsn(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", "5000")
	if path == MemoryPath {
		return "file::memory:?" + params.Encode()
	}
	params.Set("_journal_mode", "WAL")
	return "file:" + path + "?" + params.Encode()
}
