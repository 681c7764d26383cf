package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/core/services"
	"github.com/SscSPs/bookkeeping_core/internal/platform/config"
	"github.com/SscSPs/bookkeeping_core/internal/platform/schema"
	"github.com/SscSPs/bookkeeping_core/internal/repositories/database/sqlite"
	"github.com/SscSPs/bookkeeping_core/pkg/database"
)

// app is a fully started core: configuration loaded, schema migrated, gateway open.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	gateway  *sqlite.Gateway
	services *portssvc.ServiceContainer
}

// newLogger builds the process-wide JSON logger.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads configuration and installs the default logger.
func loadConfig(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(logOut, cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openMigrated opens the ledger database and brings its schema up to date.
// The migration engine runs before any other component sees the handle.
func openMigrated(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, *schema.Engine, error) {
	db, err := database.OpenSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database opened.", slog.String("path", cfg.DatabasePath))

	engine, err := newEngine(db, logger)
	if err != nil {
		database.CloseSQLite(db)
		return nil, nil, err
	}

	logger.Info("Running database migrations...")
	if _, err := engine.ApplyPending(ctx); err != nil {
		database.CloseSQLite(db)
		return nil, nil, err
	}
	return db, engine, nil
}

func newEngine(db *sql.DB, logger *slog.Logger) (*schema.Engine, error) {
	migrations, err := schema.EmbeddedMigrations()
	if err != nil {
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}
	return schema.NewEngine(db, migrations, logger)
}

// startApp performs the full startup sequence shared by serve and seed.
func startApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, logger, err := loadConfig(logOut)
	if err != nil {
		return nil, err
	}

	db, _, err := openMigrated(ctx, cfg, logger)
	if err != nil {
		logger.Error("Startup failed", slog.String("error", err.Error()))
		return nil, err
	}

	gw := sqlite.NewGateway(db, logger)
	return &app{
		cfg:      cfg,
		logger:   logger,
		gateway:  gw,
		services: services.NewServiceContainer(gw),
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.gateway.Close(ctx); err != nil {
		a.logger.Error("Error closing database", slog.String("error", err.Error()))
	}
}
