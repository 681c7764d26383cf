package config

import (
	"log/slog"
	"testing"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty variables count as unset.
	for _, key := range []string{"LEDGER_DB_PATH", "LISTEN_ADDR", "IS_PRODUCTION", "LOG_LEVEL", "ALLOWED_ORIGINS", "SEED_DEFAULT_CHART", "RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.IsProduction)
	assert.False(t, cfg.SeedDefaultChart)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "/tmp/ledger/books.db")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ALLOWED_ORIGINS", "tauri://localhost, http://localhost:1420 ,,")
	t.Setenv("SEED_DEFAULT_CHART", "1")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ledger/books.db", cfg.DatabasePath)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	assert.True(t, cfg.IsProduction)
	assert.True(t, cfg.SeedDefaultChart)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:1420"}, cfg.AllowedOrigins)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_BlankDatabasePath(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "   ")

	cfg, err := load(viper.New())
	assert.ErrorIs(t, err, apperrors.ErrFatalStartup)
	assert.Nil(t, cfg)
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "books.db")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := load(viper.New())
	assert.ErrorIs(t, err, apperrors.ErrFatalStartup)
}

func TestLoad_RateLimit(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "books.db")

	t.Setenv("RATE_LIMIT", "OFF")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Empty(t, cfg.RateLimit)

	t.Setenv("RATE_LIMIT", "20-M")
	cfg, err = load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "20-M", cfg.RateLimit)

	t.Setenv("RATE_LIMIT", "lots")
	_, err = load(viper.New())
	assert.ErrorIs(t, err, apperrors.ErrFatalStartup)
}
