package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds application configuration.
type Config struct {
	DatabasePath     string   `mapstructure:"LEDGER_DB_PATH"`
	ListenAddr       string   `mapstructure:"LISTEN_ADDR"`
	IsProduction     bool     `mapstructure:"IS_PRODUCTION"`
	LogLevel         string   `mapstructure:"LOG_LEVEL"`
	AllowedOrigins   []string `mapstructure:"ALLOWED_ORIGINS"`
	SeedDefaultChart bool     `mapstructure:"SEED_DEFAULT_CHART"`
	RateLimit        string   `mapstructure:"RATE_LIMIT"` // empty disables limiting
}

// Defaults applied when neither the environment nor a .env file sets a key.
const (
	DefaultDatabasePath = "app.db"
	DefaultListenAddr   = "127.0.0.1:8080"
	DefaultLogLevel     = "info"
	DefaultRateLimit    = "100-S"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("LEDGER_DB_PATH", DefaultDatabasePath)
	v.SetDefault("LISTEN_ADDR", DefaultListenAddr)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("SEED_DEFAULT_CHART", false)
	v.SetDefault("RATE_LIMIT", DefaultRateLimit)
	v.AutomaticEnv()

	cfg := &Config{
		DatabasePath:     strings.TrimSpace(v.GetString("LEDGER_DB_PATH")),
		ListenAddr:       strings.TrimSpace(v.GetString("LISTEN_ADDR")),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		SeedDefaultChart: v.GetBool("SEED_DEFAULT_CHART"),
		RateLimit:        strings.TrimSpace(v.GetString("RATE_LIMIT")),
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: LEDGER_DB_PATH must not be empty", apperrors.ErrFatalStartup)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.RateLimit, "off") {
		cfg.RateLimit = ""
	}
	if cfg.RateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
			return nil, fmt.Errorf("%w: invalid RATE_LIMIT %q: %w", apperrors.ErrFatalStartup, cfg.RateLimit, err)
		}
	}
	return cfg, nil
}

// SlogLevel converts LogLevel into a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: invalid LOG_LEVEL %q", apperrors.ErrFatalStartup, c.LogLevel)
	}
	return level, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
