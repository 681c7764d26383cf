package schema

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// EmbeddedSource returns the migrations compiled into the binary as a
// golang-migrate source driver.
func EmbeddedSource() (source.Driver, error) {
	return iofs.New(embeddedMigrations, "migrations")
}

// EmbeddedMigrations loads the ordered list of migrations compiled into the binary.
func EmbeddedMigrations() ([]Migration, error) {
	src, err := EmbeddedSource()
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	defer src.Close()
	return LoadMigrations(src)
}

// LoadMigrations reads every "up" migration from src in ascending version order.
// An empty source yields an empty list.
func LoadMigrations(src source.Driver) ([]Migration, error) {
	migrations := []Migration{}

	version, err := src.First()
	if errors.Is(err, fs.ErrNotExist) {
		return migrations, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read first migration: %w", err)
	}

	for {
		m, err := readUp(src, version)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)

		version, err = src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return migrations, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read migration after version %d: %w", m.Version, err)
		}
	}
}

func readUp(src source.Driver, version uint) (Migration, error) {
	r, identifier, err := src.ReadUp(version)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to open migration %d: %w", version, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to read migration %d: %w", version, err)
	}

	return Migration{
		Version:     version,
		Description: strings.ReplaceAll(identifier, "_", " "),
		Script:      string(body),
	}, nil
}
