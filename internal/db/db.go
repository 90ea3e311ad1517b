package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mgiraldo/contrack/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open resolves the database path (project-local .contrack first, per-OS
// config directory otherwise), opens it, runs pending migrations and ensures
// the seed data exists. Safe to call on every invocation.
func Open() (*sql.DB, error) {
	locs, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if err := locs.EnsureDir(); err != nil {
		return nil, err
	}
	return OpenAt(locs.DatabasePath)
}

// OpenAt opens, migrates and seeds the database at an explicit path.
func OpenAt(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	if err := runMigrations(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database at %s: %w", path, err)
	}

	if err := EnsureSeed(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to seed database at %s: %w", path, err)
	}

	return database, nil
}

func runMigrations(database *sql.DB) error {
	driver, err := sqlite3.WithInstance(database, &sqlite3.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
