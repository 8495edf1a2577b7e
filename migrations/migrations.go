package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// New builds a migrator for an already opened database. driverName is the
// database/sql driver the connection was opened with ("postgres" or "sqlite3").
//
// The returned Migrate must not be closed: closing it closes db as well.
func New(db *sql.DB, driverName string) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	var driver database.Driver
	switch driverName {
	case "postgres":
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case "sqlite3":
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration driver: %s", driverName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init %s migration driver: %w", driverName, err)
	}

	return migrate.NewWithInstance("iofs", source, driverName, driver)
}

// Up applies every pending migration. Being already up to date is not an error.
func Up(db *sql.DB, driverName string) error {
	m, err := New(db, driverName)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply up migrations: %w", err)
	}

	return nil
}
