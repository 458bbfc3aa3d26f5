// Package db applies the schema migrations in migrations/.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/kiruna-explorer/backend/pkg/logger"
)

// Migrator runs schema migrations against one database.
type Migrator struct {
	m  *migrate.Migrate
	db *sql.DB
}

// NewMigrator opens a lib/pq connection to databaseURL and reads migrations
// from the directory at path.
func NewMigrator(databaseURL, path string) (*Migrator, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("init migrate driver: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(abs), "postgres", driver)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("load migrations from %s: %w", path, err)
	}
	return &Migrator{m: m, db: sqlDB}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Debug("Database schema is up to date")
		return nil
	}
	if err != nil {
		return err
	}
	v, _, _ := mg.m.Version()
	logger.Info("Applied migrations", "version", v)
	return nil
}

// Down rolls back the given number of migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	err := mg.m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Version reports the applied version and whether the last run left the
// schema dirty. Version 0 means no migration was applied.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
