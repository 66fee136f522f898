package database

import (
	"errors"
	"fmt"

	"medqbank/internal/config"
	"medqbank/internal/logger"
	"medqbank/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Migrator applies the embedded schema migrations.
type Migrator interface {
	// Up applies every pending migration.
	Up() error
	// Down rolls back steps migrations, or all of them when steps <= 0.
	Down(steps int) error
	// Version reports the current schema version; 0 means nothing applied.
	Version() (uint, bool, error)
}

// NewMigrator picks the migration runner for the connected driver. Postgres
// goes through golang-migrate; Oracle, which golang-migrate has no driver
// for, uses the embedded runner in oracle_migrator.go.
func NewMigrator(db *sqlx.DB, driver string) (Migrator, error) {
	switch driver {
	case config.DriverPostgres:
		return newPostgresMigrator(db)
	case config.DriverOracle:
		return newOracleMigrator(db, migrations.Oracle, "oracle")
	default:
		return nil, fmt.Errorf("no migrator for driver %q", driver)
	}
}

type postgresMigrator struct {
	m *migrate.Migrate
}

func newPostgresMigrator(db *sqlx.DB) (*postgresMigrator, error) {
	src, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, config.DriverPostgres, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return &postgresMigrator{m: m}, nil
}

func (p *postgresMigrator) Up() error {
	if err := p.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Get().Info("Schema already up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (p *postgresMigrator) Down(steps int) error {
	var err error
	if steps <= 0 {
		err = p.m.Down()
	} else {
		err = p.m.Steps(-steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

func (p *postgresMigrator) Version() (uint, bool, error) {
	version, dirty, err := p.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

// MigrateUp is the entry point used by cmd/api when auto-migration is enabled.
func MigrateUp(db *sqlx.DB, driver string) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		return err
	}
	version, _, err := m.Version()
	if err != nil {
		return err
	}
	logger.Get().Info("Migrations applied", zap.String("driver", driver), zap.Uint("version", version))
	return nil
}
