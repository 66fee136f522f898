package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"medqbank/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type migrationFile struct {
	version uint
	name    string
	up      string
	down    string
}

// oracleMigrator runs NNNNNN_name.{up,down}.sql files from an fs.FS and keeps
// the same schema_migrations(version, dirty) row golang-migrate uses, so both
// backends report versions the same way.
type oracleMigrator struct {
	db         *sqlx.DB
	migrations []migrationFile
}

func newOracleMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*oracleMigrator, error) {
	files, err := loadMigrations(fsys, dir)
	if err != nil {
		return nil, err
	}
	return &oracleMigrator{db: db, migrations: files}, nil
}

// loadMigrations reads dir and pairs up/down files by version, ascending.
func loadMigrations(fsys fs.FS, dir string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	byVersion := make(map[uint]*migrationFile)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}

		prefix, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", name)
		}
		version, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s has an invalid version: %w", name, err)
		}

		content, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		mf, exists := byVersion[uint(version)]
		if !exists {
			mf = &migrationFile{
				version: uint(version),
				name:    strings.TrimSuffix(strings.TrimSuffix(rest, ".up.sql"), ".down.sql"),
			}
			byVersion[uint(version)] = mf
		}
		if direction == "up" {
			mf.up = string(content)
		} else {
			mf.down = string(content)
		}
	}

	files := make([]migrationFile, 0, len(byVersion))
	for _, mf := range byVersion {
		if mf.up == "" {
			return nil, fmt.Errorf("migration %d_%s is missing its up file", mf.version, mf.name)
		}
		files = append(files, *mf)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// splitStatements breaks a script on ';' line endings. go-ora executes one
// statement per call and rejects the trailing semicolon.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			statements = append(statements, current.String())
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}

func (o *oracleMigrator) ensureVersionTable() error {
	var count int
	if err := o.db.Get(&count, `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`); err != nil {
		return fmt.Errorf("failed to check schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := o.db.Exec(`CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func (o *oracleMigrator) Version() (uint, bool, error) {
	if err := o.ensureVersionTable(); err != nil {
		return 0, false, err
	}
	var row struct {
		Version int64 `db:"version"`
		Dirty   int   `db:"dirty"`
	}
	err := o.db.Get(&row, `SELECT version "version", dirty "dirty" FROM schema_migrations FETCH FIRST 1 ROWS ONLY`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return uint(row.Version), row.Dirty != 0, nil
}

func (o *oracleMigrator) setVersion(version uint, dirty bool) error {
	tx, err := o.db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM schema_migrations`); err != nil {
		tx.Rollback()
		return err
	}
	if version > 0 {
		dirtyFlag := 0
		if dirty {
			dirtyFlag = 1
		}
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`), version, dirtyFlag); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (o *oracleMigrator) run(version uint, name, script string) error {
	if err := o.setVersion(version, true); err != nil {
		return fmt.Errorf("failed to mark migration %d dirty: %w", version, err)
	}
	for _, stmt := range splitStatements(script) {
		if _, err := o.db.Exec(stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", version, name, err)
		}
	}
	return nil
}

func (o *oracleMigrator) Up() error {
	current, dirty, err := o.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d, fix it manually before migrating", current)
	}

	for _, mf := range o.migrations {
		if mf.version <= current {
			continue
		}
		if err := o.run(mf.version, mf.name, mf.up); err != nil {
			return err
		}
		if err := o.setVersion(mf.version, false); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", mf.version, err)
		}
		logger.Get().Info("Executed migration", zap.Uint("version", mf.version), zap.String("name", mf.name))
	}
	return nil
}

func (o *oracleMigrator) Down(steps int) error {
	current, dirty, err := o.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d, fix it manually before migrating", current)
	}

	applied := 0
	for i := len(o.migrations) - 1; i >= 0; i-- {
		mf := o.migrations[i]
		if mf.version > current {
			continue
		}
		if steps > 0 && applied >= steps {
			break
		}
		if err := o.run(mf.version, mf.name, mf.down); err != nil {
			return err
		}
		var previous uint
		if i > 0 {
			previous = o.migrations[i-1].version
		}
		if err := o.setVersion(previous, false); err != nil {
			return fmt.Errorf("failed to record rollback of %d: %w", mf.version, err)
		}
		logger.Get().Info("Rolled back migration", zap.Uint("version", mf.version), zap.String("name", mf.name))
		applied++
	}
	return nil
}
