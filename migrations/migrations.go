package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

//go:embed sql/*.sql
var fs embed.FS

type Option func(*sqlite.Config) error

// Migrate brings the rival code schema up to the latest version and returns it.
// A dirty schema is forced back one version and migrated again.
func Migrate(ctx context.Context, db *sql.DB, options ...Option) (version uint, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("db migrations failed: %w", err)
		}
	}()

	cfg := &sqlite.Config{
		MigrationsTable: sqlite.DefaultMigrationsTable,
	}
	for _, opt := range options {
		err = opt(cfg)
		if err != nil {
			return 0, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	err = db.PingContext(ctx)
	if err != nil {
		return 0, err
	}

	// the driver does not own db, closing m would close the caller's pool
	driver, err := sqlite.WithInstance(db, cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration driver: %w", err)
	}
	source, err := iofs.New(fs, "sql")
	if err != nil {
		return 0, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, DriverName, driver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = up(m)
	if err != nil {
		return 0, err
	}

	version, _, err = m.Version()
	if err != nil {
		return 0, err
	}
	log.Printf("rival code schema at version %d", version)
	return version, nil
}

func up(m *migrate.Migrate) error {
	v, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		// empty database
	case err != nil:
		return err
	case dirty:
		log.Printf("schema version %d is dirty, forcing version %d", v, int(v)-1)
		err = m.Force(int(v) - 1)
		if err != nil {
			return err
		}
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func WithMigrationTableName(name string) Option {
	return func(cfg *sqlite.Config) error {
		if name == "" {
			return errors.New("migration table name cannot be empty")
		}
		cfg.MigrationsTable = name
		return nil
	}
}

// WithoutTransaction runs every migration file outside of a transaction.
func WithoutTransaction() Option {
	return func(cfg *sqlite.Config) error {
		cfg.NoTxWrap = true
		return nil
	}
}
