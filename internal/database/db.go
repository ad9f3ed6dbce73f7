package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/config"
)

// DB is the publisher's PostgreSQL pool. It also owns schema migrations for
// the publisher tables.
type DB struct {
	*sql.DB
	name string
	log  zerolog.Logger
}

// New opens the pool described by cfg and pings it
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	// Test connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := &DB{
		DB:   db,
		name: cfg.Name,
		log:  log.With().Str("component", "postgres").Str("database", cfg.Name).Logger(),
	}

	wrapper.log.Info().
		Str("host", cfg.Host+":"+cfg.Port).
		Str("sslmode", cfg.SSLMode).
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Dur("max_lifetime", cfg.MaxLifetime).
		Msg("Publisher database pool ready")

	return wrapper, nil
}

func (db *DB) migrator(migrationsPath string) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, db.name, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations brings the publisher schema (creators, tweets, stickers,
// tweet stickers, local comments) to the newest version in migrationsPath
func (db *DB) RunMigrations(migrationsPath string) error {
	m, err := db.migrator(migrationsPath)
	if err != nil {
		return err
	}

	from, _, err := schemaVersion(m)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate publisher schema from %s: %w", migrationsPath, err)
	}

	to, dirty, err := schemaVersion(m)
	if err != nil {
		return err
	}

	db.log.Info().
		Str("source", migrationsPath).
		Uint("from_version", from).
		Uint("to_version", to).
		Bool("dirty", dirty).
		Msg("Publisher schema up to date")

	return nil
}

// schemaVersion reports version 0 for a schema that was never migrated
func schemaVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, dirty, nil
}

// MigrateDown reverts the newest applied publisher migration
func (db *DB) MigrateDown(migrationsPath string) error {
	m, err := db.migrator(migrationsPath)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to revert publisher schema: %w", err)
	}

	version, _, err := schemaVersion(m)
	if err != nil {
		return err
	}
	db.log.Info().Str("source", migrationsPath).Uint("to_version", version).Msg("Publisher schema reverted one step")
	return nil
}

// MigrateToVersion moves the publisher schema up or down to version
func (db *DB) MigrateToVersion(migrationsPath string, version uint) error {
	m, err := db.migrator(migrationsPath)
	if err != nil {
		return err
	}

	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to move publisher schema to version %d: %w", version, err)
	}

	db.log.Info().Str("source", migrationsPath).Uint("to_version", version).Msg("Publisher schema moved")
	return nil
}

// HealthCheck pings the pool; it backs the publisher's /health
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres %s unreachable: %w", db.name, err)
	}
	return nil
}

// Close releases the pool
func (db *DB) Close() error {
	db.log.Info().Msg("Closing publisher database pool")
	return db.DB.Close()
}
