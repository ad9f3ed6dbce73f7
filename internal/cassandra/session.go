package cassandra

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/gocql/gocql"
	"github.com/golang-migrate/migrate/v4"
	migratecassandra "github.com/golang-migrate/migrate/v4/database/cassandra"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/config"
)

var keyspaceRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,47}$`)

// Session wraps a gocql session bound to the service keyspace
type Session struct {
	*gocql.Session
	keyspace string
	log      zerolog.Logger
}

// New connects to the cluster, creating the keyspace first when missing
func New(cfg *config.CassandraConfig, log zerolog.Logger) (*Session, error) {
	if !keyspaceRegex.MatchString(cfg.Keyspace) {
		return nil, fmt.Errorf("invalid keyspace name %q", cfg.Keyspace)
	}

	consistency, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
	if err != nil {
		return nil, fmt.Errorf("invalid consistency %q: %w", cfg.Consistency, err)
	}

	if err := ensureKeyspace(cfg, consistency); err != nil {
		return nil, err
	}

	cluster := newCluster(cfg, consistency)
	cluster.Keyspace = cfg.Keyspace

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %w", err)
	}

	s := &Session{
		Session:  session,
		keyspace: cfg.Keyspace,
		log:      log.With().Str("component", "cassandra").Logger(),
	}

	s.log.Info().
		Strs("hosts", cfg.Hosts).
		Str("keyspace", cfg.Keyspace).
		Str("consistency", consistency.String()).
		Msg("Cassandra connection established")

	return s, nil
}

func newCluster(cfg *config.CassandraConfig, consistency gocql.Consistency) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Consistency = consistency
	cluster.SerialConsistency = gocql.LocalSerial
	cluster.Timeout = cfg.Timeout
	cluster.ConnectTimeout = cfg.Timeout
	return cluster
}

func ensureKeyspace(cfg *config.CassandraConfig, consistency gocql.Consistency) error {
	session, err := newCluster(cfg, consistency).CreateSession()
	if err != nil {
		return fmt.Errorf("failed to connect to cassandra: %w", err)
	}
	defer session.Close()

	stmt := fmt.Sprintf(
		`CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}`,
		cfg.Keyspace, cfg.Replication,
	)
	if err := session.Query(stmt).Exec(); err != nil {
		return fmt.Errorf("failed to create keyspace %s: %w", cfg.Keyspace, err)
	}
	return nil
}

// RunMigrations applies the CQL migrations in migrationsPath
func (s *Session) RunMigrations(migrationsPath string) error {
	s.log.Info().Str("path", migrationsPath).Msg("Running cassandra migrations")

	driver, err := migratecassandra.WithInstance(s.Session, &migratecassandra.Config{
		KeyspaceName:          s.keyspace,
		MultiStatementEnabled: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"cassandra",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	s.log.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations completed")

	return nil
}

// HealthCheck verifies a coordinator answers
func (s *Session) HealthCheck(ctx context.Context) error {
	return s.Query("SELECT release_version FROM system.local").WithContext(ctx).Exec()
}
