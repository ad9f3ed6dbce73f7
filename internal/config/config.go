package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Comment storage modes for the publisher
const (
	CommentStorageRemote = "remote"
	CommentStorageLocal  = "local"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (publisher)
	Database DatabaseConfig

	// Cassandra configuration (discussion)
	Cassandra CassandraConfig

	// Discussion service client configuration (publisher)
	Discussion DiscussionConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// CassandraConfig holds wide-column store settings
type CassandraConfig struct {
	Hosts          []string
	Keyspace       string
	Consistency    string
	Timeout        time.Duration
	Replication    int
	MigrationsPath string
}

// DiscussionConfig describes how the publisher reaches the discussion service
type DiscussionConfig struct {
	URL     string
	Timeout time.Duration
	// Strict surfaces transport failures as errors instead of empty results
	Strict  bool
	Storage string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables. defaultPort is used
// when PORT is not set, so each binary keeps its own conventional port.
func Load(defaultPort string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", defaultPort),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "distcomp"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations/publisher"),
		},
		Cassandra: CassandraConfig{
			Hosts:          getListEnv("CASSANDRA_HOSTS", []string{"localhost:9042"}),
			Keyspace:       getEnv("CASSANDRA_KEYSPACE", "distcomp"),
			Consistency:    getEnv("CASSANDRA_CONSISTENCY", "QUORUM"),
			Timeout:        getDurationEnv("CASSANDRA_TIMEOUT", 5*time.Second),
			Replication:    getIntEnv("CASSANDRA_REPLICATION", 1),
			MigrationsPath: getEnv("CASSANDRA_MIGRATIONS_PATH", "./migrations/discussion"),
		},
		Discussion: DiscussionConfig{
			URL:     strings.TrimSuffix(getEnv("DISCUSSION_URL", "http://localhost:24130"), "/"),
			Timeout: getDurationEnv("DISCUSSION_TIMEOUT", 10*time.Second),
			Strict:  getBoolEnv("DISCUSSION_STRICT", false),
			Storage: getEnv("COMMENT_STORAGE", CommentStorageRemote),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if len(c.Cassandra.Hosts) == 0 {
		return fmt.Errorf("CASSANDRA_HOSTS is required")
	}
	if c.Cassandra.Keyspace == "" {
		return fmt.Errorf("CASSANDRA_KEYSPACE is required")
	}
	switch c.Discussion.Storage {
	case CommentStorageRemote:
		if c.Discussion.URL == "" {
			return fmt.Errorf("DISCUSSION_URL is required when COMMENT_STORAGE=%s", CommentStorageRemote)
		}
	case CommentStorageLocal:
	default:
		return fmt.Errorf("COMMENT_STORAGE must be one of: %s, %s", CommentStorageRemote, CommentStorageLocal)
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
