package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/config"
)

const migrationsPath = "../../migrations/publisher"

func testDB(t *testing.T) *DB {
	t.Helper()
	host := os.Getenv("POSTGRES_TEST_HOST")
	if host == "" {
		t.Skip("POSTGRES_TEST_HOST not set")
	}

	db, err := New(&config.DatabaseConfig{
		Host:         host,
		Port:         "5432",
		User:         "postgres",
		Password:     "postgres",
		Name:         "distcomp_test",
		SSLMode:      "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 1,
		MaxLifetime:  time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_MigrateUpDownUp(t *testing.T) {
	db := testDB(t)

	if err := db.RunMigrations(migrationsPath); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	if err := db.MigrateDown(migrationsPath); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	if err := db.MigrateToVersion(migrationsPath, 1); err != nil {
		t.Fatalf("MigrateToVersion failed: %v", err)
	}

	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'tbl_tweet_sticker')`).Scan(&exists)
	if err != nil || !exists {
		t.Errorf("Expected tbl_tweet_sticker after migrating, exists=%v err=%v", exists, err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
