package main

import (
	"fmt"
	"os"

	"github.com/tweet-discussion-api/internal/api"
	"github.com/tweet-discussion-api/internal/cassandra"
	"github.com/tweet-discussion-api/internal/config"
	"github.com/tweet-discussion-api/internal/metrics"
	"github.com/tweet-discussion-api/internal/repository"
	"github.com/tweet-discussion-api/internal/server"
	"github.com/tweet-discussion-api/internal/service"
	"github.com/tweet-discussion-api/pkg/logger"
)

const defaultPort = "24130"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "discussion: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(defaultPort)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log := logger.New("discussion", logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info().Msg("Starting discussion service...")

	// Initialize cassandra
	session, err := cassandra.New(&cfg.Cassandra, log)
	if err != nil {
		return err
	}
	defer session.Close()

	// Run migrations
	if err := session.RunMigrations(cfg.Cassandra.MigrationsPath); err != nil {
		return err
	}

	// Initialize repositories and service
	repos := repository.NewDiscussion(session.Session)
	comments := service.NewDiscussionService(repos, log)

	// Initialize router
	router := api.NewDiscussionRouter(comments, session, metrics.New("discussion", log), log)

	if err := server.Run(&cfg.Server, router, log); err != nil {
		log.Error().Err(err).Msg("Server failed")
		return err
	}
	return nil
}
