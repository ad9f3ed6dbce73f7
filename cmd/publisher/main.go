package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/tweet-discussion-api/internal/api"
	"github.com/tweet-discussion-api/internal/config"
	"github.com/tweet-discussion-api/internal/database"
	"github.com/tweet-discussion-api/internal/metrics"
	"github.com/tweet-discussion-api/internal/repository"
	"github.com/tweet-discussion-api/internal/server"
	"github.com/tweet-discussion-api/internal/service"
	"github.com/tweet-discussion-api/pkg/logger"
)

const defaultPort = "24110"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [migrate up|down|goto N]\n", os.Args[0])
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "publisher: %v\n", err)
		os.Exit(1)
	}
}

// run serves the publisher, or runs the migrate command named by args
func run(args []string) error {
	// Load configuration
	cfg, err := config.Load(defaultPort)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log := logger.New("publisher", logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if len(args) > 0 {
		return migrateCommand(db, cfg.Database.MigrationsPath, args)
	}

	log.Info().Str("comment_storage", cfg.Discussion.Storage).Msg("Starting publisher service...")

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		return err
	}

	m := metrics.New("publisher", log)

	// Initialize repositories
	repos := repository.New(db)
	if cfg.Discussion.Storage == config.CommentStorageRemote {
		repos.Comment = repository.NewRemoteCommentRepo(&cfg.Discussion, repos.Tweet, m, log)
		log.Info().
			Str("url", cfg.Discussion.URL).
			Bool("strict", cfg.Discussion.Strict).
			Msg("Comments stored in discussion service")
	}

	// Initialize services
	services := service.NewServices(repos, log)

	// Initialize router
	router := api.NewPublisherRouter(services, db, m, log)

	if err := server.Run(&cfg.Server, router, log); err != nil {
		log.Error().Err(err).Msg("Server failed")
		return err
	}
	return nil
}

// migrateCommand runs "migrate up", "migrate down" or "migrate goto N"
func migrateCommand(db *database.DB, path string, args []string) error {
	if args[0] != "migrate" || len(args) < 2 {
		flag.Usage()
		return fmt.Errorf("unknown command %v", args)
	}

	switch args[1] {
	case "up":
		return db.RunMigrations(path)
	case "down":
		return db.MigrateDown(path)
	case "goto":
		if len(args) < 3 {
			return fmt.Errorf("migrate goto requires a version")
		}
		version, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[2], err)
		}
		return db.MigrateToVersion(path, uint(version))
	default:
		flag.Usage()
		return fmt.Errorf("unknown migrate action %q", args[1])
	}
}
