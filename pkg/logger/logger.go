package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options controls level and output format
type Options struct {
	Level  string
	Format string // "json" or "pretty"
}

// New creates a new zerolog logger with structured output for the named service
func New(service string, opts Options) zerolog.Logger {
	return NewWithWriter(os.Stdout, service, opts)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(out io.Writer, service string, opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	// Use pretty console output in development
	if opts.Format == "pretty" || os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(ParseLevel(opts.Level)).
			With().
			Timestamp().
			Caller().
			Str("service", service).
			Logger()
	}

	// JSON output for production
	return zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
