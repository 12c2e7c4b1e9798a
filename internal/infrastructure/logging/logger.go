package logging

import (
	"os"
	"strings"

	"log/slog"

	"github.com/rs/zerolog"
)

// New creates the application logger. Format "console" gives human
// readable output for local development; anything else logs JSON.
func New(level, format string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(level))

	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return logger
}

// SetupSlog points the default slog logger at the same level so
// packages logging through log/slog agree with the zerolog output.
func SetupSlog(level string) {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
