// Package logger configures the application's structured logging.
//
// It builds the zerolog logger used across the app: human-friendly
// console output in the local environment, JSON everywhere else.
package logger

import (
	"os"

	"github.com/behaviormetrics/capture-api/internal/config"
	"github.com/rs/zerolog"
)

// New constructs the application logger from config.
//
// In the "local" env it writes colorized console output at debug
// level; otherwise it emits JSON at info level, suitable for log
// shippers.
func New(cfg *config.Config) *zerolog.Logger {
	var logger zerolog.Logger

	if cfg.Primary.Env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Str("service", "capture-api").
			Str("env", cfg.Primary.Env).
			Logger()
	}

	return &logger
}
