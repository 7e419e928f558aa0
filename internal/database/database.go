// Package database contains the logic for opening and bootstrapping
// the SQLite storage.
//
// It handles:
//   - building a DSN from config (busy timeout, foreign key pragma)
//   - opening the database/sql handle via the sqlite3 driver
//   - creating the schema on first open (no migrations)
//   - pinging with a timeout so startup fails fast
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/behaviormetrics/capture-api/internal/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Database wraps the sql.DB handle and a logger for lifecycle logs.
type Database struct {
	DB  *sql.DB
	log *zerolog.Logger
}

// DatabasePingTimeout is how many seconds to wait for the initial ping
// before considering the database unreachable.
const DatabasePingTimeout = 10

// Schema is executed on every open. CREATE TABLE IF NOT EXISTS keeps it
// idempotent; there is no migration machinery.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT    NOT NULL UNIQUE,
	password   TEXT    NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS data_captures (
	id                         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id                    INTEGER NOT NULL REFERENCES users(id),
	latitude                   REAL    NOT NULL,
	longitude                  REAL    NOT NULL,
	isp                        TEXT    NOT NULL,
	os                         TEXT    NOT NULL,
	keystroke_dynamics         TEXT    NOT NULL DEFAULT '',
	mouse_movement_patterns    TEXT    NOT NULL DEFAULT '',
	touch_interaction_patterns TEXT,
	sensor_data                TEXT,
	created_at                 DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_data_captures_user_id ON data_captures(user_id);
`

// New opens the SQLite database, bootstraps the schema, and verifies
// connectivity.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	dsn := buildDSN(&cfg.Database)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; serializing through one
	// connection avoids SQLITE_BUSY under concurrent requests while
	// the busy timeout covers the rest.
	db.SetMaxOpenConns(1)

	database := &Database{
		DB:  db,
		log: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info().Str("dsn", dsn).Msg("connected to the database")

	return database, nil
}

// buildDSN appends the driver pragmas to the configured path.
//
// Path may already be a file: DSN (in-memory databases in tests), in
// which case parameters are appended with the right separator.
func buildDSN(cfg *config.DatabaseConfig) string {
	params := fmt.Sprintf("_busy_timeout=%d&_foreign_keys=on", cfg.BusyTimeoutMS)

	sep := "?"
	if strings.Contains(cfg.Path, "?") {
		sep = "&"
	}
	return cfg.Path + sep + params
}

// Close closes the database handle.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")
	return db.DB.Close()
}
