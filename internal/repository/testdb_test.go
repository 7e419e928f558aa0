package repository_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/behaviormetrics/capture-api/internal/config"
	"github.com/behaviormetrics/capture-api/internal/database"
	"github.com/rs/zerolog"
)

// setupTestDB opens a fresh in-memory SQLite database with the schema
// bootstrapped. Each test gets its own named shared-cache database so
// tests cannot see each other's rows.
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Path:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			BusyTimeoutMS: 500,
		},
	}

	log := zerolog.Nop()
	db, err := database.New(cfg, &log)
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
