package service_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/behaviormetrics/capture-api/internal/config"
	"github.com/behaviormetrics/capture-api/internal/repository"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/service"
	"github.com/rs/zerolog"
)

// setupServices builds the full server + repository + service stack
// over a fresh in-memory database.
func setupServices(t *testing.T, mutate func(cfg *config.Config)) *service.Services {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:     "0",
			Timezone: "UTC",
		},
		Database: config.DatabaseConfig{
			Path:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			BusyTimeoutMS: 500,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	log := zerolog.Nop()
	s, err := server.New(cfg, &log)
	if err != nil {
		t.Fatalf("could not initialize server: %v", err)
	}
	t.Cleanup(func() { _ = s.DB.Close() })

	services, err := service.NewServices(s, repository.NewRepositories(s))
	if err != nil {
		t.Fatalf("could not initialize services: %v", err)
	}

	return services
}
