package service

import (
	"fmt"
	"time"

	"github.com/behaviormetrics/capture-api/internal/repository"
	"github.com/behaviormetrics/capture-api/internal/server"
)

// Services is a container that groups all business-logic services.
type Services struct {
	Auth    *AuthService
	Capture *CaptureService
}

// NewServices constructs the service container.
//
// Registration timestamps use the configured local zone, so an
// unloadable zone name is a startup error.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	loc, err := time.LoadLocation(s.Config.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", s.Config.Server.Timezone, err)
	}

	return &Services{
		Auth:    NewAuthService(s, repos.Users, loc),
		Capture: NewCaptureService(s, repos.Users, repos.Captures),
	}, nil
}
