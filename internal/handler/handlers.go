package handler

import (
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup receives one wired object.
type Handlers struct {
	Auth    *AuthHandler    // registration and login
	Capture *CaptureHandler // capture submission, stop, retrieval
	Health  *HealthHandler  // health endpoint and the root banner
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(s, services),
		Capture: NewCaptureHandler(s, services),
		Health:  NewHealthHandler(s),
	}
}
