package repository

import (
	"github.com/behaviormetrics/capture-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users    UserRepository
	Captures CaptureRepository
}

// NewRepositories constructs the repository container from the shared
// application resources (the database handle lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:    NewSQLiteUserRepository(s.DB.DB),
		Captures: NewSQLiteCaptureRepository(s.DB.DB),
	}
}
