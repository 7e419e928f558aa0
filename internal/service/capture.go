package service

import (
	"context"
	"errors"
	"time"

	"github.com/behaviormetrics/capture-api/internal/errs"
	"github.com/behaviormetrics/capture-api/internal/model"
	"github.com/behaviormetrics/capture-api/internal/repository"
	"github.com/behaviormetrics/capture-api/internal/server"
)

// CaptureService implements telemetry submission, the stop
// acknowledgment, and retrieval.
type CaptureService struct {
	server   *server.Server
	users    repository.UserRepository
	captures repository.CaptureRepository
}

// NewCaptureService constructs a CaptureService.
func NewCaptureService(s *server.Server, users repository.UserRepository, captures repository.CaptureRepository) *CaptureService {
	return &CaptureService{
		server:   s,
		users:    users,
		captures: captures,
	}
}

// userNotFound is the 404 returned whenever a path-bound user ID does
// not resolve to an existing user.
func userNotFound() *errs.HTTPError {
	code := "USER_NOT_FOUND"
	return errs.NewNotFoundError("User not found", true, &code)
}

// Submit persists one capture for the given user.
//
// The capture's JSON sub-fields have already been decoded at the edge;
// Submit verifies the owner exists (404 otherwise) and stamps the row
// with the current UTC time.
func (s *CaptureService) Submit(ctx context.Context, userID int64, capture *model.Capture) (*model.Capture, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, err
	}

	capture.UserID = user.ID
	capture.CreatedAt = time.Now().UTC()

	capture, err = s.captures.Create(ctx, capture)
	if err != nil {
		return nil, err
	}

	s.server.Logger.Debug().
		Int64("user_id", user.ID).
		Int64("capture_id", capture.ID).
		Msg("capture stored")

	return capture, nil
}

// Stop acknowledges a stop-capture request for the given user.
//
// It mutates nothing: no capture-session state exists anywhere in the
// system, so this is a placeholder acknowledgment that only verifies
// the user and returns their username for the confirmation message.
func (s *CaptureService) Stop(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", userNotFound()
		}
		return "", err
	}

	return user.Username, nil
}

// List returns every capture owned by the given user, in storage
// order. Unknown users get a 404; a user with no captures gets an
// empty list.
func (s *CaptureService) List(ctx context.Context, userID int64) ([]model.Capture, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, userNotFound()
		}
		return nil, err
	}

	return s.captures.ListByUser(ctx, user.ID)
}
