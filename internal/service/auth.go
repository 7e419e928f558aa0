package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/behaviormetrics/capture-api/internal/errs"
	"github.com/behaviormetrics/capture-api/internal/model"
	"github.com/behaviormetrics/capture-api/internal/repository"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// AuthService implements registration and login.
//
// Credential handling follows the documented API contract: passwords
// are stored and compared verbatim, and login issues no token or
// session. Hashing is pluggable via config (Auth.HashPasswords) for
// deployments that opt out of the verbatim contract; see DESIGN.md.
type AuthService struct {
	server *server.Server
	users  repository.UserRepository

	// loc is the local zone for registration timestamps. Capture
	// timestamps are UTC; the split is part of the contract.
	loc *time.Location
}

// NewAuthService constructs an AuthService.
func NewAuthService(s *server.Server, users repository.UserRepository, loc *time.Location) *AuthService {
	return &AuthService{
		server: s,
		users:  users,
		loc:    loc,
	}
}

// Register creates a new user.
//
// Contract:
//   - 409 if the username is already taken (checked first, before the
//     password policy)
//   - 400 if the password fails the policy
//   - otherwise persists the user stamped with the local-zone time and
//     returns it
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil, errs.NewConflictError("Username already exists", true, nil)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if !validation.ValidPassword(password) {
		return nil, errs.NewBadRequestError(validation.PasswordPolicyMessage, true, nil, nil, nil)
	}

	stored := password
	if s.server.Config.Auth.HashPasswords {
		stored, err = s.hashPassword(password)
		if err != nil {
			return nil, err
		}
	}

	user := &model.User{
		Username:  username,
		Password:  stored,
		CreatedAt: time.Now().In(s.loc),
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		// A concurrent registration of the same username lands
		// here as a unique-constraint violation; the global error
		// handler maps it to the same 409.
		return nil, err
	}

	s.server.Logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user registered")

	return user, nil
}

// Login authenticates a user by exact credential match.
//
// On success it returns the user; no token, cookie, or session state
// is issued. On any mismatch it returns a 401 without distinguishing
// unknown username from wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)

	if s.server.Config.Auth.HashPasswords {
		user, err = s.users.GetByUsername(ctx, username)
		if err == nil {
			err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
		}
	} else {
		user, err = s.users.GetByCredentials(ctx, username, password)
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errs.NewUnauthorizedError("Invalid credentials", true)
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	cost := s.server.Config.Auth.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
