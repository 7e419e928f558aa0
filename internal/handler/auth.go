package handler

import (
	"time"

	"github.com/behaviormetrics/capture-api/internal/model"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate runs the struct-tag rules on request payloads.
var validate = validator.New()

// AuthHandler serves registration and login.
type AuthHandler struct {
	base     Handler
	services *service.Services
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, services *service.Services) *AuthHandler {
	return &AuthHandler{
		base:     NewHandler(s),
		services: services,
	}
}

// CredentialsRequest is the payload for both register and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *CredentialsRequest) Validate() error {
	return validate.Struct(r)
}

// UserResponse is the registration response.
//
// Password echoes the stored credential verbatim, part of the API
// contract (or the hash when hashing is enabled).
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse is the login response. No token or session is issued.
type LoginResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c echo.Context, req *CredentialsRequest) (*UserResponse, error) {
	user, err := h.services.Auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return newUserResponse(user), nil
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c echo.Context, req *CredentialsRequest) (*LoginResponse, error) {
	user, err := h.services.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

func newUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
