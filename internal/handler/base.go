package handler

import (
	"time"

	"github.com/behaviormetrics/capture-api/internal/middleware"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it to reach config, logger,
// and database via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct
// only contains a pointer, so copies are cheap and share the Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Handle wraps a typed endpoint function into an echo.HandlerFunc with
// the shared request pipeline: binding, validation, structured timing
// logs, and JSON response writing.
//
// A fresh request payload is allocated per request, so payload types
// are never shared across concurrent requests. Usage:
//
//	api.POST("/register", handler.Handle(h.Auth.Register, http.StatusCreated))
func Handle[Req any, P validation.ValidatablePtr[Req], Res any](
	fn func(c echo.Context, req P) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := P(new(Req))
		return handleRequest(c, req, func(c echo.Context) (any, error) {
			return fn(c, req)
		}, status)
	}
}

// handleRequest is the shared execution pipeline for all handlers.
//
// It centralizes request binding + validation, structured logging with
// request context, timing, and response writing, so endpoint functions
// contain only their own logic.
func handleRequest(
	c echo.Context,
	req validation.Validatable,
	exec func(c echo.Context) (any, error),
	status int,
) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", c.Path()).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", time.Since(validationStart)).
			Msg("request validation failed")
		return err
	}
	validationDuration := time.Since(validationStart)

	result, err := exec(c)
	handlerDuration := time.Since(start) - validationDuration
	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return c.JSON(status, result)
}
