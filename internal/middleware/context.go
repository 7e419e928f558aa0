package middleware

import (
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// loggerKey is the Echo context key under which the request-scoped
// logger is stored.
const loggerKey = "ctx_logger"

// ContextEnhancer attaches a request-scoped logger to every request.
//
// The logger carries correlation fields (request_id, method, path,
// client ip) so handlers and downstream middleware log consistently
// without re-deriving them.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer constructs a ContextEnhancer.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// Enhance returns the middleware. It must run after RequestID so the
// correlation ID is available.
func (ce *ContextEnhancer) Enhance() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			builder := ce.server.Logger.With().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Str("ip", c.RealIP())

			if requestID := GetRequestID(c); requestID != "" {
				builder = builder.Str("request_id", requestID)
			}

			logger := builder.Logger()
			c.Set(loggerKey, &logger)

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Echo context.
// When the enhancer did not run (e.g. in tests hitting a handler
// directly) it falls back to a silent default logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(loggerKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}
