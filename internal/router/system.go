package router

import (
	"github.com/behaviormetrics/capture-api/internal/handler"
	"github.com/behaviormetrics/capture-api/internal/middleware"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of
// business logic: the root banner, the health check, and the
// Prometheus exposition endpoint when enabled.
func registerSystemRoutes(e *echo.Echo, s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) {
	e.GET("/", h.Health.Banner)
	e.GET("/status", h.Health.CheckHealth)

	if s.Config.Server.Metrics {
		e.GET("/metrics", echo.WrapHandler(mw.Metrics.Handler()))
	}
}
