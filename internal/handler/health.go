package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes system endpoints: the health check used by
// monitors and the HTML banner on the root path.
type HealthHandler struct {
	base Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{base: NewHandler(s)}
}

// healthPingTimeout bounds the database ping in the health check.
const healthPingTimeout = 2 * time.Second

// CheckHealth handles GET /status. It pings the database and reports
// 200 when reachable, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	if err := h.base.server.DB.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "down",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "up",
	})
}

// Banner handles GET /.
func (h *HealthHandler) Banner(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Capture API</h1>")
}
