package router

import (
	"net/http"

	"github.com/behaviormetrics/capture-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerAPIRoutes registers the /api business endpoints.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers) {
	api := e.Group("/api")

	api.POST("/register", handler.Handle(h.Auth.Register, http.StatusCreated))
	api.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK))

	users := api.Group("/users/:user_id")
	users.POST("/data_capture", handler.Handle(h.Capture.Submit, http.StatusCreated))
	users.POST("/stop_data_capture", handler.Handle(h.Capture.Stop, http.StatusOK))
	users.GET("/data", handler.Handle(h.Capture.List, http.StatusOK))
}
