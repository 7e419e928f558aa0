// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/behaviormetrics/capture-api/internal/handler"
	"github.com/behaviormetrics/capture-api/internal/middleware"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/labstack/echo/v4"
)

// New assembles the Echo instance: global middleware stack, the error
// handler funnel, system routes, and the /api group.
func New(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: RequestID must precede the context enhancer so
	// the request-scoped logger carries the correlation ID.
	e.Use(
		middleware.RequestID(),
		mw.ContextEnhancer.Enhance(),
		mw.Global.CORS(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Metrics.Observe(),
	)

	registerSystemRoutes(e, s, h, mw)
	registerAPIRoutes(e, h)

	return e
}
