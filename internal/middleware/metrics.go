package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/behaviormetrics/capture-api/internal/errs"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records per-route request metrics and serves the
// Prometheus exposition endpoint.
//
// It carries its own registry so repeated construction (tests) never
// trips duplicate-registration panics on the global default registry.
type MetricsMiddleware struct {
	server   *server.Server
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware constructs the middleware and registers its
// collectors (request counter, duration histogram, Go runtime and
// process collectors).
func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "capture_api",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed, by route, method, and status.",
	}, []string{"route", "method", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "capture_api",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds, by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	registry.MustRegister(
		requests,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsMiddleware{
		server:   s,
		registry: registry,
		requests: requests,
		duration: duration,
	}
}

// Observe returns the middleware that records one observation per
// request. Route labels use the registered route pattern, not the raw
// URL, to keep cardinality bounded.
func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			status := c.Response().Status
			if err != nil {
				// The global error handler writes the final
				// status after this middleware returns;
				// derive it from the error instead.
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError
				switch {
				case errors.As(err, &httpErr):
					status = httpErr.Status
				case errors.As(err, &echoErr):
					status = echoErr.Code
				default:
					status = http.StatusInternalServerError
				}
			}

			m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler returns the /metrics exposition handler for this registry.
func (m *MetricsMiddleware) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
