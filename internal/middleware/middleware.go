// Package middleware contains the HTTP middleware stack.
//
// It provides the global middlewares (CORS, request logging, panic
// recovery, secure headers, the global error handler), request-ID
// correlation, the request-scoped logger, and Prometheus metrics.
package middleware
