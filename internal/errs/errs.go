// Package errs defines the custom error types returned to API clients.
//
// Every failed request is serialized into the same HTTPError shape
// (code, message, status, optional field-level errors) so clients can
// rely on a single error contract across all endpoints.
package errs
