// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from the handlers, applies the registration, login,
// and capture rules, and calls repository methods to interact with
// the data.
package service
