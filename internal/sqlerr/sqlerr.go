// Package sqlerr handles database driver errors.
//
// It parses cryptic error codes from the SQLite driver and converts
// them into user-friendly HTTP errors (e.g. a unique-constraint
// violation becomes a 409 Conflict with a readable message).
package sqlerr
