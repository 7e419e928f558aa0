// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch and persist data,
// abstracting SQL logic away from the service layer.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Services translate it into the appropriate 404 for clients.
var ErrNotFound = errors.New("record not found")
