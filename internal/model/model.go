// Package model holds the plain data structs persisted by the service.
//
// Mapping to and from database rows is done explicitly in the
// repository layer.
package model
