// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules (like required
// fields) defined in struct tags, extracts validation errors into a
// format the client can understand, and hosts the password policy
// checker used at registration.
package validation
