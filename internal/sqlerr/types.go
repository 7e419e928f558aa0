package sqlerr

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Code classifies database errors into application-level categories.
type Code int

const (
	// Other covers everything not mapped to a specific category.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// Error is the normalized form of a database driver error.
//
// TableName and ColumnName are parsed from the driver message where
// SQLite provides them ("UNIQUE constraint failed: users.username").
type Error struct {
	Code         Code
	DatabaseCode string
	Message      string
	TableName    string
	ColumnName   string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// ErrCode reports the mapped Code for a given error, or Other when the
// error is not a normalized *sqlerr.Error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// MapExtendedCode maps an SQLite extended result code to a Code.
func MapExtendedCode(code sqlite3.ErrNoExtended) Code {
	switch code {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolation
	case sqlite3.ErrConstraintNotNull:
		return NotNullViolation
	case sqlite3.ErrConstraintCheck:
		return CheckViolation
	default:
		return Other
	}
}

// ConvertSQLiteError converts a raw sqlite3.Error into a normalized Error.
func ConvertSQLiteError(src sqlite3.Error) *Error {
	table, column := parseConstraintTarget(src.Error())

	return &Error{
		Code:         MapExtendedCode(src.ExtendedCode),
		DatabaseCode: src.ExtendedCode.Error(),
		Message:      src.Error(),
		TableName:    table,
		ColumnName:   column,
		driverErr:    src,
	}
}

// parseConstraintTarget extracts "table.column" from SQLite constraint
// messages such as:
//
//	UNIQUE constraint failed: users.username
//	NOT NULL constraint failed: data_captures.isp
//
// Foreign-key messages carry no target ("FOREIGN KEY constraint
// failed"), so both results may be empty.
func parseConstraintTarget(msg string) (table, column string) {
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 {
		return "", ""
	}

	target := strings.TrimSpace(msg[idx+2:])
	parts := strings.SplitN(target, ".", 2)
	if len(parts) != 2 || strings.ContainsAny(target, " (") {
		return "", ""
	}
	return parts[0], parts[1]
}
