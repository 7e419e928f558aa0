package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ErrMalformedJSON reports that a client-supplied JSON sub-field could
// not be parsed. Callers match it with errors.Is to distinguish a bad
// payload from a storage failure.
var ErrMalformedJSON = fmt.Errorf("malformed JSON value")

// JSONText is an optional structured JSON value.
//
// Clients submit these fields as JSON-encoded strings; parsing happens
// once at the edge via ParseJSONText, so an absent value (Valid=false)
// and a malformed value (distinct parse error) are never conflated.
// The zero value is absent.
type JSONText struct {
	Valid bool
	Raw   json.RawMessage
}

// ParseJSONText parses a JSON-encoded string into a JSONText.
//
// An empty string yields an absent value. Malformed input returns an
// error wrapping ErrMalformedJSON; it is never stored.
func ParseJSONText(s string) (JSONText, error) {
	if s == "" {
		return JSONText{}, nil
	}
	if !json.Valid([]byte(s)) {
		return JSONText{}, fmt.Errorf("%w: %q", ErrMalformedJSON, s)
	}
	return JSONText{Valid: true, Raw: json.RawMessage(s)}, nil
}

// MarshalJSON serializes the contained value, or null when absent.
func (j JSONText) MarshalJSON() ([]byte, error) {
	if !j.Valid {
		return []byte("null"), nil
	}
	return j.Raw, nil
}

// UnmarshalJSON accepts a structured JSON value directly; null means absent.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = JSONText{}
		return nil
	}
	j.Valid = true
	j.Raw = append(j.Raw[:0], data...)
	return nil
}

// Value implements driver.Valuer: absent values store as NULL,
// present values as their serialized JSON text.
func (j JSONText) Value() (driver.Value, error) {
	if !j.Valid {
		return nil, nil
	}
	return string(j.Raw), nil
}

// Scan implements sql.Scanner for TEXT/NULL columns.
func (j *JSONText) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = JSONText{}
		return nil
	case string:
		*j = JSONText{Valid: true, Raw: json.RawMessage(v)}
		return nil
	case []byte:
		*j = JSONText{Valid: true, Raw: append(json.RawMessage(nil), v...)}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONText", src)
	}
}
