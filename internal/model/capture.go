package model

import "time"

// Capture is a single telemetry sample owned by a user.
//
// KeystrokeDynamics and MouseMovementPatterns are free-form strings and
// default to "" when the client omits them. TouchInteractionPatterns and
// SensorData are structured JSON values that may be absent entirely.
// CreatedAt is stamped once at submission in UTC. Captures are immutable
// and never deleted.
type Capture struct {
	ID                       int64     `db:"id"`
	UserID                   int64     `db:"user_id"`
	Latitude                 float64   `db:"latitude"`
	Longitude                float64   `db:"longitude"`
	ISP                      string    `db:"isp"`
	OS                       string    `db:"os"`
	KeystrokeDynamics        string    `db:"keystroke_dynamics"`
	MouseMovementPatterns    string    `db:"mouse_movement_patterns"`
	TouchInteractionPatterns JSONText  `db:"touch_interaction_patterns"`
	SensorData               JSONText  `db:"sensor_data"`
	CreatedAt                time.Time `db:"created_at"`
}
