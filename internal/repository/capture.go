package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/behaviormetrics/capture-api/internal/model"
)

// CaptureRepository persists and lists telemetry samples.
type CaptureRepository interface {
	// Create inserts a new capture row and fills in the generated ID.
	Create(ctx context.Context, capture *model.Capture) (*model.Capture, error)

	// ListByUser returns every capture owned by userID in insertion
	// order. A user with no captures yields an empty slice, not nil.
	ListByUser(ctx context.Context, userID int64) ([]model.Capture, error)
}

// SQLiteCaptureRepository implements CaptureRepository over database/sql.
type SQLiteCaptureRepository struct {
	db *sql.DB
}

// NewSQLiteCaptureRepository constructs a CaptureRepository backed by db.
func NewSQLiteCaptureRepository(db *sql.DB) *SQLiteCaptureRepository {
	return &SQLiteCaptureRepository{db: db}
}

func (r *SQLiteCaptureRepository) Create(ctx context.Context, capture *model.Capture) (*model.Capture, error) {
	query := `INSERT INTO data_captures (
	            user_id, latitude, longitude, isp, os,
	            keystroke_dynamics, mouse_movement_patterns,
	            touch_interaction_patterns, sensor_data, created_at
	          ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		capture.UserID,
		capture.Latitude,
		capture.Longitude,
		capture.ISP,
		capture.OS,
		capture.KeystrokeDynamics,
		capture.MouseMovementPatterns,
		capture.TouchInteractionPatterns,
		capture.SensorData,
		capture.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting capture: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted capture id: %w", err)
	}
	capture.ID = id

	return capture, nil
}

func (r *SQLiteCaptureRepository) ListByUser(ctx context.Context, userID int64) ([]model.Capture, error) {
	query := `SELECT id, user_id, latitude, longitude, isp, os,
	                 keystroke_dynamics, mouse_movement_patterns,
	                 touch_interaction_patterns, sensor_data, created_at
	          FROM data_captures
	          WHERE user_id = ?
	          ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying captures: %w", err)
	}
	defer rows.Close()

	captures := []model.Capture{}
	for rows.Next() {
		var c model.Capture
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Latitude,
			&c.Longitude,
			&c.ISP,
			&c.OS,
			&c.KeystrokeDynamics,
			&c.MouseMovementPatterns,
			&c.TouchInteractionPatterns,
			&c.SensorData,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning capture row: %w", err)
		}
		captures = append(captures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating capture rows: %w", err)
	}

	return captures, nil
}
