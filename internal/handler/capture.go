package handler

import (
	"fmt"
	"time"

	"github.com/behaviormetrics/capture-api/internal/errs"
	"github.com/behaviormetrics/capture-api/internal/model"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/service"
	"github.com/labstack/echo/v4"
)

// invalidJSONCode is the error code for malformed JSON sub-fields, so
// clients can distinguish a bad structured value from other 400s.
const invalidJSONCode = "CAPTURE_INVALID_JSON"

// CaptureHandler serves capture submission, the stop acknowledgment,
// and retrieval.
type CaptureHandler struct {
	base     Handler
	services *service.Services
}

// NewCaptureHandler constructs a CaptureHandler.
func NewCaptureHandler(s *server.Server, services *service.Services) *CaptureHandler {
	return &CaptureHandler{
		base:     NewHandler(s),
		services: services,
	}
}

// SubmitCaptureRequest is the payload for POST /api/users/:user_id/data_capture.
//
// Latitude and longitude are pointers so that "missing" and "zero" are
// distinguishable; zero is a valid coordinate. The two structured
// fields arrive as JSON-encoded strings and are parsed in the handler.
type SubmitCaptureRequest struct {
	UserID int64 `param:"user_id" json:"-"`

	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	ISP       string   `json:"isp" validate:"required"`
	OS        string   `json:"os" validate:"required"`

	KeystrokeDynamics        string `json:"keystroke_dynamics"`
	MouseMovementPatterns    string `json:"mouse_movement_patterns"`
	TouchInteractionPatterns string `json:"touch_interaction_patterns"`
	SensorData               string `json:"sensor_data"`
}

func (r *SubmitCaptureRequest) Validate() error {
	return validate.Struct(r)
}

// UserScopedRequest is the payload for the path-only capture routes
// (stop and retrieval).
type UserScopedRequest struct {
	UserID int64 `param:"user_id" json:"-"`
}

func (r *UserScopedRequest) Validate() error {
	return validate.Struct(r)
}

// CaptureResponse serializes one stored capture. Absent structured
// fields serialize as null.
type CaptureResponse struct {
	ID                       int64          `json:"id"`
	UserID                   int64          `json:"user_id"`
	Latitude                 float64        `json:"latitude"`
	Longitude                float64        `json:"longitude"`
	ISP                      string         `json:"isp"`
	OS                       string         `json:"os"`
	KeystrokeDynamics        string         `json:"keystroke_dynamics"`
	MouseMovementPatterns    string         `json:"mouse_movement_patterns"`
	TouchInteractionPatterns model.JSONText `json:"touch_interaction_patterns"`
	SensorData               model.JSONText `json:"sensor_data"`
	CreatedAt                string         `json:"created_at"`
}

// StopResponse acknowledges a stop request.
type StopResponse struct {
	Message string `json:"message"`
}

// Submit handles POST /api/users/:user_id/data_capture.
//
// The touch and sensor fields are decoded from their JSON-string form
// here; malformed input is surfaced as a 400 with a field error and
// nothing is stored.
func (h *CaptureHandler) Submit(c echo.Context, req *SubmitCaptureRequest) (*CaptureResponse, error) {
	touch, err := parseJSONField("touch_interaction_patterns", req.TouchInteractionPatterns)
	if err != nil {
		return nil, err
	}
	sensor, err := parseJSONField("sensor_data", req.SensorData)
	if err != nil {
		return nil, err
	}

	capture := &model.Capture{
		Latitude:                 *req.Latitude,
		Longitude:                *req.Longitude,
		ISP:                      req.ISP,
		OS:                       req.OS,
		KeystrokeDynamics:        req.KeystrokeDynamics,
		MouseMovementPatterns:    req.MouseMovementPatterns,
		TouchInteractionPatterns: touch,
		SensorData:               sensor,
	}

	capture, err = h.services.Capture.Submit(c.Request().Context(), req.UserID, capture)
	if err != nil {
		return nil, err
	}

	return newCaptureResponse(capture), nil
}

// Stop handles POST /api/users/:user_id/stop_data_capture.
func (h *CaptureHandler) Stop(c echo.Context, req *UserScopedRequest) (*StopResponse, error) {
	username, err := h.services.Capture.Stop(c.Request().Context(), req.UserID)
	if err != nil {
		return nil, err
	}

	return &StopResponse{
		Message: fmt.Sprintf("Data capture stopped for user %s", username),
	}, nil
}

// List handles GET /api/users/:user_id/data.
func (h *CaptureHandler) List(c echo.Context, req *UserScopedRequest) ([]CaptureResponse, error) {
	captures, err := h.services.Capture.List(c.Request().Context(), req.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]CaptureResponse, 0, len(captures))
	for i := range captures {
		responses = append(responses, *newCaptureResponse(&captures[i]))
	}
	return responses, nil
}

func parseJSONField(field, raw string) (model.JSONText, error) {
	value, err := model.ParseJSONText(raw)
	if err != nil {
		code := invalidJSONCode
		fieldErrors := []errs.FieldError{{Field: field, Error: "must be valid JSON"}}
		return model.JSONText{}, errs.NewBadRequestError(
			fmt.Sprintf("The %s field is not valid JSON", field),
			true, &code, fieldErrors, nil,
		)
	}
	return value, nil
}

func newCaptureResponse(capture *model.Capture) *CaptureResponse {
	return &CaptureResponse{
		ID:                       capture.ID,
		UserID:                   capture.UserID,
		Latitude:                 capture.Latitude,
		Longitude:                capture.Longitude,
		ISP:                      capture.ISP,
		OS:                       capture.OS,
		KeystrokeDynamics:        capture.KeystrokeDynamics,
		MouseMovementPatterns:    capture.MouseMovementPatterns,
		TouchInteractionPatterns: capture.TouchInteractionPatterns,
		SensorData:               capture.SensorData,
		CreatedAt:                capture.CreatedAt.Format(time.RFC3339),
	}
}
