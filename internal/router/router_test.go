package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/behaviormetrics/capture-api/internal/config"
	"github.com/behaviormetrics/capture-api/internal/handler"
	"github.com/behaviormetrics/capture-api/internal/middleware"
	"github.com/behaviormetrics/capture-api/internal/repository"
	"github.com/behaviormetrics/capture-api/internal/router"
	"github.com/behaviormetrics/capture-api/internal/server"
	"github.com/behaviormetrics/capture-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRouter assembles the whole application over a fresh in-memory
// database and returns the Echo instance requests are served through.
func setupRouter(t *testing.T) *echo.Echo {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:     "0",
			Timezone: "UTC",
			Metrics:  true,
		},
		Database: config.DatabaseConfig{
			Path:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			BusyTimeoutMS: 500,
		},
	}

	log := zerolog.Nop()
	s, err := server.New(cfg, &log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB.Close() })

	services, err := service.NewServices(s, repository.NewRepositories(s))
	require.NoError(t, err)

	return router.New(s, handler.NewHandlers(s, services), middleware.NewMiddlewares(s))
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, e *echo.Echo, username, password string) int64 {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/register",
		fmt.Sprintf(`{"username": %q, "password": %q}`, username, password))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	e := setupRouter(t)

	id := registerUser(t, e, "alice", "Valid1Pass!")

	rec := doJSON(e, http.MethodPost, "/api/login",
		`{"username": "alice", "password": "Valid1Pass!"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		CreatedAt string `json:"createdAt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.CreatedAt)
}

func TestRegisterEchoesStoredPassword(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"username": "bob", "password": "Valid1Pass!"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Valid1Pass!", resp.Password)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	e := setupRouter(t)

	registerUser(t, e, "carol", "Valid1Pass!")

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"username": "carol", "password": "Other1Pass!"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestRegisterWeakPasswords(t *testing.T) {
	e := setupRouter(t)

	for i, password := range []string{"short1!", "alllettersnouppercasenodigit"} {
		rec := doJSON(e, http.MethodPost, "/api/register",
			fmt.Sprintf(`{"username": "weak%d", "password": %q}`, i, password))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "password %q", password)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodPost, "/api/register", `{"username": "norbert"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "password", resp.Errors[0].Field)
}

func TestLoginWrongPassword(t *testing.T) {
	e := setupRouter(t)

	registerUser(t, e, "dave", "Valid1Pass!")

	rec := doJSON(e, http.MethodPost, "/api/login",
		`{"username": "dave", "password": "Wrong1Pass!"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitCapture(t *testing.T) {
	e := setupRouter(t)

	id := registerUser(t, e, "erin", "Valid1Pass!")

	body := `{
		"latitude": 12.97,
		"longitude": 77.59,
		"isp": "Airtel",
		"os": "Android 14",
		"keystroke_dynamics": "120ms avg dwell",
		"touch_interaction_patterns": "{\"taps\": 3}",
		"sensor_data": "{\"accel\": [0.1, 0.2]}"
	}`
	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/api/users/%d/data_capture", id), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID     int64           `json:"id"`
		UserID int64           `json:"user_id"`
		ISP    string          `json:"isp"`
		Touch  json.RawMessage `json:"touch_interaction_patterns"`
		Mouse  string          `json:"mouse_movement_patterns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, id, resp.UserID)
	assert.Equal(t, "Airtel", resp.ISP)
	assert.JSONEq(t, `{"taps": 3}`, string(resp.Touch))
	assert.Equal(t, "", resp.Mouse)
}

func TestSubmitCaptureUnknownUser(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodPost, "/api/users/9999/data_capture",
		`{"latitude": 1, "longitude": 1, "isp": "isp", "os": "os"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitCaptureMalformedJSONField(t *testing.T) {
	e := setupRouter(t)

	id := registerUser(t, e, "frank", "Valid1Pass!")

	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/api/users/%d/data_capture", id),
		`{"latitude": 1, "longitude": 1, "isp": "isp", "os": "os",
		  "touch_interaction_patterns": "{not valid json"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CAPTURE_INVALID_JSON", resp.Code)

	// Nothing was stored.
	listRec := doJSON(e, http.MethodGet, fmt.Sprintf("/api/users/%d/data", id), "")
	require.Equal(t, http.StatusOK, listRec.Code)
	assert.JSONEq(t, `[]`, listRec.Body.String())
}

func TestStopCapture(t *testing.T) {
	e := setupRouter(t)

	id := registerUser(t, e, "grace", "Valid1Pass!")

	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/api/users/%d/stop_data_capture", id), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Data capture stopped for user grace", resp.Message)
}

func TestStopCaptureUnknownUser(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodPost, "/api/users/9999/stop_data_capture", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCapturesLifecycle(t *testing.T) {
	e := setupRouter(t)

	id := registerUser(t, e, "heidi", "Valid1Pass!")

	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/api/users/%d/data", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	submit := doJSON(e, http.MethodPost, fmt.Sprintf("/api/users/%d/data_capture", id),
		`{"latitude": 48.85, "longitude": 2.35, "isp": "Orange", "os": "iOS 18"}`)
	require.Equal(t, http.StatusCreated, submit.Code)

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/users/%d/data", id), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		UserID    int64   `json:"user_id"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		ISP       string  `json:"isp"`
		OS        string  `json:"os"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].UserID)
	assert.Equal(t, 48.85, list[0].Latitude)
	assert.Equal(t, 2.35, list[0].Longitude)
	assert.Equal(t, "Orange", list[0].ISP)
	assert.Equal(t, "iOS 18", list[0].OS)
}

func TestListCapturesUnknownUser(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodGet, "/api/users/9999/data", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBanner(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>")
}

func TestHealth(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestMetricsExposition(t *testing.T) {
	e := setupRouter(t)

	// Generate one observed request first.
	doJSON(e, http.MethodGet, "/", "")

	rec := doJSON(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "capture_api_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	e := setupRouter(t)

	rec := doJSON(e, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	e := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
