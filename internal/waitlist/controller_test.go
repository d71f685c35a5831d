package waitlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"waitly/internal/shared/config"
	"waitly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, adminToken string) (*gin.Engine, *serviceFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := newServiceFixture(10)
	cfg := &config.Config{
		Admin: config.AdminConfig{Token: adminToken},
	}

	engine := gin.New()
	api := engine.Group("/api")
	SetupWaitlistRoutes(api, NewController(f.service), cfg)

	return engine, f
}

func doRequest(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStatusEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	w := doRequest(engine, http.MethodGet, "/api/waitlist/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	for _, field := range []string{
		"total", "weekly_cap", "week_key", "current_week_count",
		"remaining_this_week", "next_open_iso", "next_open_human",
	} {
		assert.Contains(t, body, field)
	}
	assert.Equal(t, float64(10), body["weekly_cap"])
	assert.Equal(t, "2026-W36", body["week_key"])
}

func TestEnqueueEndpointAccept(t *testing.T) {
	engine, _ := newTestEngine(t, "")

	w := doRequest(engine, http.MethodPost, "/api/waitlist/enqueue", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["accepted"])
	assert.Equal(t, float64(1), body["position"])
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(9), body["remaining_this_week"])
	assert.NotContains(t, body, "reason")
	assert.NotContains(t, body, "current_week_count")
}

func TestEnqueueEndpointReject(t *testing.T) {
	engine, f := newTestEngine(t, "")
	require.True(t, f.service.AdminSetCap(context.Background(), 1))

	require.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/waitlist/enqueue", "", nil).Code)
	w := doRequest(engine, http.MethodPost, "/api/waitlist/enqueue", "", nil)

	// Capacity rejection is a business outcome, not an HTTP error
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["accepted"])
	assert.Equal(t, "weekly_cap_reached", body["reason"])
	assert.Equal(t, float64(1), body["current_week_count"])
	assert.Equal(t, float64(0), body["remaining_this_week"])
	assert.NotContains(t, body, "position")
}

func TestAdminForbiddenWithoutToken(t *testing.T) {
	engine, _ := newTestEngine(t, "sekrit")

	for _, path := range []string{"/api/admin/reset", "/api/admin/cap"} {
		w := doRequest(engine, http.MethodPost, path, `{"cap": 5}`, nil)

		require.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, "Forbidden", decodeBody(t, w)["error"], path)
	}
}

func TestAdminForbiddenWithWrongToken(t *testing.T) {
	engine, _ := newTestEngine(t, "sekrit")

	w := doRequest(engine, http.MethodPost, "/api/admin/cap", `{"cap": 5}`,
		map[string]string{middleware.AdminTokenHeader: "guess"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminFailsClosedWithoutSecret(t *testing.T) {
	// No configured secret means no token can ever be valid
	engine, _ := newTestEngine(t, "")

	w := doRequest(engine, http.MethodPost, "/api/admin/cap", `{"cap": 5}`,
		map[string]string{middleware.AdminTokenHeader: "anything"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminResetEndpoint(t *testing.T) {
	engine, f := newTestEngine(t, "sekrit")
	require.True(t, f.service.Enqueue(context.Background()).Accepted)

	w := doRequest(engine, http.MethodPost, "/api/admin/reset", `{"total": 5, "cap": 3}`,
		map[string]string{middleware.AdminTokenHeader: "sekrit"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])

	state, ok := body["state"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(5), state["total"])
	assert.Equal(t, float64(3), state["cap"])
	assert.Empty(t, state["weeks"])
}

func TestAdminResetEmptyBody(t *testing.T) {
	engine, f := newTestEngine(t, "sekrit")
	require.True(t, f.service.Enqueue(context.Background()).Accepted)

	w := doRequest(engine, http.MethodPost, "/api/admin/reset", "",
		map[string]string{middleware.AdminTokenHeader: "sekrit"})

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeBody(t, w)["state"].(map[string]interface{})
	assert.Equal(t, float64(0), state["total"])
	assert.Equal(t, float64(10), state["cap"])
}

func TestAdminResetMalformedBodyUsesDefaults(t *testing.T) {
	engine, _ := newTestEngine(t, "sekrit")

	w := doRequest(engine, http.MethodPost, "/api/admin/reset", `{"total": `,
		map[string]string{middleware.AdminTokenHeader: "sekrit"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
}

func TestAdminResetInvalidCapIgnored(t *testing.T) {
	engine, _ := newTestEngine(t, "sekrit")

	w := doRequest(engine, http.MethodPost, "/api/admin/reset", `{"total": 5, "cap": "abc"}`,
		map[string]string{middleware.AdminTokenHeader: "sekrit"})

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeBody(t, w)["state"].(map[string]interface{})
	assert.Equal(t, float64(5), state["total"])
	assert.Equal(t, float64(10), state["cap"])
}

func TestAdminSetCapCoercesNumericString(t *testing.T) {
	engine, f := newTestEngine(t, "sekrit")

	w := doRequest(engine, http.MethodPost, "/api/admin/cap", `{"cap": "4"}`,
		map[string]string{middleware.AdminTokenHeader: "sekrit"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, f.service.Status(context.Background()).WeeklyCap)
}

func TestAdminSetCapEndpoint(t *testing.T) {
	engine, f := newTestEngine(t, "sekrit")

	w := doRequest(engine, http.MethodPost, "/api/admin/cap", `{"cap": 3}`,
		map[string]string{middleware.AdminTokenHeader: "sekrit"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(3), body["cap"])
	assert.Equal(t, 3, f.service.Status(context.Background()).WeeklyCap)
}

func TestAdminSetCapInvalid(t *testing.T) {
	engine, f := newTestEngine(t, "sekrit")

	for _, payload := range []string{`{"cap": 0}`, `{"cap": -1}`, `{}`, ``, `{"cap": "six"}`} {
		w := doRequest(engine, http.MethodPost, "/api/admin/cap", payload,
			map[string]string{middleware.AdminTokenHeader: "sekrit"})

		require.Equal(t, http.StatusBadRequest, w.Code, payload)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["ok"], payload)
		assert.Equal(t, "invalid_cap", body["error"], payload)
	}

	// The configured cap is untouched by any of the rejected payloads
	assert.Equal(t, 10, f.service.Status(context.Background()).WeeklyCap)
}
