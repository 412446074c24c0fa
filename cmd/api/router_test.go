package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udyam-portal/app-udyam/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                  8080,
		Environment:           "test",
		Version:               "9.9.9",
		ShutdownTimeout:       time.Second,
		AllowedOrigins:        []string{"http://localhost:3000"},
		ExposeDebugPasscode:   true,
		SimulatedDelayEnabled: false,
		SendChallengeDelay:    time.Second,
	}
}

func newTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(cfg, newVerificationService(cfg))
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(testConfig())

	req, _ := http.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"9.9.9"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_SendChallengeWithoutDelay(t *testing.T) {
	router := newTestRouter(testConfig())

	start := time.Now()
	req, _ := http.NewRequest(http.MethodPost, "/v1/send-challenge",
		bytes.NewBufferString(`{"identity_number":"123456789012","phone_number":"9876543210"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"debug_passcode":"123456"`)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(testConfig())

	req, _ := http.NewRequest(http.MethodOptions, "/v1/send-challenge", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	router := newTestRouter(testConfig())

	req, _ := http.NewRequest(http.MethodOptions, "/v1/send-challenge", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(testConfig())

	// generate at least one observation
	req, _ := http.NewRequest(http.MethodGet, "/v1/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "app_udyam_request_duration_seconds"))
}

func TestCorsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"*"}
	assert.True(t, corsConfig(cfg).AllowAllOrigins)

	cfg.AllowedOrigins = []string{"http://a.test", "http://b.test"}
	c := corsConfig(cfg)
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowOrigins)
}

func TestNewVerificationService_Delays(t *testing.T) {
	cfg := testConfig()
	cfg.ExposeDebugPasscode = false

	service := newVerificationService(cfg)
	for _, c := range service.Credentials().Identity {
		assert.Empty(t, c.Passcode)
	}
}
