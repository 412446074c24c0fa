package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/services"
)

// newTestService returns a service over the built-in fixtures with no delays
func newTestService(exposePasscode bool) *services.VerificationService {
	return services.NewVerificationService(services.NewMockCredentialStore(), services.VerificationOptions{
		ExposePasscode: exposePasscode,
		Clock:          func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) },
	}, logging.Logger)
}

// setupTestRouter registers every route on a fresh gin engine
func setupTestRouter(service *services.VerificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	verification := NewVerificationHandlers(service, logging.Logger)
	health := NewHealthHandlers(service, "1.0.0-test")

	v1 := router.Group("/v1")
	v1.GET("/health", health.HealthCheck)
	v1.POST("/send-challenge", verification.SendChallenge)
	v1.POST("/verify-challenge", verification.VerifyChallenge)
	v1.POST("/verify-tax-id", verification.VerifyTaxID)
	v1.POST("/submit-registration", verification.SubmitRegistration)

	return router
}

// postJSON sends body to path and returns the recorded response
func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals the recorded body into out
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}
