package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// CredentialSource supplies the credential listing shown by the health check
type CredentialSource interface {
	Credentials() models.CredentialSnapshot
}

// Endpoints lists the registration routes for the health check
var Endpoints = map[string]string{
	"POST /v1/send-challenge":      "Send passcode to the phone number",
	"POST /v1/verify-challenge":    "Verify passcode for the identity number",
	"POST /v1/verify-tax-id":       "Verify tax ID details",
	"POST /v1/submit-registration": "Submit complete registration",
}

// HealthHandlers serves the health check
type HealthHandlers struct {
	credentials CredentialSource
	version     string
	clock       func() time.Time
}

// NewHealthHandlers creates a new HealthHandlers instance
func NewHealthHandlers(credentials CredentialSource, version string) *HealthHandlers {
	return &HealthHandlers{
		credentials: credentials,
		version:     version,
		clock:       time.Now,
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service status, version, the available endpoints and the mock credentials accepted by this instance. Passcodes are listed only when debug passcodes are enabled.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "health_check"),
		attribute.String("service", "health"),
	)

	endpoints := make(map[string]string, len(Endpoints))
	for route, description := range Endpoints {
		endpoints[route] = description
	}

	health := HealthResponse{
		Status:          "healthy",
		Timestamp:       h.clock().UTC(),
		Version:         h.version,
		Endpoints:       endpoints,
		MockCredentials: h.credentials.Credentials(),
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "health")
	c.JSON(http.StatusOK, health)
	responseSpan.End()
}
