package handlers

import (
	"time"

	"github.com/udyam-portal/app-udyam/internal/models"
)

// Response messages
const (
	MsgChallengeSent         = "OTP sent successfully"
	MsgChallengeVerified     = "OTP verified successfully"
	MsgTaxIDVerified         = "Tax ID verified successfully"
	MsgRegistrationCompleted = "Registration completed successfully"
	MsgInternalServerError   = "Internal server error"
	generalErrorKey          = "general"
)

// ErrorResponse is returned for every failed call. Errors maps a field name,
// or "general", to a message.
type ErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Errors  map[string]string `json:"errors"`
}

// SendChallengeResponse is returned by send-challenge
type SendChallengeResponse struct {
	Success       bool   `json:"success" example:"true"`
	Message       string `json:"message" example:"OTP sent successfully"`
	DebugPasscode string `json:"debug_passcode,omitempty" example:"123456"`
}

// VerifyChallengeResponse is returned by verify-challenge
type VerifyChallengeResponse struct {
	Success bool                         `json:"success" example:"true"`
	Message string                       `json:"message" example:"OTP verified successfully"`
	Data    models.ChallengeVerification `json:"data"`
}

// VerifyTaxIDResponse is returned by verify-tax-id
type VerifyTaxIDResponse struct {
	Success bool                     `json:"success" example:"true"`
	Message string                   `json:"message" example:"Tax ID verified successfully"`
	Data    models.TaxIDVerification `json:"data"`
}

// SubmitRegistrationResponse is returned by submit-registration
type SubmitRegistrationResponse struct {
	Success bool                      `json:"success" example:"true"`
	Message string                    `json:"message" example:"Registration completed successfully"`
	Data    models.RegistrationRecord `json:"data"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status          string                    `json:"status" example:"healthy"`
	Timestamp       time.Time                 `json:"timestamp"`
	Version         string                    `json:"version" example:"1.0.0"`
	Endpoints       map[string]string         `json:"endpoints"`
	MockCredentials models.CredentialSnapshot `json:"mock_credentials"`
}
