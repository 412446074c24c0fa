// Package client is a typed HTTP client for the registration API.
package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/udyam-portal/app-udyam/internal/handlers"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/models"
	"go.uber.org/zap"
)

// DefaultTimeout covers the slowest simulated operation with room to spare
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response. Errors holds the field messages from the
// body; a 500 carries only "general".
type APIError struct {
	StatusCode int
	Errors     map[string]string
}

func (e *APIError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Errors[k])
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// Client calls the /v1 registration endpoints
type Client struct {
	httpClient *resty.Client
	logger     *logging.SafeLogger
}

// New creates a client for the API at baseURL, e.g. http://localhost:8080.
// Requests are never retried.
func New(baseURL string, timeout time.Duration, logger *logging.SafeLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Logger
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+"/v1").
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// SendChallenge asks the API to send a passcode to the phone number
func (c *Client) SendChallenge(ctx context.Context, sub models.IdentitySubmission) (*handlers.SendChallengeResponse, error) {
	var result handlers.SendChallengeResponse
	if err := c.post(ctx, "/send-challenge", sub, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyChallenge checks the passcode
func (c *Client) VerifyChallenge(ctx context.Context, sub models.OtpSubmission) (*handlers.VerifyChallengeResponse, error) {
	var result handlers.VerifyChallengeResponse
	if err := c.post(ctx, "/verify-challenge", sub, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyTaxID checks the tax ID details
func (c *Client) VerifyTaxID(ctx context.Context, sub models.TaxIDSubmission) (*handlers.VerifyTaxIDResponse, error) {
	var result handlers.VerifyTaxIDResponse
	if err := c.post(ctx, "/verify-tax-id", sub, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitRegistration submits the complete form
func (c *Client) SubmitRegistration(ctx context.Context, sub models.CompleteRegistration) (*handlers.SubmitRegistrationResponse, error) {
	var result handlers.SubmitRegistrationResponse
	if err := c.post(ctx, "/submit-registration", sub, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health fetches the health report
func (c *Client) Health(ctx context.Context) (*handlers.HealthResponse, error) {
	var result handlers.HealthResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("GET /health: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	var failure handlers.ErrorResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&failure).
		Post(path)
	if err != nil {
		c.logger.Error("API call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("POST %s: %w", path, err)
	}

	if resp.IsError() {
		c.logger.Debug("API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.Int("error_count", len(failure.Errors)))
		return &APIError{StatusCode: resp.StatusCode(), Errors: failure.Errors}
	}

	return nil
}
