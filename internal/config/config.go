package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port            int           `json:"port"`
	Environment     string        `json:"environment"`
	Version         string        `json:"version"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	AllowedOrigins  []string      `json:"allowed_origins"`

	// ExposeDebugPasscode returns the fixture passcode from send-challenge.
	// Never enabled in production.
	ExposeDebugPasscode bool `json:"expose_debug_passcode"`

	// Simulated processing latency per operation
	SimulatedDelayEnabled   bool          `json:"simulated_delay_enabled"`
	SendChallengeDelay      time.Duration `json:"send_challenge_delay"`
	VerifyChallengeDelay    time.Duration `json:"verify_challenge_delay"`
	VerifyTaxIDDelay        time.Duration `json:"verify_tax_id_delay"`
	SubmitRegistrationDelay time.Duration `json:"submit_registration_delay"`

	// Tracing configuration
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	environment := getEnvOrDefault("ENVIRONMENT", "development")

	exposeDebugPasscode, err := getEnvAsBoolOrDefault("EXPOSE_DEBUG_PASSCODE", environment == "development")
	if err != nil {
		return err
	}
	if exposeDebugPasscode && environment == "production" {
		return fmt.Errorf("EXPOSE_DEBUG_PASSCODE cannot be enabled in production")
	}

	delayEnabled, err := getEnvAsBoolOrDefault("SIMULATED_DELAY_ENABLED", true)
	if err != nil {
		return err
	}

	sendDelay, err := getEnvAsDurationOrDefault("SEND_CHALLENGE_DELAY", time.Second)
	if err != nil {
		return err
	}
	verifyDelay, err := getEnvAsDurationOrDefault("VERIFY_CHALLENGE_DELAY", 800*time.Millisecond)
	if err != nil {
		return err
	}
	taxIDDelay, err := getEnvAsDurationOrDefault("VERIFY_TAX_ID_DELAY", 1500*time.Millisecond)
	if err != nil {
		return err
	}
	submitDelay, err := getEnvAsDurationOrDefault("SUBMIT_REGISTRATION_DELAY", 2*time.Second)
	if err != nil {
		return err
	}

	shutdownTimeout, err := getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return err
	}

	tracingEnabled, err := getEnvAsBoolOrDefault("TRACING_ENABLED", false)
	if err != nil {
		return err
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: %w", err)
	}
	if sampleRatio < 0 || sampleRatio > 1 {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1")
	}

	AppConfig = &Config{
		// Server configuration
		Port:            port,
		Environment:     environment,
		Version:         getEnvOrDefault("APP_VERSION", "1.0.0"),
		ShutdownTimeout: shutdownTimeout,
		AllowedOrigins:  splitAndTrim(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		ExposeDebugPasscode: exposeDebugPasscode,

		SimulatedDelayEnabled:   delayEnabled,
		SendChallengeDelay:      sendDelay,
		VerifyChallengeDelay:    verifyDelay,
		VerifyTaxIDDelay:        taxIDDelay,
		SubmitRegistrationDelay: submitDelay,

		// Tracing configuration
		TracingEnabled:     tracingEnabled,
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,
	}

	return nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return parsed, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
