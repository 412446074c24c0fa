package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for VerificationOperations
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidFormat = "invalid_format"
	OutcomeNoMatch       = "no_match"
	OutcomeError         = "error"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_udyam_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_udyam_active_connections",
			Help: "Number of active connections",
		},
	)

	// VerificationOperations counts verification calls by operation and outcome
	VerificationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_udyam_verification_operations_total",
			Help: "Number of verification operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// OperationDuration tracks how long each verification operation takes,
	// simulated delay included
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "app_udyam_operation_duration_seconds",
			Help:    "Duration of verification operations in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 1.5, 2, 3, 5},
		},
		[]string{"operation"},
	)

	// RegistrationsIssued counts registration numbers handed out
	RegistrationsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "app_udyam_registrations_issued_total",
			Help: "Number of registration records issued",
		},
	)
)
