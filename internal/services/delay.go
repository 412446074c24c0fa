package services

import (
	"context"
	"time"
)

// Operation names, used for delays, metrics and spans
const (
	OperationSendChallenge      = "send_challenge"
	OperationVerifyChallenge    = "verify_challenge"
	OperationVerifyTaxID        = "verify_tax_id"
	OperationSubmitRegistration = "submit_registration"
)

// Delays is the simulated processing time per operation
type Delays struct {
	SendChallenge      time.Duration
	VerifyChallenge    time.Duration
	VerifyTaxID        time.Duration
	SubmitRegistration time.Duration
}

// For returns the delay configured for operation
func (d Delays) For(operation string) time.Duration {
	switch operation {
	case OperationSendChallenge:
		return d.SendChallenge
	case OperationVerifyChallenge:
		return d.VerifyChallenge
	case OperationVerifyTaxID:
		return d.VerifyTaxID
	case OperationSubmitRegistration:
		return d.SubmitRegistration
	default:
		return 0
	}
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep waits for d, returning ctx.Err() if the context ends first.
// A non-positive d returns immediately.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
