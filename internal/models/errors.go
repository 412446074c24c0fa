package models

import (
	"errors"
	"sort"
	"strings"
)

// Error kinds surfaced by verification operations
var (
	ErrInvalidFormat = errors.New("submission failed format validation")
	ErrNoMatch       = errors.New("submission does not match any known record")
)

// VerificationError carries the per-field messages returned to the caller.
// Kind is one of ErrInvalidFormat or ErrNoMatch.
type VerificationError struct {
	Kind   error
	Fields map[string]string
}

// NewFormatError wraps a field → message map as a format failure.
func NewFormatError(fields map[string]string) *VerificationError {
	return &VerificationError{Kind: ErrInvalidFormat, Fields: fields}
}

// NewNoMatchError reports a lookup miss with a single generic message.
func NewNoMatchError(field, message string) *VerificationError {
	return &VerificationError{Kind: ErrNoMatch, Fields: map[string]string{field: message}}
}

func (e *VerificationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.Kind.Error() + ": " + strings.Join(keys, ", ")
}

func (e *VerificationError) Unwrap() error {
	return e.Kind
}
