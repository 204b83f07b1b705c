package csr

import (
	"github.com/pkg/errors"
)

// ErrorKind identifies the class of a validation failure.
type ErrorKind string

// Validation failure kinds
const (
	Required               ErrorKind = "required"
	TooLong                ErrorKind = "too_long"
	InvalidFormat          ErrorKind = "invalid_format"
	TooWeak                ErrorKind = "too_weak"
	InsufficientComplexity ErrorKind = "insufficient_complexity"
	InvalidSAN             ErrorKind = "invalid_san"
	InvalidOID             ErrorKind = "invalid_oid"
)

// ValidationError reports a caller-fixable problem with a single
// descriptor field. The Reason is a human-readable message safe to
// return to the caller.
type ValidationError struct {
	Kind   ErrorKind
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Reason
}

// Internal failures are reported generically, without collaborator detail.
var (
	// ErrGenerationFailed is returned when the key provider or signer fails.
	ErrGenerationFailed = errors.New("failed to generate CSR")

	// ErrParseFailed is returned when the input is not a well-formed
	// PKCS#10 structure.
	ErrParseFailed = errors.New("failed to parse certificate request")
)
