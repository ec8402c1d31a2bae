// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - Unexported errors (err*): Use for internal package errors
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Circuit breaker errors.
var (
	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped and requests are blocked.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// Client and connection errors.
var (
	// ErrClientDisabled indicates a client or feature is disabled (for example, no API key).
	ErrClientDisabled = errors.New("client disabled")

	// ErrHTTPStatus indicates an upstream returned a non-success status code.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Response and parsing errors.
var (
	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")

	// ErrCollectorPanic indicates a collector panicked and was recovered.
	ErrCollectorPanic = errors.New("collector panicked")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSourceType indicates a configured feed source has an unsupported type.
	ErrUnknownSourceType = errors.New("unknown source type")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
