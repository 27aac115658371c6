package flightradar

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by the client. APIError, InvalidResponseError and
// ValidationError unwrap to one of these so callers can use errors.Is.
var (
	// ErrBadRequest indicates a 400 response
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates a 401 response
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInsufficientCredits indicates a 402 response
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrNotFound indicates a 404 response
	ErrNotFound = errors.New("resource not found")
	// ErrTooManyRequests indicates a 429 response
	ErrTooManyRequests = errors.New("too many requests")
	// ErrInternalServerError indicates a 500 response or any other unexpected status
	ErrInternalServerError = errors.New("internal server error")
	// ErrInvalidResponse indicates a success response that did not match the expected shape
	ErrInvalidResponse = errors.New("invalid response")
	// ErrValidation indicates request parameters that failed validation
	ErrValidation = errors.New("validation failed")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid flightradar configuration")
)

// APIError represents a non-success response from the API
type APIError struct {
	StatusCode int
	Kind       error
	// Payload is the decoded JSON error body, or the raw body as a string
	// when it is not valid JSON.
	Payload any
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("flightradar API error: status %d: %s: %v", e.StatusCode, e.Kind, e.Payload)
}

// Unwrap returns the error kind
func (e *APIError) Unwrap() error {
	return e.Kind
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsRateLimited checks if the error indicates the rate limit was hit
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// errorKindForStatus maps a non-success status code to its error kind.
func errorKindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusPaymentRequired:
		return ErrInsufficientCredits
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	default:
		return ErrInternalServerError
	}
}

// InvalidResponseError wraps the failure that made a success response unusable
type InvalidResponseError struct {
	Err error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("flightradar: invalid response: %v", e.Err)
}

// Is reports ErrInvalidResponse as a match so callers need not know the cause.
func (e *InvalidResponseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by request constructors when a filter is invalid
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
