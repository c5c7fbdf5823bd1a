package openrouter

import (
	"errors"
	"fmt"
	"net/http"
)

// Error definitions for the openrouter package.
var (
	// ErrTimeout is returned when a request exceeded its timeout budget and
	// any applicable retries were exhausted.
	ErrTimeout = errors.New("language model request timed out")

	// ErrRetriesExhausted wraps the terminal failure after all same-model
	// retry attempts have been spent on a retryable condition.
	ErrRetriesExhausted = errors.New("language model retries exhausted")

	// ErrInvalidConfig is returned when the client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid openrouter client configuration")
)

// APIError is a definitive non-success response from the provider. It
// carries the HTTP status code and the best-effort server-supplied message
// for the caller to log or act on.
type APIError struct {
	// StatusCode is the HTTP status returned by the provider.
	StatusCode int

	// Message is the server-supplied error message, falling back to the
	// HTTP status text when the body carried none.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}

// IsRateLimit reports whether err is (or wraps) a 429 response from the
// provider. Rate limits are the fail-fast condition that triggers model
// fallback in the generation service.
func IsRateLimit(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// IsRetryExhausted reports whether err is a terminal failure produced by
// spending all same-model retry attempts on a retryable condition (server
// error, timeout or network failure).
func IsRetryExhausted(err error) bool {
	return errors.Is(err, ErrRetriesExhausted)
}
