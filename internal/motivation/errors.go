package motivation

import "errors"

// Common errors returned by the motivation package.
var (
	// ErrGenerationFailed is returned when message generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate motivational message")

	// ErrInvalidResponse is returned when the model response cannot be
	// parsed into the expected shape. Never retried.
	ErrInvalidResponse = errors.New("invalid response structure")

	// ErrInvalidConfig is returned when the service configuration is invalid.
	ErrInvalidConfig = errors.New("invalid motivation service configuration")
)
