package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridehq/stride-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT token used for API authorization
	Token string `json:"token"`
}

// CreateActivityRequest defines the payload for logging a new activity.
// Duration is given in whole seconds; distance in meters.
type CreateActivityRequest struct {
	Type            string    `json:"type"             validate:"required,max=64"`
	DistanceMeters  float64   `json:"distance_meters"  validate:"gte=0"`
	DurationSeconds int64     `json:"duration_seconds" validate:"required,gt=0"`
	StartedAt       time.Time `json:"started_at"       validate:"required"`
	Notes           string    `json:"notes"            validate:"max=2000"`
}

// ActivityResponse defines the representation of a logged activity.
type ActivityResponse struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	DistanceMeters  float64   `json:"distance_meters"`
	DurationSeconds int64     `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewActivityResponse converts a domain activity to its API representation.
func NewActivityResponse(activity *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:              activity.ID,
		Type:            activity.Type,
		DistanceMeters:  activity.DistanceMeters,
		DurationSeconds: int64(activity.Duration / time.Second),
		StartedAt:       activity.StartedAt,
		Notes:           activity.Notes,
		CreatedAt:       activity.CreatedAt,
	}
}

// MotivationResponse defines the response of the motivation endpoint. A
// degraded (fallback) message uses the same shape as a generated one.
type MotivationResponse struct {
	Message     string    `json:"message"`
	Tone        string    `json:"tone"`
	GeneratedAt time.Time `json:"generated_at"`
	Model       string    `json:"model"`
	Cached      bool      `json:"cached"`
}

// NewMotivationResponse converts a domain message to its API representation.
func NewMotivationResponse(msg *domain.MotivationalMessage) MotivationResponse {
	return MotivationResponse{
		Message:     msg.Message,
		Tone:        string(msg.Tone),
		GeneratedAt: msg.GeneratedAt,
		Model:       msg.Model,
		Cached:      msg.Cached,
	}
}
