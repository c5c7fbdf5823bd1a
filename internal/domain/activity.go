package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Activity-specific validation errors
var (
	// ErrActivityIDEmpty is returned when an activity ID is empty or nil.
	ErrActivityIDEmpty = errors.New("activity ID cannot be empty")

	// ErrActivityUserIDEmpty is returned when an activity's user ID is empty or nil.
	ErrActivityUserIDEmpty = errors.New("activity user ID cannot be empty")

	// ErrActivityTypeEmpty is returned when an activity's type is empty.
	ErrActivityTypeEmpty = errors.New("activity type cannot be empty")

	// ErrActivityDistanceNegative is returned when an activity's distance is negative.
	ErrActivityDistanceNegative = errors.New("activity distance cannot be negative")

	// ErrActivityDurationInvalid is returned when an activity's duration is not positive.
	ErrActivityDurationInvalid = errors.New("activity duration must be positive")

	// ErrActivityStartedAtZero is returned when an activity's start time is unset.
	ErrActivityStartedAtZero = errors.New("activity start time cannot be empty")
)

// Activity represents a single logged workout: a run, ride, swim, walk or
// strength session. Distance is stored in meters regardless of the display
// unit the user prefers.
type Activity struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	Type            string        `json:"type"`
	DistanceMeters  float64       `json:"distance_meters"`
	Duration        time.Duration `json:"duration"`
	StartedAt       time.Time     `json:"started_at"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewActivity creates a new Activity for the given user.
// It generates a new UUID for the activity ID and sets the timestamps.
// Returns an error if validation fails.
func NewActivity(
	userID uuid.UUID,
	activityType string,
	distanceMeters float64,
	duration time.Duration,
	startedAt time.Time,
	notes string,
) (*Activity, error) {
	activity := &Activity{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           activityType,
		DistanceMeters: distanceMeters,
		Duration:       duration,
		StartedAt:      startedAt,
		Notes:          notes,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the Activity has valid data.
// Returns an error if any field fails validation.
func (a *Activity) Validate() error {
	if a.ID == uuid.Nil {
		return ErrActivityIDEmpty
	}

	if a.UserID == uuid.Nil {
		return ErrActivityUserIDEmpty
	}

	if a.Type == "" {
		return ErrActivityTypeEmpty
	}

	if a.DistanceMeters < 0 {
		return ErrActivityDistanceNegative
	}

	if a.Duration <= 0 {
		return ErrActivityDurationInvalid
	}

	if a.StartedAt.IsZero() {
		return ErrActivityStartedAtZero
	}

	return nil
}
