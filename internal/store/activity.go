package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/domain"
)

// MonthlySummary is the raw aggregation of a user's activities for one
// calendar month, as produced by the store. The statistics service turns it
// into a domain.ActivityStats by adding the period and day-progress fields.
type MonthlySummary struct {
	// CountsByType maps activity type to the number of activities logged.
	CountsByType map[string]int

	// TotalDistanceMeters is the summed distance in meters.
	TotalDistanceMeters float64

	// TotalDurationSeconds is the summed duration in seconds.
	TotalDurationSeconds int64
}

// ActivityStore defines the interface for activity data persistence.
type ActivityStore interface {
	// Create saves a new activity to the store.
	// Returns validation errors from the domain Activity if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, activity *domain.Activity) error

	// ListByUser retrieves the user's activities ordered by start time
	// descending, with limit/offset paging.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Activity, error)

	// SummarizeMonth aggregates the user's activities for the given calendar
	// month. A month with no activities yields an empty (zero) summary, not
	// an error.
	SummarizeMonth(ctx context.Context, userID uuid.UUID, year, month int) (*MonthlySummary, error)
}
