package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

const (
	// DefaultActivityPageSize is the number of activities returned when the
	// caller does not specify a limit.
	DefaultActivityPageSize = 20

	// MaxActivityPageSize caps page sizes to keep list queries bounded.
	MaxActivityPageSize = 100
)

// ActivityService provides operations for recording and listing training activities.
type ActivityService interface {
	// LogActivity records a new activity for a user
	LogActivity(
		ctx context.Context,
		userID uuid.UUID,
		activityType string,
		distanceMeters float64,
		duration time.Duration,
		startedAt time.Time,
		notes string,
	) (*domain.Activity, error)

	// ListActivities returns a page of the user's activities, most recent first
	ListActivities(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Activity, error)
}

// ActivityServiceImpl implements the ActivityService interface
type ActivityServiceImpl struct {
	activityStore store.ActivityStore
	logger        *slog.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityStore store.ActivityStore, logger *slog.Logger) ActivityService {
	return &ActivityServiceImpl{
		activityStore: activityStore,
		logger:        logger.With("component", "activity_service"),
	}
}

// LogActivity records a new activity for a user
func (s *ActivityServiceImpl) LogActivity(
	ctx context.Context,
	userID uuid.UUID,
	activityType string,
	distanceMeters float64,
	duration time.Duration,
	startedAt time.Time,
	notes string,
) (*domain.Activity, error) {
	activity, err := domain.NewActivity(userID, activityType, distanceMeters, duration, startedAt, notes)
	if err != nil {
		s.logger.Warn("failed to create activity object",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	if err := s.activityStore.Create(ctx, activity); err != nil {
		s.logger.Error("failed to save activity to database",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	s.logger.Info("activity logged successfully",
		"activity_id", activity.ID,
		"user_id", userID,
		"type", activity.Type)

	return activity, nil
}

// ListActivities returns a page of the user's activities, most recent first
func (s *ActivityServiceImpl) ListActivities(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	if limit > MaxActivityPageSize {
		limit = MaxActivityPageSize
	}
	if offset < 0 {
		offset = 0
	}

	activities, err := s.activityStore.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list activities",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}
