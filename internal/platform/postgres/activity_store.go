package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/store"
)

// PostgresActivityStore implements the store.ActivityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates a new PostgreSQL implementation of the
// ActivityStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

// Ensure PostgresActivityStore implements store.ActivityStore interface
var _ store.ActivityStore = (*PostgresActivityStore)(nil)

// Create implements store.ActivityStore.Create.
// Durations are persisted as whole seconds.
func (s *PostgresActivityStore) Create(ctx context.Context, activity *domain.Activity) error {
	if err := activity.Validate(); err != nil {
		s.logger.Warn("activity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return err
	}

	query := `
		INSERT INTO activities (id, user_id, type, distance_meters, duration_seconds, started_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		activity.ID,
		activity.UserID,
		activity.Type,
		activity.DistanceMeters,
		int64(activity.Duration/time.Second),
		activity.StartedAt,
		activity.Notes,
		activity.CreatedAt,
		activity.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			s.logger.Warn("foreign key violation during activity creation",
				slog.String("activity_id", activity.ID.String()),
				slog.String("user_id", activity.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, activity.UserID)
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// ListByUser implements store.ActivityStore.ListByUser.
func (s *PostgresActivityStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Activity, error) {
	query := `
		SELECT id, user_id, type, distance_meters, duration_seconds, started_at, notes, created_at, updated_at
		FROM activities
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var activities []*domain.Activity
	for rows.Next() {
		var activity domain.Activity
		var durationSeconds int64
		err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Type,
			&activity.DistanceMeters,
			&durationSeconds,
			&activity.StartedAt,
			&activity.Notes,
			&activity.CreatedAt,
			&activity.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Duration = time.Duration(durationSeconds) * time.Second
		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

// SummarizeMonth implements store.ActivityStore.SummarizeMonth. Grouping is
// done in SQL; a month with no activities yields a zero summary.
func (s *PostgresActivityStore) SummarizeMonth(
	ctx context.Context,
	userID uuid.UUID,
	year, month int,
) (*store.MonthlySummary, error) {
	query := `
		SELECT type, COUNT(*), COALESCE(SUM(distance_meters), 0), COALESCE(SUM(duration_seconds), 0)
		FROM activities
		WHERE user_id = $1
		  AND EXTRACT(YEAR FROM started_at) = $2
		  AND EXTRACT(MONTH FROM started_at) = $3
		GROUP BY type
	`
	rows, err := s.db.QueryContext(ctx, query, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	summary := &store.MonthlySummary{
		CountsByType: make(map[string]int),
	}

	for rows.Next() {
		var activityType string
		var count int
		var distance float64
		var durationSeconds int64
		if err := rows.Scan(&activityType, &count, &distance, &durationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan month summary: %w", err)
		}

		summary.CountsByType[activityType] = count
		summary.TotalDistanceMeters += distance
		summary.TotalDurationSeconds += durationSeconds
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate month summary: %w", err)
	}

	return summary, nil
}
