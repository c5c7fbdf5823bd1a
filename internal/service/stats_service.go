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

// StatsService aggregates a user's logged activities into the monthly
// statistics consumed by the motivation service and the stats endpoint.
type StatsService interface {
	// GetMonthlyStats returns the user's aggregated statistics for the given
	// calendar month. A month with no activities yields zero-valued stats,
	// not an error.
	GetMonthlyStats(
		ctx context.Context,
		userID uuid.UUID,
		year, month int,
		unit domain.DistanceUnit,
	) (*domain.ActivityStats, error)
}

// StatsServiceImpl implements the StatsService interface
type StatsServiceImpl struct {
	activityStore store.ActivityStore
	logger        *slog.Logger
	now           func() time.Time // Injectable for testing
}

// NewStatsService creates a new StatsService
func NewStatsService(activityStore store.ActivityStore, logger *slog.Logger) *StatsServiceImpl {
	return &StatsServiceImpl{
		activityStore: activityStore,
		logger:        logger.With("component", "stats_service"),
		now:           time.Now,
	}
}

// Ensure StatsServiceImpl implements StatsService interface
var _ StatsService = (*StatsServiceImpl)(nil)

// GetMonthlyStats returns the user's aggregated statistics for the given month.
func (s *StatsServiceImpl) GetMonthlyStats(
	ctx context.Context,
	userID uuid.UUID,
	year, month int,
	unit domain.DistanceUnit,
) (*domain.ActivityStats, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year < domain.StatsMinYear || year > domain.StatsMaxYear {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	if unit == "" {
		unit = domain.UnitKilometers
	}

	summary, err := s.activityStore.SummarizeMonth(ctx, userID, year, month)
	if err != nil {
		s.logger.Error("failed to summarize month",
			"error", err,
			"user_id", userID,
			"year", year,
			"month", month)
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}

	total := 0
	for _, count := range summary.CountsByType {
		total += count
	}

	elapsed, remaining, totalDays := monthProgress(s.now().UTC(), year, month)

	stats := &domain.ActivityStats{
		CountsByType:        summary.CountsByType,
		TotalActivities:     total,
		TotalDistanceMeters: summary.TotalDistanceMeters,
		TotalDuration:       time.Duration(summary.TotalDurationSeconds) * time.Second,
		Month:               month,
		Year:                year,
		DaysElapsed:         elapsed,
		DaysRemaining:       remaining,
		TotalDays:           totalDays,
		DistanceUnit:        unit,
	}

	s.logger.Debug("aggregated monthly stats",
		"user_id", userID,
		"year", year,
		"month", month,
		"total_activities", total)

	return stats, nil
}

// monthProgress computes how far through the requested month "now" falls.
// Past months are fully elapsed, future months not at all, and the current
// day counts as elapsed.
func monthProgress(now time.Time, year, month int) (elapsed, remaining, total int) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	total = start.AddDate(0, 1, -1).Day()

	switch {
	case now.Before(start):
		return 0, total, total
	case now.Year() == year && int(now.Month()) == month:
		elapsed = now.Day()
		return elapsed, total - elapsed, total
	default:
		return total, 0, total
	}
}
