package domain

import (
	"fmt"
	"time"
)

// DistanceUnit is the unit used when presenting distances to the user.
type DistanceUnit string

// Supported distance display units.
const (
	UnitKilometers DistanceUnit = "km"
	UnitMiles      DistanceUnit = "mi"
)

// Bounds accepted for the statistics period.
const (
	StatsMinYear = 2000
	StatsMaxYear = 2100
)

// ActivityStats summarizes a user's logged activities for one calendar
// month. It is produced by the statistics aggregator and consumed read-only
// by the motivational-message service.
//
// DaysElapsed + DaysRemaining == TotalDays is expected from the aggregator
// but not independently enforced here.
type ActivityStats struct {
	// CountsByType maps an activity type ("run", "ride", ...) to the number
	// of activities of that type logged in the period.
	CountsByType map[string]int `json:"counts_by_type"`

	// TotalActivities is the number of activities logged in the period.
	TotalActivities int `json:"total_activities"`

	// TotalDistanceMeters is the summed distance of all activities, in meters.
	TotalDistanceMeters float64 `json:"total_distance_meters"`

	// TotalDuration is the summed elapsed duration of all activities.
	TotalDuration time.Duration `json:"total_duration"`

	// Month is the calendar month of the period (1-12).
	Month int `json:"month"`

	// Year is the calendar year of the period.
	Year int `json:"year"`

	// DaysElapsed is the number of days of the month already passed.
	DaysElapsed int `json:"days_elapsed"`

	// DaysRemaining is the number of days of the month still to come.
	DaysRemaining int `json:"days_remaining"`

	// TotalDays is the number of days in the month.
	TotalDays int `json:"total_days"`

	// DistanceUnit is the unit distances should be presented in.
	DistanceUnit DistanceUnit `json:"distance_unit"`
}

// Validate checks that the statistics are well-formed before they are used
// to build a generation request. It returns a *ValidationError wrapping
// ErrValidation on the first failing field.
func (s ActivityStats) Validate() error {
	if s.Month < 1 || s.Month > 12 {
		return NewValidationError(
			"month",
			fmt.Sprintf("must be between 1 and 12, got %d", s.Month),
			ErrValidation,
		)
	}

	if s.Year < StatsMinYear || s.Year > StatsMaxYear {
		return NewValidationError(
			"year",
			fmt.Sprintf("must be between %d and %d, got %d", StatsMinYear, StatsMaxYear, s.Year),
			ErrValidation,
		)
	}

	if s.TotalActivities < 0 || s.TotalDistanceMeters < 0 || s.TotalDuration < 0 {
		return NewValidationError(
			"totals",
			"activity count, distance and duration cannot be negative",
			ErrValidation,
		)
	}

	if s.DaysElapsed < 0 || s.DaysRemaining < 0 || s.TotalDays < 0 {
		return NewValidationError(
			"days",
			"day counters cannot be negative",
			ErrValidation,
		)
	}

	return nil
}

// Clone returns a deep copy of the stats. The cache stores a snapshot of the
// stats used to produce a message and must not alias the caller's map.
func (s ActivityStats) Clone() ActivityStats {
	out := s
	if s.CountsByType != nil {
		out.CountsByType = make(map[string]int, len(s.CountsByType))
		for k, v := range s.CountsByType {
			out.CountsByType[k] = v
		}
	}
	return out
}
