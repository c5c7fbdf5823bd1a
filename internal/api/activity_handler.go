package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/stridehq/stride-api/internal/api/shared"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/platform/logger"
	"github.com/stridehq/stride-api/internal/service"
	"github.com/stridehq/stride-api/internal/store"
)

// ActivityHandler handles activity logging, listing and monthly stats.
type ActivityHandler struct {
	activityService service.ActivityService
	statsService    service.StatsService
}

// NewActivityHandler creates a new ActivityHandler with the given dependencies.
func NewActivityHandler(
	activityService service.ActivityService,
	statsService service.StatsService,
) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		statsService:    statsService,
	}
}

// CreateActivity handles POST /activities.
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateActivityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	activity, err := h.activityService.LogActivity(
		r.Context(),
		userID,
		req.Type,
		req.DistanceMeters,
		time.Duration(req.DurationSeconds)*time.Second,
		req.StartedAt,
		req.Notes,
	)
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) || isDomainValidation(err) {
			HandleAPIError(w, r, err, "")
			return
		}
		log.Error("failed to log activity",
			"error", err,
			"user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to log activity")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewActivityResponse(activity))
}

// ListActivities handles GET /activities.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	limit := queryInt(r, "limit", service.DefaultActivityPageSize)
	offset := queryInt(r, "offset", 0)

	activities, err := h.activityService.ListActivities(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error("failed to list activities",
			"error", err,
			"user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list activities")
		return
	}

	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewActivityResponse(activity))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetMonthlyStats handles GET /stats/monthly. The period defaults to the
// current month; "year", "month" and "unit" query parameters override it.
func (h *ActivityHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	now := time.Now().UTC()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	unit := domain.DistanceUnit(r.URL.Query().Get("unit"))

	stats, err := h.statsService.GetMonthlyStats(r.Context(), userID, year, month, unit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			HandleAPIError(w, r, err, "")
			return
		}
		log.Error("failed to get monthly stats",
			"error", err,
			"user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get monthly stats")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// isDomainValidation reports whether err belongs to the domain validation
// error family.
func isDomainValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrActivityTypeEmpty) ||
		errors.Is(err, domain.ErrActivityDistanceNegative) ||
		errors.Is(err, domain.ErrActivityDurationInvalid) ||
		errors.Is(err, domain.ErrActivityStartedAtZero)
}
