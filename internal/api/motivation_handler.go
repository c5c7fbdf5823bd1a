package api

import (
	"net/http"
	"time"

	"github.com/stridehq/stride-api/internal/api/shared"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/motivation"
	"github.com/stridehq/stride-api/internal/platform/logger"
	"github.com/stridehq/stride-api/internal/service"
)

// MotivationHandler serves generated motivational messages. Generation
// failures never surface to the client: the handler degrades to a static
// message built from the same stats.
type MotivationHandler struct {
	generator    motivation.Generator
	statsService service.StatsService
	enabled      bool
}

// NewMotivationHandler creates a new MotivationHandler. A nil generator or
// enabled=false puts the handler in degraded mode, serving only fallback
// messages.
func NewMotivationHandler(
	generator motivation.Generator,
	statsService service.StatsService,
	enabled bool,
) *MotivationHandler {
	return &MotivationHandler{
		generator:    generator,
		statsService: statsService,
		enabled:      enabled && generator != nil,
	}
}

// GetMotivation handles GET /motivation. The "refresh" query parameter
// bypasses the message cache; "unit" selects the distance unit used in the
// prompt.
func (h *MotivationHandler) GetMotivation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	now := time.Now().UTC()
	unit := domain.DistanceUnit(r.URL.Query().Get("unit"))

	stats, err := h.statsService.GetMonthlyStats(r.Context(), userID, now.Year(), int(now.Month()), unit)
	if err != nil {
		// Without stats there is nothing to build even a fallback from.
		log.Error("failed to aggregate stats for motivation",
			"error", err,
			"user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to get motivation")
		return
	}

	if !h.enabled {
		msg := motivation.FallbackMessage(*stats, now)
		shared.RespondWithJSON(w, r, http.StatusOK, NewMotivationResponse(msg))
		return
	}

	opts := domain.GenerationOptions{
		BypassCache: r.URL.Query().Get("refresh") == "true",
	}

	msg, err := h.generator.Generate(r.Context(), userID, *stats, opts)
	if err != nil {
		// Degrade, don't fail: the client always gets a message.
		log.Warn("message generation failed, serving fallback",
			"error", err,
			"user_id", userID)
		msg = motivation.FallbackMessage(*stats, now)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewMotivationResponse(msg))
}

// ClearCache handles DELETE /motivation/cache, removing every cached
// message belonging to the authenticated user.
func (h *MotivationHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if h.generator != nil {
		h.generator.ClearCache(userID)
	}

	w.WriteHeader(http.StatusNoContent)
}
