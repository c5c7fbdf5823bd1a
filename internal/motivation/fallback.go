package motivation

import (
	"fmt"
	"time"

	"github.com/stridehq/stride-api/internal/domain"
)

// FallbackModel is the model identifier stamped on statically generated
// messages so API consumers can tell them apart from model output.
const FallbackModel = "static"

// FallbackMessage builds a deterministic motivational message from the
// stats alone. It is served when generation is disabled or fails; the
// endpoint never surfaces a generation error to the client.
func FallbackMessage(stats domain.ActivityStats, now time.Time) *domain.MotivationalMessage {
	var text string
	tone := domain.ToneEncouraging

	switch {
	case stats.TotalActivities == 0:
		text = fmt.Sprintf(
			"A fresh month of %s awaits. Log your first activity today and get the streak started!",
			time.Month(stats.Month).String(),
		)
		tone = domain.ToneChallenging
	case stats.TotalActivities >= 15:
		text = fmt.Sprintf(
			"%d activities and %s this month. You are on fire!",
			stats.TotalActivities,
			formatDistance(stats.TotalDistanceMeters, stats.DistanceUnit),
		)
		tone = domain.ToneCelebratory
	default:
		text = fmt.Sprintf(
			"%d activities down, %d days of %s to go. Keep it rolling!",
			stats.TotalActivities,
			stats.DaysRemaining,
			time.Month(stats.Month).String(),
		)
	}

	return &domain.MotivationalMessage{
		Message:     text,
		Tone:        tone,
		GeneratedAt: now,
		Model:       FallbackModel,
		Cached:      false,
	}
}
