package motivation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
)

// Sampling defaults applied when GenerationOptions carries no override.
const (
	defaultTemperature = 0.7
	defaultTopP        = 0.9
	defaultMaxTokens   = 256
)

// metersPerMile is the fixed conversion factor for mile display.
const metersPerMile = 1609.34

// systemPrompt is the fixed fitness-motivation persona. The tone bands are
// suggestions to the model, not enforced client-side; the parser accepts
// whatever valid tone comes back.
const systemPrompt = `You are an upbeat personal fitness coach writing one short motivational message (at most two sentences) about a user's activity this month.

Pick a tone for the message using these guidelines:
- fewer than 5 activities so far: "challenging" (nudge them to get moving)
- 5 to 15 activities: "encouraging" (acknowledge solid progress)
- more than 15 activities: "celebratory" (they are having a great month)

Respond with a JSON object containing exactly two fields:
- "message": the motivational message text
- "tone": one of "encouraging", "celebratory" or "challenging"`

// messageSchema is the structured-output hint sent with every request:
// a JSON object with exactly the message and tone fields.
var messageSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"message": {"type": "string"},
		"tone": {"type": "string", "enum": ["encouraging", "celebratory", "challenging"]}
	},
	"required": ["message", "tone"],
	"additionalProperties": false
}`)

// buildRequest turns validated activity statistics and per-call options into
// a chat-completions request for the given model.
func buildRequest(
	stats domain.ActivityStats,
	model string,
	opts domain.GenerationOptions,
) openrouter.ChatRequest {
	temperature := defaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	maxTokens := defaultMaxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}

	topP := defaultTopP

	return openrouter.ChatRequest{
		Model: model,
		Messages: []openrouter.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(stats)},
		},
		ResponseFormat: &openrouter.ResponseFormat{
			Type: "json_schema",
			JSONSchema: &openrouter.JSONSchema{
				Name:   "motivational_message",
				Strict: true,
				Schema: messageSchema,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		TopP:        &topP,
	}
}

// buildUserPrompt renders the user's month so far: month name, per-type
// activity counts, formatted distance and duration, and day progress.
func buildUserPrompt(stats domain.ActivityStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "It is %s %d.", time.Month(stats.Month).String(), stats.Year)

	if stats.TotalActivities == 0 {
		b.WriteString(" I have not logged any activities yet this month.")
	} else {
		fmt.Fprintf(&b, " So far this month I have logged %d activities (%s), covering %s in %s.",
			stats.TotalActivities,
			formatCounts(stats.CountsByType),
			formatDistance(stats.TotalDistanceMeters, stats.DistanceUnit),
			formatDuration(stats.TotalDuration))
	}

	fmt.Fprintf(&b, " %d of %d days have passed; %d remain.",
		stats.DaysElapsed, stats.TotalDays, stats.DaysRemaining)
	b.WriteString(" Write my motivational message.")

	return b.String()
}

// formatCounts renders per-type counts in a stable order, e.g.
// "3 rides, 5 runs".
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%d %s", counts[t], t))
	}
	return strings.Join(parts, ", ")
}

// formatDistance renders a distance in meters as kilometers or miles with
// two decimals.
func formatDistance(meters float64, unit domain.DistanceUnit) string {
	if unit == domain.UnitMiles {
		return fmt.Sprintf("%.2f mi", meters/metersPerMile)
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// formatDuration renders a duration from its hour, minute and second
// components, omitting zero components. A zero duration renders as "0m".
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	if seconds > 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}

	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
