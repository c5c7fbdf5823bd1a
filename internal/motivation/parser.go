package motivation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
)

// fencedJSON matches a JSON object wrapped in markdown code fencing, with or
// without a "json" language tag.
var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Lower-cased cues scanned when the model omits or mangles the tone field.
// Superlatives suggest a celebratory message; imperative nudges suggest a
// challenging one.
var (
	celebratoryCues = []string{"amazing", "incredible", "crushing", "fantastic", "outstanding"}
	challengingCues = []string{"let's", "aim", "try", "push yourself"}
)

// parseResponse extracts and validates a MotivationalMessage from the raw
// provider response. The returned bool reports whether the salvage path
// (markdown fence or brace substring) was taken, so the caller can surface
// it as a parse-fallback event. All failures wrap ErrInvalidResponse.
func parseResponse(
	resp *openrouter.ChatResponse,
	defaultModel string,
	now time.Time,
) (*domain.MotivationalMessage, bool, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, false, fmt.Errorf("%w: response has no choices", ErrInvalidResponse)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, false, fmt.Errorf("%w: first choice has no message content", ErrInvalidResponse)
	}

	payload, salvaged, err := decodePayload(content)
	if err != nil {
		return nil, salvaged, err
	}

	rawMessage, ok := payload["message"].(string)
	if !ok || rawMessage == "" {
		return nil, salvaged, fmt.Errorf("%w: missing or empty message field", ErrInvalidResponse)
	}

	tone := domain.Tone("")
	if rawTone, ok := payload["tone"].(string); ok {
		tone = domain.Tone(rawTone)
	}
	if !tone.Valid() {
		tone = inferTone(rawMessage)
	}

	model := resp.Model
	if model == "" {
		model = defaultModel
	}

	return &domain.MotivationalMessage{
		Message:     rawMessage,
		Tone:        tone,
		GeneratedAt: now,
		Model:       model,
		Cached:      false,
	}, salvaged, nil
}

// decodePayload decodes the completion content into a generic JSON tree.
// It tries the content verbatim first, then a markdown-fenced object, then
// the outermost brace-delimited substring.
func decodePayload(content string) (map[string]any, bool, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err == nil {
		return payload, false, nil
	}

	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &payload); err == nil {
			return payload, true, nil
		}
	}

	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err == nil {
			return payload, true, nil
		}
	}

	return nil, true, fmt.Errorf("%w: no JSON object found in completion content", ErrInvalidResponse)
}

// inferTone scans the lower-cased message text for tone cues, defaulting to
// encouraging when nothing matches.
func inferTone(message string) domain.Tone {
	lower := strings.ToLower(message)

	for _, cue := range celebratoryCues {
		if strings.Contains(lower, cue) {
			return domain.ToneCelebratory
		}
	}
	for _, cue := range challengingCues {
		if strings.Contains(lower, cue) {
			return domain.ToneChallenging
		}
	}
	return domain.ToneEncouraging
}
