package motivation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
)

func chatResponse(content string) *openrouter.ChatResponse {
	return &openrouter.ChatResponse{
		ID:    "gen-123",
		Model: "openai/gpt-4o-mini",
		Choices: []openrouter.ChatChoice{
			{Message: openrouter.ChatMessage{Role: "assistant", Content: content}},
		},
	}
}

func TestParseResponseDirectJSON(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	resp := chatResponse(`{"message": "Keep up the great work!", "tone": "encouraging"}`)

	msg, salvaged, err := parseResponse(resp, "default-model", now)
	require.NoError(t, err)
	assert.False(t, salvaged)
	assert.Equal(t, "Keep up the great work!", msg.Message)
	assert.Equal(t, domain.ToneEncouraging, msg.Tone)
	assert.Equal(t, "openai/gpt-4o-mini", msg.Model)
	assert.Equal(t, now, msg.GeneratedAt)
	assert.False(t, msg.Cached)
}

func TestParseResponseFencedJSON(t *testing.T) {
	content := "Here is your message:\n```json\n{\"message\": \"Nice month!\", \"tone\": \"celebratory\"}\n```\nEnjoy!"

	msg, salvaged, err := parseResponse(chatResponse(content), "default-model", time.Now())
	require.NoError(t, err)
	assert.True(t, salvaged)
	assert.Equal(t, "Nice month!", msg.Message)
	assert.Equal(t, domain.ToneCelebratory, msg.Tone)
}

func TestParseResponseFencedWithoutLanguageTag(t *testing.T) {
	content := "```\n{\"message\": \"Solid effort\", \"tone\": \"encouraging\"}\n```"

	msg, salvaged, err := parseResponse(chatResponse(content), "default-model", time.Now())
	require.NoError(t, err)
	assert.True(t, salvaged)
	assert.Equal(t, "Solid effort", msg.Message)
}

func TestParseResponseBraceSubstring(t *testing.T) {
	content := `Sure! {"message": "You are crushing it this month!", "tone": "celebratory"} Hope that helps.`

	msg, salvaged, err := parseResponse(chatResponse(content), "default-model", time.Now())
	require.NoError(t, err)
	assert.True(t, salvaged)
	assert.Equal(t, "You are crushing it this month!", msg.Message)
}

func TestParseResponseNoJSON(t *testing.T) {
	_, salvaged, err := parseResponse(chatResponse("Keep going, you got this!"), "default-model", time.Now())
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.True(t, salvaged)
}

func TestParseResponseMissingMessageField(t *testing.T) {
	_, _, err := parseResponse(chatResponse(`{"tone": "encouraging"}`), "default-model", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, _, err = parseResponse(chatResponse(`{"message": "", "tone": "encouraging"}`), "default-model", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestParseResponseEmptyChoices(t *testing.T) {
	_, _, err := parseResponse(&openrouter.ChatResponse{}, "default-model", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, _, err = parseResponse(nil, "default-model", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, _, err = parseResponse(chatResponse(""), "default-model", time.Now())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestParseResponseInvalidToneInferred(t *testing.T) {
	tests := []struct {
		name    string
		message string
		tone    string
		want    domain.Tone
	}{
		{
			name:    "celebratory cue",
			message: "What an amazing month you are having!",
			tone:    "excited",
			want:    domain.ToneCelebratory,
		},
		{
			name:    "challenging cue",
			message: "Let's aim for one more run this week.",
			tone:    "",
			want:    domain.ToneChallenging,
		},
		{
			name:    "no cue defaults to encouraging",
			message: "Every step counts. Well done.",
			tone:    "bogus",
			want:    domain.ToneEncouraging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `{"message": "` + tt.message + `", "tone": "` + tt.tone + `"}`
			msg, _, err := parseResponse(chatResponse(content), "default-model", time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.Tone)
		})
	}
}

func TestParseResponseFallsBackToDefaultModel(t *testing.T) {
	resp := chatResponse(`{"message": "Good job", "tone": "encouraging"}`)
	resp.Model = ""

	msg, _, err := parseResponse(resp, "default-model", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "default-model", msg.Model)
}
