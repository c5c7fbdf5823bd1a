package domain

import "time"

// Tone is the closed-set emotional register attached to a generated
// motivational message.
type Tone string

// The three recognized tones. Any other value coming back from the model is
// rejected and replaced by an inferred tone.
const (
	ToneEncouraging Tone = "encouraging"
	ToneCelebratory Tone = "celebratory"
	ToneChallenging Tone = "challenging"
)

// Valid reports whether t is a member of the closed tone set.
func (t Tone) Valid() bool {
	switch t {
	case ToneEncouraging, ToneCelebratory, ToneChallenging:
		return true
	}
	return false
}

// GenerationOptions carries optional per-call overrides for message
// generation. The zero value requests the configured defaults.
type GenerationOptions struct {
	// Model overrides the configured primary model identifier when non-empty.
	Model string `json:"model,omitempty"`

	// Temperature overrides the sampling temperature when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens overrides the maximum output length when positive.
	MaxTokens int `json:"max_tokens,omitempty"`

	// BypassCache forces a fresh generation even when a cached message exists.
	BypassCache bool `json:"bypass_cache,omitempty"`
}

// MotivationalMessage is a short natural-language message generated from a
// user's monthly activity statistics. Immutable once produced.
type MotivationalMessage struct {
	// Message is the generated text.
	Message string `json:"message"`

	// Tone classifies the emotional register of the message.
	Tone Tone `json:"tone"`

	// GeneratedAt is when the message was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Model is the identifier of the model that produced the message.
	Model string `json:"model"`

	// Cached is true when the message was served from the cache rather than
	// freshly generated.
	Cached bool `json:"cached"`
}
