package motivation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/config"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
)

// Generator is the interface the HTTP layer consumes. It exists so handlers
// can be tested against a mock and so the application can substitute
// implementations without touching call sites.
type Generator interface {
	// Generate produces a motivational message for the user's monthly stats.
	Generate(
		ctx context.Context,
		userID uuid.UUID,
		stats domain.ActivityStats,
		opts domain.GenerationOptions,
	) (*domain.MotivationalMessage, error)

	// ClearCache removes every cached message belonging to the user.
	ClearCache(userID uuid.UUID)
}

// CompletionClient is the transport dependency of the service. Implemented
// by *openrouter.Client; test doubles implement it in-memory.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openrouter.ChatRequest) (*openrouter.ChatResponse, error)
}

// Service generates motivational messages: validate → cache lookup → build
// request → send (with model fallback) → parse → cache store.
type Service struct {
	client        CompletionClient
	logger        *slog.Logger
	emitter       events.EventEmitter
	cache         *messageCache
	model         string
	fallbackModel string
	now           func() time.Time
}

// Ensure Service implements the Generator interface.
var _ Generator = (*Service)(nil)

// NewService creates a new Service from the motivation configuration. The
// emitter may be nil, in which case lifecycle events are dropped.
func NewService(
	client CompletionClient,
	cfg config.MotivationConfig,
	logger *slog.Logger,
	emitter events.EventEmitter,
) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: completion client cannot be nil", ErrInvalidConfig)
	}

	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", ErrInvalidConfig)
	}

	return &Service{
		client:        client,
		logger:        logger.With("component", "motivation_service"),
		emitter:       emitter,
		cache:         newMessageCache(time.Duration(cfg.CacheTTLMinutes) * time.Minute),
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		now:           time.Now,
	}, nil
}

// Generate produces a motivational message for the user's monthly activity
// statistics.
//
// Stats are validated before the cache or the network is touched; a
// *domain.ValidationError is never retried. Unless opts.BypassCache is set,
// a fresh-enough cached message for the same user and month is returned
// with Cached=true. Otherwise the request is sent to the effective model
// (opts.Model override, else the configured default); if its terminal
// failure is a rate limit or exhausted retries, the request is retried once
// in full against the configured fallback model. The parsed message is
// cached keyed by the current stats before being returned.
func (s *Service) Generate(
	ctx context.Context,
	userID uuid.UUID,
	stats domain.ActivityStats,
	opts domain.GenerationOptions,
) (*domain.MotivationalMessage, error) {
	if err := stats.Validate(); err != nil {
		return nil, err
	}

	if !opts.BypassCache {
		if cached, ok := s.cache.lookup(userID, stats); ok {
			s.logger.DebugContext(ctx, "serving motivational message from cache",
				"user_id", userID,
				"year", stats.Year,
				"month", stats.Month)
			s.emit(ctx, events.EventCacheHit, map[string]any{
				"user_id": userID,
				"year":    stats.Year,
				"month":   stats.Month,
			})
			return &cached, nil
		}
	}

	model := s.model
	if opts.Model != "" {
		model = opts.Model
	}

	resp, err := s.client.CreateChatCompletion(ctx, buildRequest(stats, model, opts))
	if err != nil && s.shouldFallBack(err, model) {
		s.logger.WarnContext(ctx, "falling back to secondary model",
			"user_id", userID,
			"primary_model", model,
			"fallback_model", s.fallbackModel,
			"error", err)
		s.emit(ctx, events.EventModelFallback, map[string]any{
			"primary_model":  model,
			"fallback_model": s.fallbackModel,
		})

		model = s.fallbackModel
		resp, err = s.client.CreateChatCompletion(ctx, buildRequest(stats, model, opts))
	}
	if err != nil {
		return nil, err
	}

	message, salvaged, err := parseResponse(resp, model, s.now())
	if salvaged {
		s.emit(ctx, events.EventParseFallback, map[string]any{
			"model": model,
		})
	}
	if err != nil {
		return nil, err
	}

	s.cache.store(userID, stats, *message)

	s.logger.InfoContext(ctx, "motivational message generated",
		"user_id", userID,
		"model", message.Model,
		"tone", message.Tone)

	return message, nil
}

// ClearCache removes every cached message belonging to the user, across all
// months. Used for explicit invalidation by operators and tests.
func (s *Service) ClearCache(userID uuid.UUID) {
	s.cache.clear(userID)
}

// TestConnection issues a minimal low-token request against the configured
// model and reports whether it succeeded, swallowing all errors. Used for
// configuration health checks at startup.
func (s *Service) TestConnection(ctx context.Context) bool {
	_, err := s.client.CreateChatCompletion(ctx, openrouter.ChatRequest{
		Model: s.model,
		Messages: []openrouter.ChatMessage{
			{Role: "user", Content: "Reply with the single word OK."},
		},
		MaxTokens: 8,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "connection test failed", "model", s.model, "error", err)
		return false
	}
	return true
}

// shouldFallBack reports whether the primary model's terminal failure should
// be escalated to the fallback model: rate limits (immediately, fail-fast)
// and retry-exhausted conditions. Non-retryable client errors, validation
// and parse failures never escalate.
func (s *Service) shouldFallBack(err error, model string) bool {
	if s.fallbackModel == "" || s.fallbackModel == model {
		return false
	}
	return openrouter.IsRateLimit(err) || openrouter.IsRetryExhausted(err)
}

// emit publishes a lifecycle event when an emitter is configured. Emission
// failures are logged and never affect generation.
func (s *Service) emit(ctx context.Context, eventType string, payload any) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewGenerationEvent(eventType, payload)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to build event", "error", err, "event_type", eventType)
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.DebugContext(ctx, "failed to emit event", "error", err, "event_type", eventType)
	}
}
