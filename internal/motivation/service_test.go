package motivation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/config"
	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/events"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
)

// stubClient implements CompletionClient, recording every request and
// replying from a scripted queue of outcomes.
type stubClient struct {
	mu       sync.Mutex
	requests []openrouter.ChatRequest
	script   []stubOutcome
}

type stubOutcome struct {
	resp *openrouter.ChatResponse
	err  error
}

func (c *stubClient) CreateChatCompletion(
	ctx context.Context,
	req openrouter.ChatRequest,
) (*openrouter.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if len(c.script) == 0 {
		return chatResponse(`{"message": "Keep it up!", "tone": "encouraging"}`), nil
	}
	out := c.script[0]
	c.script = c.script[1:]
	return out.resp, out.err
}

func (c *stubClient) calls() []openrouter.ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]openrouter.ChatRequest(nil), c.requests...)
}

// captureHandler records emitted event types.
type captureHandler struct {
	mu    sync.Mutex
	types []string
}

func (h *captureHandler) HandleEvent(ctx context.Context, event *events.GenerationEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.types = append(h.types, event.Type)
	return nil
}

func (h *captureHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.types...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMotivationConfig() config.MotivationConfig {
	return config.MotivationConfig{
		Enabled:         true,
		APIKey:          "test-key",
		Model:           "openai/gpt-4o-mini",
		FallbackModel:   "meta-llama/llama-3.1-8b-instruct",
		CacheTTLMinutes: 15,
	}
}

func newTestService(t *testing.T, client *stubClient) (*Service, *captureHandler) {
	t.Helper()

	logger := discardLogger()
	handler := &captureHandler{}
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(handler)

	svc, err := NewService(client, testMotivationConfig(), logger, emitter)
	require.NoError(t, err)
	return svc, handler
}

func TestNewServiceValidation(t *testing.T) {
	logger := discardLogger()

	_, err := NewService(nil, testMotivationConfig(), logger, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := testMotivationConfig()
	cfg.Model = ""
	_, err = NewService(&stubClient{}, cfg, logger, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateHappyPathAndCacheHit(t *testing.T) {
	client := &stubClient{}
	svc, handler := newTestService(t, client)

	userID := uuid.New()
	stats := testStats(6, 2025, 5)

	first, err := svc.Generate(context.Background(), userID, stats, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Keep it up!", first.Message)
	assert.False(t, first.Cached)

	second, err := svc.Generate(context.Background(), userID, stats, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, first.Message, second.Message)
	assert.True(t, second.Cached)

	assert.Len(t, client.calls(), 1, "second call must be served from cache")
	assert.Contains(t, handler.seen(), events.EventCacheHit)
}

func TestGenerateBypassCache(t *testing.T) {
	client := &stubClient{}
	svc, _ := newTestService(t, client)

	userID := uuid.New()
	stats := testStats(6, 2025, 5)

	_, err := svc.Generate(context.Background(), userID, stats, domain.GenerationOptions{})
	require.NoError(t, err)

	msg, err := svc.Generate(context.Background(), userID, stats, domain.GenerationOptions{BypassCache: true})
	require.NoError(t, err)
	assert.False(t, msg.Cached)

	assert.Len(t, client.calls(), 2)
}

func TestGenerateValidatesStatsFirst(t *testing.T) {
	client := &stubClient{}
	svc, _ := newTestService(t, client)

	stats := testStats(13, 2025, 5) // month out of range

	_, err := svc.Generate(context.Background(), uuid.New(), stats, domain.GenerationOptions{})
	require.ErrorIs(t, err, domain.ErrValidation)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "month", validationErr.Field)

	assert.Empty(t, client.calls(), "invalid stats must not reach the provider")
}

func TestGenerateFallsBackOnRateLimit(t *testing.T) {
	client := &stubClient{script: []stubOutcome{
		{err: &openrouter.APIError{StatusCode: http.StatusTooManyRequests, Message: "rate limited"}},
		{resp: chatResponse(`{"message": "Fallback says hi", "tone": "encouraging"}`)},
	}}
	svc, handler := newTestService(t, client)

	msg, err := svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Fallback says hi", msg.Message)

	calls := client.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "openai/gpt-4o-mini", calls[0].Model)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", calls[1].Model)
	assert.Contains(t, handler.seen(), events.EventModelFallback)
}

func TestGenerateFallsBackOnRetriesExhausted(t *testing.T) {
	client := &stubClient{script: []stubOutcome{
		{err: openrouter.ErrRetriesExhausted},
		{resp: chatResponse(`{"message": "Fallback says hi", "tone": "encouraging"}`)},
	}}
	svc, _ := newTestService(t, client)

	msg, err := svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Fallback says hi", msg.Message)
	assert.Len(t, client.calls(), 2)
}

func TestGenerateNoFallbackOnClientError(t *testing.T) {
	apiErr := &openrouter.APIError{StatusCode: http.StatusBadRequest, Message: "bad request"}
	client := &stubClient{script: []stubOutcome{{err: apiErr}}}
	svc, handler := newTestService(t, client)

	_, err := svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{})
	require.Error(t, err)

	var gotErr *openrouter.APIError
	require.ErrorAs(t, err, &gotErr)
	assert.Equal(t, http.StatusBadRequest, gotErr.StatusCode)

	assert.Len(t, client.calls(), 1, "client errors must not escalate to the fallback model")
	assert.NotContains(t, handler.seen(), events.EventModelFallback)
}

func TestGenerateBothModelsFail(t *testing.T) {
	client := &stubClient{script: []stubOutcome{
		{err: &openrouter.APIError{StatusCode: http.StatusTooManyRequests, Message: "rate limited"}},
		{err: openrouter.ErrRetriesExhausted},
	}}
	svc, _ := newTestService(t, client)

	_, err := svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{})
	require.ErrorIs(t, err, openrouter.ErrRetriesExhausted)
	assert.Len(t, client.calls(), 2, "the fallback model is tried exactly once")
}

func TestGenerateEmitsParseFallback(t *testing.T) {
	content := "Here you go:\n```json\n{\"message\": \"Salvaged!\", \"tone\": \"encouraging\"}\n```"
	client := &stubClient{script: []stubOutcome{{resp: chatResponse(content)}}}
	svc, handler := newTestService(t, client)

	msg, err := svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Salvaged!", msg.Message)
	assert.Contains(t, handler.seen(), events.EventParseFallback)
}

func TestGenerateModelOverride(t *testing.T) {
	client := &stubClient{}
	svc, _ := newTestService(t, client)

	_, err := svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{
		Model: "custom/model",
	})
	require.NoError(t, err)

	calls := client.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "custom/model", calls[0].Model)
}

func TestClearCacheForcesRegeneration(t *testing.T) {
	client := &stubClient{}
	svc, _ := newTestService(t, client)

	userID := uuid.New()
	stats := testStats(6, 2025, 5)

	_, err := svc.Generate(context.Background(), userID, stats, domain.GenerationOptions{})
	require.NoError(t, err)

	svc.ClearCache(userID)

	msg, err := svc.Generate(context.Background(), userID, stats, domain.GenerationOptions{})
	require.NoError(t, err)
	assert.False(t, msg.Cached)
	assert.Len(t, client.calls(), 2)
}

func TestTestConnection(t *testing.T) {
	client := &stubClient{}
	svc, _ := newTestService(t, client)
	assert.True(t, svc.TestConnection(context.Background()))

	failing := &stubClient{script: []stubOutcome{{err: openrouter.ErrTimeout}}}
	svc2, _ := newTestService(t, failing)
	assert.False(t, svc2.TestConnection(context.Background()))
}
