package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/stridehq/stride-api/internal/events"
)

// Config carries the transport settings for the OpenRouter client.
type Config struct {
	// APIKey authenticates every request. Required; its absence is a
	// construction-time fault.
	APIKey string

	// BaseURL is the provider endpoint, e.g. "https://openrouter.ai/api/v1".
	BaseURL string

	// Timeout is the hard per-attempt timeout. Defaults to 30s.
	Timeout time.Duration

	// MaxRetries is the total number of attempts spent on retryable
	// conditions for a single model. Defaults to 3.
	MaxRetries int

	// RetryDelay is the base unit of the exponential backoff between
	// attempts (delay = RetryDelay * 2^attempt). Defaults to 1s.
	RetryDelay time.Duration

	// SiteURL and SiteName populate the HTTP-Referer and X-Title
	// attribution headers some providers require. Not used for security.
	SiteURL  string
	SiteName string
}

// Client performs chat-completion requests against an OpenAI-compatible
// endpoint with a bounded per-attempt timeout and per-status retry policy.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	emitter    events.EventEmitter
}

// NewClient creates a new Client from the given configuration. The emitter
// may be nil, in which case retry attempts are logged but not published as
// events.
func NewClient(cfg Config, logger *slog.Logger, emitter events.EventEmitter) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", ErrInvalidConfig)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger.With("component", "openrouter_client"),
		emitter:    emitter,
	}, nil
}

// attemptKind tags the outcome of a single transport attempt. The retry loop
// is an explicit state machine over this tag rather than error re-inspection
// at every level.
type attemptKind int

const (
	attemptSuccess attemptKind = iota
	attemptRetryable
	attemptTerminal
)

// attemptOutcome is the tagged result of one request attempt.
type attemptOutcome struct {
	kind     attemptKind
	resp     *ChatResponse
	err      error
	timedOut bool
}

// CreateChatCompletion sends the request, applying the retry policy:
//
//   - 429 responses are terminal immediately (no same-model retry) so the
//     caller can fail over to a different model.
//   - 5xx responses, timeouts and network failures are retried up to
//     MaxRetries total attempts with exponential backoff.
//   - Other 4xx responses are terminal immediately.
//
// After exhausting retries it returns ErrTimeout (wrapped in
// ErrRetriesExhausted) when the root cause was a timeout, otherwise the
// underlying failure wrapped in ErrRetriesExhausted. On success the decoded
// provider response is returned unchanged.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	var last attemptOutcome
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryDelay * (1 << uint(attempt-1))

			c.logger.WarnContext(ctx, "retrying language model request",
				"attempt", attempt+1,
				"max_attempts", c.cfg.MaxRetries,
				"model", req.Model,
				"delay", delay,
				"error", last.err)
			c.emit(ctx, events.EventRetryAttempt, map[string]any{
				"attempt": attempt + 1,
				"model":   req.Model,
			})

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		last = c.attempt(ctx, req.Model, body)
		switch last.kind {
		case attemptSuccess:
			return last.resp, nil
		case attemptTerminal:
			return nil, last.err
		case attemptRetryable:
			// Stop retrying when the caller is gone.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
	}

	if last.timedOut {
		return nil, fmt.Errorf("%w: %w", ErrRetriesExhausted, ErrTimeout)
	}
	return nil, fmt.Errorf("%w: %w", ErrRetriesExhausted, last.err)
}

// attempt performs a single POST to the chat-completions endpoint and
// classifies its outcome.
func (c *Client) attempt(ctx context.Context, model string, body []byte) attemptOutcome {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// A fresh request per attempt; the body reader is consumed on each send.
	httpReq, err := http.NewRequestWithContext(
		attemptCtx,
		http.MethodPost,
		c.cfg.BaseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return attemptOutcome{kind: attemptTerminal, err: fmt.Errorf("failed to build request: %w", err)}
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.SiteURL != "" {
		httpReq.Header.Set("HTTP-Referer", c.cfg.SiteURL)
	}
	if c.cfg.SiteName != "" {
		httpReq.Header.Set("X-Title", c.cfg.SiteName)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Timeouts are retryable exactly like transient network failures.
		if isTimeout(err) {
			return attemptOutcome{kind: attemptRetryable, err: ErrTimeout, timedOut: true}
		}
		return attemptOutcome{kind: attemptRetryable, err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.DebugContext(ctx, "failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp),
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			// Fail fast: the caller decides whether to fail over to a
			// different model. Retrying the same model would only burn the
			// rate-limit window further.
			return attemptOutcome{kind: attemptTerminal, err: apiErr, timedOut: false}
		case resp.StatusCode >= 500:
			return attemptOutcome{kind: attemptRetryable, err: apiErr}
		default:
			return attemptOutcome{kind: attemptTerminal, err: apiErr}
		}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return attemptOutcome{
			kind: attemptTerminal,
			err:  fmt.Errorf("failed to decode provider response: %w", err),
		}
	}

	return attemptOutcome{kind: attemptSuccess, resp: &chatResp}
}

// emit publishes a lifecycle event when an emitter is configured. Emission
// failures are logged and never affect the request.
func (c *Client) emit(ctx context.Context, eventType string, payload any) {
	if c.emitter == nil {
		return
	}

	event, err := events.NewGenerationEvent(eventType, payload)
	if err != nil {
		c.logger.DebugContext(ctx, "failed to build event", "error", err, "event_type", eventType)
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.DebugContext(ctx, "failed to emit event", "error", err, "event_type", eventType)
	}
}

// isTimeout reports whether err represents an exceeded timeout budget rather
// than some other network-level failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// readErrorMessage extracts the provider-supplied message from a non-success
// response body, falling back to the HTTP status text.
func readErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(raw) > 0 {
		var body errorBody
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil && body.Error.Message != "" {
			return body.Error.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}
