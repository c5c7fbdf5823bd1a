package motivation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/platform/openrouter"
)

// Exercises the service composed with the real transport client: a provider
// that keeps answering 500 must see MaxRetries attempts on the primary
// model, then MaxRetries more on the fallback model, and the provider's
// error message must survive to the caller.
func TestGenerateExhaustsRetriesOnBothModels(t *testing.T) {
	var mu sync.Mutex
	var models []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		mu.Lock()
		models = append(models, body.Model)
		mu.Unlock()

		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "upstream worker crashed"}}`))
	}))
	defer server.Close()

	client, err := openrouter.NewClient(openrouter.Config{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Timeout:    time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}, discardLogger(), nil)
	require.NoError(t, err)

	svc, err := NewService(client, testMotivationConfig(), discardLogger(), nil)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), uuid.New(), testStats(6, 2025, 5), domain.GenerationOptions{})
	require.Error(t, err)
	assert.True(t, openrouter.IsRetryExhausted(err))

	var apiErr *openrouter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "upstream worker crashed", apiErr.Message)

	cfg := testMotivationConfig()
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, models, 6)
	assert.Equal(t, []string{
		cfg.Model, cfg.Model, cfg.Model,
		cfg.FallbackModel, cfg.FallbackModel, cfg.FallbackModel,
	}, models)
}
