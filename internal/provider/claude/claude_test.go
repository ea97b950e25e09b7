package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachpad/learning-assist/internal/provider"
	"github.com/teachpad/learning-assist/internal/provider/claude"
)

func TestGenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Request and response conversion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "claude-3-5-sonnet-20241022", req["model"])
			assert.Equal(t, float64(4096), req["max_tokens"])
			assert.Equal(t, 0.7, req["temperature"])
			messages := req["messages"].([]any)
			require.Len(t, messages, 1)
			first := messages[0].(map[string]any)
			assert.Equal(t, "user", first["role"])
			assert.Equal(t, "Plan a lesson", first["content"])

			w.Write([]byte(`{
				"content": [{"text": "**Introduction** (5 min):"}],
				"stop_reason": "end_turn",
				"usage": {"input_tokens": 10, "output_tokens": 32}
			}`))
		}))
		defer server.Close()

		client := claude.NewClient("test-key")
		client.BaseURL = server.URL

		response, err := client.GenerateContent(ctx, "claude-3-5-sonnet-20241022", provider.NewTextRequest("Plan a lesson"))
		require.NoError(t, err)
		assert.Equal(t, "**Introduction** (5 min):", response.Text())
		assert.Equal(t, "STOP", response.Candidates[0].FinishReason)
		assert.Equal(t, 42, response.UsageMetadata.TotalTokenCount)
	})

	t.Run("Token limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"content": [{"text": "partial"}],
				"stop_reason": "max_tokens",
				"usage": {"input_tokens": 10, "output_tokens": 4096}
			}`))
		}))
		defer server.Close()

		client := claude.NewClient("test-key")
		client.BaseURL = server.URL

		response, err := client.GenerateContent(ctx, "claude-3-5-sonnet-20241022", provider.NewTextRequest("Plan"))
		assert.ErrorIs(t, err, provider.ErrTokenLimit)
		require.NotNil(t, response)
		assert.Equal(t, "partial", response.Text())
		assert.Equal(t, "MAX_TOKENS", response.Candidates[0].FinishReason)
	})

	t.Run("API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": {"message": "invalid x-api-key"}}`))
		}))
		defer server.Close()

		client := claude.NewClient("test-key")
		client.BaseURL = server.URL

		_, err := client.GenerateContent(ctx, "claude-3-5-sonnet-20241022", provider.NewTextRequest("Plan"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.Contains(t, err.Error(), "invalid x-api-key")
	})

	t.Run("Generation config overrides defaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, float64(1024), req["max_tokens"])
			assert.Equal(t, 0.2, req["temperature"])
			w.Write([]byte(`{"content": [{"text": "ok ok ok"}], "stop_reason": "end_turn", "usage": {}}`))
		}))
		defer server.Close()

		client := claude.NewClient("test-key")
		client.BaseURL = server.URL

		req := provider.NewTextRequest("Plan")
		req.GenerationConfig = &provider.GenerationConfig{Temperature: 0.2, MaxOutputTokens: 1024}
		_, err := client.GenerateContent(ctx, "claude-3-5-sonnet-20241022", req)
		require.NoError(t, err)
	})
}
