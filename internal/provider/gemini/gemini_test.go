package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachpad/learning-assist/internal/provider"
	"github.com/teachpad/learning-assist/internal/provider/gemini"
)

func TestGenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/gemini-2.5-pro:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var req provider.Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents, 1)
			assert.Equal(t, "Plan a lesson", req.Contents[0].Parts[0].Text)

			json.NewEncoder(w).Encode(provider.Response{
				Candidates: []provider.Candidate{{
					Content:      provider.Content{Parts: []provider.Part{{Text: "**Introduction** (5 min):"}}},
					FinishReason: "STOP",
				}},
				UsageMetadata: provider.UsageMetadata{TotalTokenCount: 42},
			})
		}))
		defer server.Close()

		client := gemini.NewClient("test-key")
		client.BaseURL = server.URL

		response, err := client.GenerateContent(ctx, "gemini-2.5-pro", provider.NewTextRequest("Plan a lesson"))
		require.NoError(t, err)
		assert.Equal(t, "**Introduction** (5 min):", response.Text())
		assert.Equal(t, 42, response.UsageMetadata.TotalTokenCount)
	})

	t.Run("Token limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(provider.Response{
				Candidates: []provider.Candidate{{
					Content:      provider.Content{Parts: []provider.Part{{Text: "partial"}}},
					FinishReason: "MAX_TOKENS",
				}},
			})
		}))
		defer server.Close()

		client := gemini.NewClient("test-key")
		client.BaseURL = server.URL

		response, err := client.GenerateContent(ctx, "gemini-2.5-pro", provider.NewTextRequest("Plan"))
		assert.ErrorIs(t, err, provider.ErrTokenLimit)
		require.NotNil(t, response)
		assert.Equal(t, "partial", response.Text())
	})

	t.Run("API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": {"message": "key not valid"}}`))
		}))
		defer server.Close()

		client := gemini.NewClient("test-key")
		client.BaseURL = server.URL

		_, err := client.GenerateContent(ctx, "gemini-2.5-pro", provider.NewTextRequest("Plan"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 403")
		assert.Contains(t, err.Error(), "key not valid")
	})

	t.Run("Missing key", func(t *testing.T) {
		client := gemini.NewClient("")
		_, err := client.GenerateContent(ctx, "gemini-2.5-pro", provider.NewTextRequest("Plan"))
		assert.Error(t, err)
	})
}
