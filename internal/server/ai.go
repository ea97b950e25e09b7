package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/teachpad/learning-assist/internal/core"
	"github.com/teachpad/learning-assist/internal/lesson"
	"github.com/teachpad/learning-assist/internal/provider"
	"github.com/teachpad/learning-assist/internal/store"
)

// aiHandler proxies one AI endpoint: it authenticates, rate-limits, expands
// the endpoint's prompt template from the request body, calls the selected
// provider, and records usage.
func (s *Server) aiHandler(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := s.authenticate(w, r)
		if claims == nil {
			return
		}

		// Fail open: a broken usage counter degrades the limit, not the service.
		count, err := s.store.DailyRequestCount(r.Context(), claims.Subject)
		if err != nil {
			core.CurrentLogger().Warnf("unable to check usage: %v", err)
			count = 0
		}
		if count >= s.config.ConfigFile.AI.MaxDailyRequests {
			writeError(w, http.StatusTooManyRequests, "daily request limit reached")
			return
		}

		var vars map[string]string
		if !decodeBody(w, r, &vars) {
			return
		}
		model := vars["model"]
		if model == "" {
			model = s.config.ConfigFile.AI.DefaultModel
		}
		delete(vars, "model")

		prompt, err := provider.BuildPrompt(endpoint, vars)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p, err := s.registry.ForModel(model)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		timeout := time.Duration(s.config.ConfigFile.AI.TimeoutSeconds) * time.Second
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		response, err := p.GenerateContent(ctx, model, provider.NewTextRequest(prompt))
		truncated := errors.Is(err, provider.ErrTokenLimit)
		if err != nil && !truncated {
			if errors.Is(err, context.DeadlineExceeded) {
				writeError(w, http.StatusGatewayTimeout, "provider timed out")
				return
			}
			core.CurrentLogger().Warnf("provider call failed: %v", err)
			writeError(w, http.StatusBadGateway, "provider request failed")
			return
		}

		tokens := 0
		text := ""
		if response != nil {
			tokens = response.UsageMetadata.TotalTokenCount
			text = response.Text()
		}
		usage := store.Usage{
			UserID:     claims.Subject,
			Endpoint:   endpoint + "-" + model,
			TokensUsed: tokens,
		}
		if err := s.store.TrackUsage(r.Context(), usage); err != nil {
			core.CurrentLogger().Warnf("unable to track usage: %v", err)
		}

		if truncated {
			// Return the partial output; the client decides whether to retry
			// with a shorter prompt.
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   "output token limit exceeded",
				"content": text,
			})
			return
		}

		payload := map[string]any{"content": text, "tokens_used": tokens}
		if endpoint == "generate-content" {
			payload["sections"] = lesson.Parse(text)
		}
		writeJSON(w, http.StatusOK, payload)
	}
}
