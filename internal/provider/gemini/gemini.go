// Package gemini implements the provider boundary for the Google
// Generative Language REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/teachpad/learning-assist/internal/provider"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Keep the client timeout under the 80s gateway timeout upstream callers face.
const defaultTimeout = 80 * time.Second

type Client struct {
	// Override in tests to use a mock server
	BaseURL string

	apiKey string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) GenerateContent(ctx context.Context, model string, req *provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: encoding request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/%s:generateContent?key=%s", c.BaseURL, model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		return nil, fmt.Errorf("gemini: status %d: %s", res.StatusCode, apiErr.Error.Message)
	}

	var response provider.Response
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("gemini: decoding response: %w", err)
	}

	if len(response.Candidates) > 0 && response.Candidates[0].FinishReason == "MAX_TOKENS" {
		return &response, provider.ErrTokenLimit
	}
	return &response, nil
}
