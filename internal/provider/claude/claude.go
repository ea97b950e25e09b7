// Package claude implements the provider boundary for the Anthropic
// Messages API, converting to and from the Gemini wire shape used by the
// rest of the system.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/teachpad/learning-assist/internal/provider"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"

	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
)

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

// Anthropic wire types.

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) GenerateContent(ctx context.Context, model string, req *provider.Request) (*provider.Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("claude: API key not configured")
	}

	body, err := json.Marshal(convertRequest(model, req))
	if err != nil {
		return nil, fmt.Errorf("claude: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("claude: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("claude: request failed: %w", err)
	}
	defer res.Body.Close()

	var apiResponse response
	if err := json.NewDecoder(res.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("claude: decoding response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		msg := ""
		if apiResponse.Error != nil {
			msg = apiResponse.Error.Message
		}
		return nil, fmt.Errorf("claude: status %d: %s", res.StatusCode, msg)
	}

	converted := convertResponse(&apiResponse)
	if apiResponse.StopReason == "max_tokens" {
		return converted, provider.ErrTokenLimit
	}
	return converted, nil
}

// convertRequest maps the Gemini wire shape to an Anthropic messages call.
func convertRequest(model string, req *provider.Request) *request {
	var messages []message
	for _, content := range req.Contents {
		role := "user"
		if content.Role != "" && content.Role != "user" {
			role = "assistant"
		}
		for _, part := range content.Parts {
			if part.Text == "" {
				continue
			}
			messages = append(messages, message{Role: role, Content: part.Text})
		}
	}

	maxTokens := defaultMaxTokens
	temperature := defaultTemperature
	if req.GenerationConfig != nil {
		if req.GenerationConfig.MaxOutputTokens > 0 {
			maxTokens = req.GenerationConfig.MaxOutputTokens
		}
		if req.GenerationConfig.Temperature > 0 {
			temperature = req.GenerationConfig.Temperature
		}
	}

	return &request{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// convertResponse maps an Anthropic response back into the Gemini candidate
// shape. stop_reason max_tokens becomes finishReason MAX_TOKENS; other stop
// reasons map to STOP. Token usage is the input+output sum.
func convertResponse(res *response) *provider.Response {
	text := ""
	if len(res.Content) > 0 {
		text = res.Content[0].Text
	}
	finishReason := "STOP"
	if res.StopReason == "max_tokens" {
		finishReason = "MAX_TOKENS"
	}
	return &provider.Response{
		Candidates: []provider.Candidate{{
			Content: provider.Content{
				Parts: []provider.Part{{Text: text}},
			},
			FinishReason: finishReason,
		}},
		UsageMetadata: provider.UsageMetadata{
			TotalTokenCount: res.Usage.InputTokens + res.Usage.OutputTokens,
		},
	}
}
