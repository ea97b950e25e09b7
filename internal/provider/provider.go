// Package provider defines the AI content provider boundary. The content
// pipeline treats provider output as an opaque, already-resolved string;
// everything here is plumbing to obtain that string.
package provider

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTokenLimit reports a generation cut short by the output token limit.
	ErrTokenLimit = errors.New("output token limit exceeded")
)

// Request is the wire shape sent to providers. The Gemini format is the
// lingua franca; non-Gemini providers convert.
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type Response struct {
	Candidates    []Candidate   `json:"candidates"`
	UsageMetadata UsageMetadata `json:"usageMetadata"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type UsageMetadata struct {
	TotalTokenCount int `json:"totalTokenCount"`
}

// Text returns the first candidate's text, the opaque blob handed to the
// section parser.
func (r *Response) Text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// NewTextRequest wraps a single user prompt.
func NewTextRequest(prompt string) *Request {
	return &Request{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
	}
}

// Provider generates content for a given model.
type Provider interface {
	GenerateContent(ctx context.Context, model string, req *Request) (*Response, error)
}

// SupportedModels routes a model name to its provider name.
var SupportedModels = map[string]string{
	"gemini-2.5-pro":             "gemini",
	"claude-3-5-sonnet-20241022": "claude",
}

// Registry holds the configured providers by name.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(name string, p Provider) {
	r.providers[name] = p
}

// ForModel resolves the provider serving the given model name.
func (r *Registry) ForModel(model string) (Provider, error) {
	name, ok := SupportedModels[model]
	if !ok {
		return nil, fmt.Errorf("unsupported model: %s", model)
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}
