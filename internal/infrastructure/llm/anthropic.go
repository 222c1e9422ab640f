package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"GridironDigest/internal/ports"
)

const defaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"

// AnthropicProvider implements ports.Generator against the Anthropic
// Messages API.
type AnthropicProvider struct {
	endpoint  string
	model     string
	apiKey    string
	maxTokens int
	http      *http.Client
}

var _ ports.Generator = (*AnthropicProvider)(nil)

// NewAnthropicProvider builds the provider; an empty endpoint uses the
// production API.
func NewAnthropicProvider(endpoint, model, apiKey string, maxTokens int) *AnthropicProvider {
	if endpoint == "" {
		endpoint = defaultAnthropicEndpoint
	}
	return &AnthropicProvider{
		endpoint:  endpoint,
		model:     model,
		apiKey:    apiKey,
		maxTokens: maxTokens,
		http:      &http.Client{Timeout: 120 * time.Second},
	}
}

// Name identifies the provider in the registry and artifact metadata.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Generate sends one system prompt and user message and returns the raw text.
func (p *AnthropicProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("anthropic api key is not configured")
	}

	body, err := json.Marshal(map[string]any{
		"model":      p.model,
		"max_tokens": p.maxTokens,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call anthropic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("anthropic error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("anthropic returned empty content")
	}

	return parsed.Content[0].Text, nil
}
