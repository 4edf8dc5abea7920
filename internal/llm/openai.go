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
)

// OpenAIClient implements Client against an OpenAI-compatible chat
// completions endpoint.
type OpenAIClient struct {
	client   *http.Client
	apiKey   string
	model    string
	endpoint string
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIChatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates an OpenAI-backed client. baseURL may point at any
// compatible server; empty means the official API.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	} else {
		endpoint = strings.TrimRight(endpoint, "/")
		if !strings.HasSuffix(endpoint, "/chat/completions") {
			if strings.HasSuffix(endpoint, "/v1") {
				endpoint += "/chat/completions"
			} else {
				endpoint += "/v1/chat/completions"
			}
		}
	}
	return &OpenAIClient{
		client:   &http.Client{Timeout: 90 * time.Second},
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
	}
}

// Generate sends one prompt and returns the first choice's text.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("openai api key is required: %w", ErrInvalidCredentials)
	}
	if strings.TrimSpace(c.model) == "" {
		return nil, fmt.Errorf("openai model is required: %w", ErrMalformedRequest)
	}

	body, err := json.Marshal(openAIChatRequest{
		Model: c.model,
		Messages: []openAIChatMessage{
			{Role: "user", Content: req.Prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", ErrMalformedRequest)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", ErrMalformedRequest)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %v: %w", err, ErrNetwork)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v: %w", err, ErrNetwork)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai request failed (%d): %s: %w",
			resp.StatusCode, strings.TrimSpace(string(raw)), classifyStatus(resp.StatusCode))
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v: %w", err, ErrMalformedResponse)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("openai returned no choices: %w", ErrMalformedResponse)
	}
	return &Response{Text: parsed.Choices[0].Message.Content}, nil
}
