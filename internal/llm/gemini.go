package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient implements Client using Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required: %w", ErrInvalidCredentials)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate sends one prompt and returns the first candidate's text.
func (g *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates: %w", ErrMalformedResponse)
	}
	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("gemini returned empty text: %w", ErrMalformedResponse)
	}
	return &Response{Text: text}, nil
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini request failed: %v: %w", err, classifyStatus(apiErr.Code))
	}
	return fmt.Errorf("gemini request failed: %v: %w", err, ErrNetwork)
}

// classifyStatus maps an HTTP status code to a boundary error kind.
func classifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrInvalidCredentials
	case status == 429:
		return ErrRateLimited
	case status >= 400 && status < 500:
		return ErrMalformedRequest
	default:
		return ErrNetwork
	}
}
