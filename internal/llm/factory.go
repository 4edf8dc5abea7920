package llm

import (
	"context"
	"fmt"
	"strings"
)

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewClient creates the configured provider client. The provider name is
// case-insensitive; empty defaults to gemini.
func NewClient(ctx context.Context, opts Options) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiClient(ctx, opts.APIKey, opts.Model)
	case "openai":
		return NewOpenAIClient(opts.APIKey, opts.Model, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
}
