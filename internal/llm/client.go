// Package llm is the boundary to the external generative service. Clients
// are stateless request/response adapters; they know nothing about facts,
// models, or templates.
package llm

import (
	"context"
	"errors"
)

// Boundary error kinds. Each maps to a distinct user-facing message in the
// host integration, so they must stay distinguishable via errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrMalformedRequest   = errors.New("malformed request")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrNetwork            = errors.New("network failure")
)

// Request carries the prompt for one generation call.
type Request struct {
	Prompt string
}

// Response carries the raw text of one generation result.
type Response struct {
	Text string
}

// Client generates text from a prompt. Implementations must honor context
// cancellation and return errors wrapping one of the boundary kinds above.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
