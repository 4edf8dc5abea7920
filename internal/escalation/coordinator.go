// Package escalation hands a failed or insufficient local analysis off to
// the external generative service and folds the result back into the local
// model shapes. The coordinator is the only place a local error may be
// recovered, and it only recovers via a fresh successful external result;
// it never fabricates one.
package escalation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stubgen/internal/llm"
	"stubgen/internal/model"
)

// DefaultTimeout is the hard deadline for one escalation rendezvous.
const DefaultTimeout = 30 * time.Second

// state models the two-phase lifecycle of one coordinator call. The
// transition to stateEscalated is terminal per call.
type state int

const (
	stateLocal state = iota
	stateEscalated
)

func (s state) String() string {
	if s == stateEscalated {
		return "escalated"
	}
	return "local"
}

// DeclarationOutcome is the result of a declaration escalation: either a
// structured model that re-enters the local templates, or a verbatim
// scaffold blob supplied by the service. Exactly one field is set.
type DeclarationOutcome struct {
	Model    *model.DeclarationModel
	Verbatim string
}

// ViewOutcome is the view-analysis counterpart of DeclarationOutcome.
type ViewOutcome struct {
	Model    *model.ViewModel
	Verbatim string
}

// Coordinator performs the blocking handoff to the generative service.
type Coordinator struct {
	client  llm.Client
	timeout time.Duration
	prompts PromptBuilder
}

// NewCoordinator wraps a client with the given rendezvous deadline.
// Non-positive timeouts fall back to DefaultTimeout.
func NewCoordinator(client llm.Client, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{client: client, timeout: timeout}
}

// RescueDeclarations escalates a failed declaration analysis. On any
// escalation failure the original local error is returned unchanged.
func (c *Coordinator) RescueDeclarations(ctx context.Context, source string, localErr error) (*DeclarationOutcome, error) {
	prompt := c.prompts.BuildDeclarationPrompt(source, reasonFor(localErr))
	text, err := c.invoke(ctx, prompt, "declarations", localErr)
	if err != nil {
		return nil, localErr
	}

	body, lang, fenced := llm.ExtractFencedBlock(text)
	if fenced && lang != "json" && lang != "" {
		return &DeclarationOutcome{Verbatim: body}, nil
	}
	m, err := parseDeclarationResponse(text)
	if err != nil {
		if fenced && lang == "" && !json.Valid([]byte(body)) {
			// An untagged fence that is not JSON is an opaque scaffold blob.
			return &DeclarationOutcome{Verbatim: body}, nil
		}
		logrus.WithError(err).Warn("escalation response unusable, surfacing local error")
		return nil, localErr
	}
	return &DeclarationOutcome{Model: m}, nil
}

// RescueView escalates a failed or empty view analysis. On any escalation
// failure the original local error is returned unchanged.
func (c *Coordinator) RescueView(ctx context.Context, source string, localErr error) (*ViewOutcome, error) {
	prompt := c.prompts.BuildViewPrompt(source, reasonFor(localErr))
	text, err := c.invoke(ctx, prompt, "view", localErr)
	if err != nil {
		return nil, localErr
	}

	body, lang, fenced := llm.ExtractFencedBlock(text)
	if fenced && lang != "json" && lang != "" {
		return &ViewOutcome{Verbatim: body}, nil
	}
	vm, err := parseViewResponse(text)
	if err != nil {
		if fenced && lang == "" && !json.Valid([]byte(body)) {
			// An untagged fence that is not JSON is an opaque scaffold blob.
			return &ViewOutcome{Verbatim: body}, nil
		}
		logrus.WithError(err).Warn("escalation response unusable, surfacing local error")
		return nil, localErr
	}
	return &ViewOutcome{Model: vm}, nil
}

// invoke is the single rendezvous point: one request, one blocking wait
// with a hard deadline, no retries and no mid-flight cancellation beyond
// the deadline itself.
func (c *Coordinator) invoke(ctx context.Context, prompt, profile string, localErr error) (string, error) {
	current := stateLocal
	requestID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"profile":    profile,
	})
	log.WithError(localErr).Info("escalating to generative service")
	current = stateEscalated

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		resp, err := c.client.Generate(ctx, llm.Request{Prompt: prompt})
		if err != nil {
			ch <- result{err: err}
			return
		}
		ch <- result{text: resp.Text}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			log.WithError(r.err).Warn("escalation request failed")
			return "", r.err
		}
		log.WithField("state", current).Info("escalation response received")
		return r.text, nil
	case <-ctx.Done():
		log.Warn("escalation deadline exceeded")
		return "", fmt.Errorf("escalation deadline exceeded: %w", ctx.Err())
	}
}

func reasonFor(err error) string {
	if err == nil {
		return "no structural facts were found"
	}
	return err.Error()
}
