// Package pipeline wires extraction, model building, and generation into
// the two analysis operations the host integration consumes. It is also
// where a local failure is intercepted and escalated.
package pipeline

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"stubgen/internal/escalation"
	"stubgen/internal/extractor"
	"stubgen/internal/generator"
	"stubgen/internal/model"
)

// Service runs the analysis pipeline. Each call is independent and
// stateless; a Service is safe for concurrent use across inputs.
type Service struct {
	extractor   *extractor.Extractor
	coordinator *escalation.Coordinator // nil disables escalation
}

// NewService builds a pipeline service. coordinator may be nil, in which
// case local failures surface directly.
func NewService(ext *extractor.Extractor, coordinator *escalation.Coordinator) *Service {
	return &Service{extractor: ext, coordinator: coordinator}
}

// GenerateUnitTests produces an XCTest scaffold for the declarations in the
// given Swift source.
func (s *Service) GenerateUnitTests(ctx context.Context, source string) (string, error) {
	facts, err := s.extractor.Extract(source, extractor.ProfileDeclarations)
	if err == nil && len(facts) > 0 {
		return generator.RenderDeclarations(model.BuildDeclarations(source, facts)), nil
	}

	if s.coordinator == nil {
		if err != nil {
			return "", err
		}
		// Zero declarations with no escalation path: render the empty,
		// syntactically closed scaffold.
		return generator.RenderDeclarations(model.BuildDeclarations(source, nil)), nil
	}

	outcome, escErr := s.coordinator.RescueDeclarations(ctx, source, err)
	if escErr != nil {
		return "", escErr
	}
	if outcome == nil {
		// Escalation failed without a local error to surface (the local
		// result was merely empty): fall back to the empty local render.
		return generator.RenderDeclarations(model.BuildDeclarations(source, nil)), nil
	}
	if outcome.Verbatim != "" {
		return outcome.Verbatim, nil
	}
	logrus.WithField("units", len(outcome.Model.Units)).Debug("rendering escalated declaration model")
	return generator.RenderDeclarations(*outcome.Model), nil
}

// GenerateUITests produces an XCUITest scaffold for the SwiftUI view in the
// given source.
func (s *Service) GenerateUITests(ctx context.Context, source string) (string, error) {
	vm, err := s.analyzeView(source)
	if err == nil && len(vm.Elements) > 0 {
		return generator.RenderView(vm)
	}

	if s.coordinator == nil {
		if err != nil {
			return "", err
		}
		// Zero elements with no escalation path: render the scaffold with
		// its explicit no-elements marker.
		return generator.RenderView(vm)
	}

	outcome, escErr := s.coordinator.RescueView(ctx, source, err)
	if escErr != nil {
		return "", escErr
	}
	if outcome == nil {
		if vm != nil {
			return generator.RenderView(vm)
		}
		return "", err
	}
	if outcome.Verbatim != "" {
		return outcome.Verbatim, nil
	}
	logrus.WithField("elements", len(outcome.Model.Elements)).Debug("rendering escalated view model")
	return generator.RenderView(outcome.Model)
}

// analyzeView validates the source shape before any element pass runs, so
// a non-view source never triggers extraction. Empty input is rejected
// before any pattern is consulted.
func (s *Service) analyzeView(source string) (*model.ViewModel, error) {
	if strings.TrimSpace(source) == "" {
		return nil, extractor.ErrEmptyInput
	}
	if err := model.ValidateViewSource(source); err != nil {
		return nil, err
	}
	facts, err := s.extractor.Extract(source, extractor.ProfileViewElements)
	if err != nil {
		return nil, err
	}
	return model.BuildView(source, facts)
}
