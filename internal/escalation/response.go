package escalation

import (
	"encoding/json"
	"fmt"
	"strings"

	"stubgen/internal/extractor"
	"stubgen/internal/llm"
	"stubgen/internal/model"
)

// Remote mirrors of the local fact/model shapes. Field names follow the
// service contract; unknown fields are ignored, optional fields tolerate
// absence.
type remoteUnit struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Kind       string   `json:"kind"`
	Type       string   `json:"type"`
	IsStatic   bool     `json:"isStatic"`
	Identifier string   `json:"identifier"`
	Modifiers  []string `json:"modifiers"`
	HasAction  bool     `json:"hasAction"`
	Body       string   `json:"body"`
}

type remoteDeclarations struct {
	Subject string       `json:"subject"`
	Units   []remoteUnit `json:"units"`
}

type remoteStateVar struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type remoteView struct {
	Name               string            `json:"name"`
	Elements           []remoteUnit      `json:"elements"`
	StateVariables     []remoteStateVar  `json:"stateVariables"`
	EnvironmentObjects map[string]string `json:"environmentObjects"`
	IsNavigationView   bool              `json:"isNavigationView"`
	HasTabBar          bool              `json:"hasTabBar"`
	HasAlert           bool              `json:"hasAlert"`
	HasContextMenu     bool              `json:"hasContextMenu"`
}

func parseDeclarationResponse(text string) (*model.DeclarationModel, error) {
	var remote remoteDeclarations
	if err := json.Unmarshal([]byte(llm.StripFences(text)), &remote); err != nil {
		return nil, fmt.Errorf("failed to parse declaration response: %v: %w", err, llm.ErrMalformedResponse)
	}

	m := &model.DeclarationModel{Subject: remote.Subject}
	for _, unit := range remote.Units {
		name := firstNonEmpty(unit.Name, unit.Label)
		if name == "" {
			continue
		}
		kind := extractor.KindFunction
		if strings.EqualFold(unit.Kind, "property") {
			kind = extractor.KindProperty
		}
		m.Units = append(m.Units, extractor.Fact{
			Kind:     kind,
			Name:     name,
			Type:     strings.TrimSpace(unit.Type),
			IsStatic: unit.IsStatic,
		})
		if strings.TrimSpace(unit.Body) != "" {
			if m.AssistedBodies == nil {
				m.AssistedBodies = map[string]string{}
			}
			m.AssistedBodies[name] = unit.Body
		}
	}
	if len(m.Units) == 0 {
		return nil, fmt.Errorf("declaration response contained no units: %w", llm.ErrMalformedResponse)
	}
	return m, nil
}

func parseViewResponse(text string) (*model.ViewModel, error) {
	var remote remoteView
	if err := json.Unmarshal([]byte(llm.StripFences(text)), &remote); err != nil {
		return nil, fmt.Errorf("failed to parse view response: %v: %w", err, llm.ErrMalformedResponse)
	}
	if strings.TrimSpace(remote.Name) == "" {
		return nil, fmt.Errorf("view response has no name: %w", llm.ErrMalformedResponse)
	}

	vm := &model.ViewModel{
		Name:                  remote.Name,
		StateVariables:        map[string]string{},
		EnvironmentObjects:    remote.EnvironmentObjects,
		IsNavigationContainer: remote.IsNavigationView,
		HasTabContainer:       remote.HasTabBar,
		HasAlert:              remote.HasAlert,
		HasContextMenu:        remote.HasContextMenu,
	}
	if vm.EnvironmentObjects == nil {
		vm.EnvironmentObjects = map[string]string{}
	}
	for _, sv := range remote.StateVariables {
		if sv.Name != "" {
			vm.StateVariables[sv.Name] = sv.Type
		}
	}
	for _, el := range remote.Elements {
		label := firstNonEmpty(el.Label, el.Name)
		if label == "" {
			continue
		}
		vm.Elements = append(vm.Elements, extractor.Fact{
			Kind:       normalizeElementKind(el.Kind),
			Name:       label,
			Identifier: el.Identifier,
			Modifiers:  el.Modifiers,
			HasAction:  el.HasAction,
		})
	}
	if len(vm.Elements) == 0 {
		return nil, fmt.Errorf("view response contained no elements: %w", llm.ErrMalformedResponse)
	}
	return vm, nil
}

var elementKindsByName = map[string]extractor.Kind{
	"button":         extractor.KindButton,
	"textfield":      extractor.KindTextField,
	"securefield":    extractor.KindSecureField,
	"statictext":     extractor.KindStaticText,
	"text":           extractor.KindStaticText,
	"toggle":         extractor.KindToggle,
	"picker":         extractor.KindPicker,
	"slider":         extractor.KindSlider,
	"navigationlink": extractor.KindNavigationLink,
	"list":           extractor.KindList,
}

func normalizeElementKind(kind string) extractor.Kind {
	if k, ok := elementKindsByName[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return k
	}
	return extractor.CustomKind(strings.TrimSpace(kind))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
