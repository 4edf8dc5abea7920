package model

import (
	"strings"

	"stubgen/internal/extractor"
	"stubgen/internal/pattern"
)

// BuildDeclarations assembles declaration facts into a DeclarationModel.
// It is total: empty input yields an empty model.
func BuildDeclarations(source string, facts []extractor.Fact) DeclarationModel {
	m := DeclarationModel{}
	if match := pattern.TypeDecl.FindStringSubmatch(source); match != nil {
		m.Subject = match[1]
	}
	for _, f := range facts {
		if f.Kind.IsDeclaration() {
			m.Units = append(m.Units, f)
		}
	}
	return m
}

// ValidateViewSource checks the structural preconditions for view analysis
// without touching element extraction. Callers run it before the element
// passes so that a non-view source never triggers them.
func ValidateViewSource(source string) error {
	if !pattern.FrameworkImport.MatchString(source) {
		return ErrNotAViewSource
	}
	if !pattern.ViewName.MatchString(source) {
		return ErrNameNotFound
	}
	if !pattern.HasBodyMarker(source) {
		return ErrMissingBody
	}
	return nil
}

// BuildView assembles element facts and source-level structure into a
// ViewModel. Structural flags are presence-tested against the full source,
// independently of element extraction.
func BuildView(source string, facts []extractor.Fact) (*ViewModel, error) {
	if err := ValidateViewSource(source); err != nil {
		return nil, err
	}

	vm := &ViewModel{
		Name:                  pattern.ViewName.FindStringSubmatch(source)[1],
		StateVariables:        stateVariables(source),
		EnvironmentObjects:    environmentObjects(source),
		Elements:              facts,
		IsNavigationContainer: pattern.HasNavigationContainer(source),
		HasTabContainer:       pattern.HasTabContainer(source),
		HasAlert:              pattern.HasAlertAttachment(source),
		HasContextMenu:        pattern.HasContextMenuAttachment(source),
	}

	if body, ok := pattern.BodySpan(source); ok {
		vm.RawBody = body
	} else {
		vm.RawBody = source
	}
	return vm, nil
}

func stateVariables(source string) map[string]string {
	vars := map[string]string{}
	for _, m := range pattern.StateVar.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if _, exists := vars[name]; exists {
			continue
		}
		declared := strings.TrimSpace(m[2])
		if declared == "" {
			literal := strings.TrimSpace(strings.SplitN(m[3], "//", 2)[0])
			declared = inferLiteralType(literal)
		}
		vars[name] = declared
	}
	return vars
}

func environmentObjects(source string) map[string]string {
	objs := map[string]string{}
	for _, m := range pattern.EnvironmentObjectVar.FindAllStringSubmatch(source, -1) {
		if _, exists := objs[m[1]]; exists {
			continue
		}
		objs[m[1]] = m[2]
	}
	return objs
}

// inferLiteralType guesses a declared type from an initializer literal when
// the annotation is absent. Unrecognized initializers yield "Any".
func inferLiteralType(literal string) string {
	switch {
	case literal == "true" || literal == "false":
		return "Bool"
	case strings.HasPrefix(literal, "\""):
		return "String"
	case isIntLiteral(literal):
		return "Int"
	case isDecimalLiteral(literal):
		return "Double"
	default:
		return "Any"
	}
}

func isIntLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isDecimalLiteral(s string) bool {
	dot := false
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '.' {
			if dot {
				return false
			}
			dot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return dot
}
