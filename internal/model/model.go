// Package model assembles extracted facts into the normalized, read-only
// aggregates consumed by the generator: a DeclarationModel for unit-test
// scaffolds or a ViewModel for UI-test scaffolds.
package model

import (
	"errors"

	"stubgen/internal/extractor"
)

// Model-building errors.
var (
	// ErrNotAViewSource indicates the source lacks the SwiftUI import.
	ErrNotAViewSource = errors.New("source is not a SwiftUI view")
	// ErrNameNotFound indicates no view-name pattern matched.
	ErrNameNotFound = errors.New("view name not found")
	// ErrMissingBody indicates the body declaration marker is absent
	// entirely. A marker that exists but cannot be brace-balanced is not
	// an error; extraction falls back to the whole source instead.
	ErrMissingBody = errors.New("view body declaration not found")
)

// DeclarationModel is the ordered set of function and property facts for
// one source unit. Names are unique per kind after deduplication.
type DeclarationModel struct {
	// Subject is the container type name, inferred from the first type
	// declaration in the source. May be empty.
	Subject string
	Units   []extractor.Fact
	// AssistedBodies maps a unit name to an externally supplied test
	// body, used verbatim by the generator when present.
	AssistedBodies map[string]string
}

// ViewModel is one analyzed SwiftUI view.
type ViewModel struct {
	Name               string
	StateVariables     map[string]string // name -> declared type
	EnvironmentObjects map[string]string // name -> type
	// Elements preserves the discovery order of the extraction passes
	// (buttons, inputs, text, toggles, links). Duplicate labels are kept.
	Elements              []extractor.Fact
	IsNavigationContainer bool
	HasTabContainer       bool
	HasAlert              bool
	HasContextMenu        bool
	// RawBody is the isolated body span used for element extraction, or
	// the whole source when isolation failed.
	RawBody string
}
