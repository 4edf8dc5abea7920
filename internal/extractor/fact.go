package extractor

import "strings"

// Kind classifies a discovered structural element.
type Kind string

const (
	KindFunction       Kind = "function"
	KindProperty       Kind = "property"
	KindButton         Kind = "button"
	KindTextField      Kind = "textField"
	KindSecureField    Kind = "secureField"
	KindStaticText     Kind = "staticText"
	KindToggle         Kind = "toggle"
	KindPicker         Kind = "picker"
	KindSlider         Kind = "slider"
	KindNavigationLink Kind = "navigationLink"
	KindList           Kind = "list"
)

const customPrefix = "custom:"

// CustomKind wraps an unrecognized element type name as a Kind.
func CustomKind(name string) Kind {
	return Kind(customPrefix + name)
}

// CustomName returns the wrapped type name and true when k is a custom kind.
func (k Kind) CustomName() (string, bool) {
	if strings.HasPrefix(string(k), customPrefix) {
		return strings.TrimPrefix(string(k), customPrefix), true
	}
	return "", false
}

// IsDeclaration reports whether k belongs to the declaration family.
func (k Kind) IsDeclaration() bool {
	return k == KindFunction || k == KindProperty
}

// Fact is one discovered structural element, normalized. Facts are value
// types and treated as immutable once produced.
type Fact struct {
	Kind       Kind
	Name       string   // declaration name or element label
	Type       string   // declared return/type token, empty when unknown
	IsStatic   bool     // meaningful only for function/property kinds
	Identifier string   // explicit test-automation identifier, if attached
	Modifiers  []string // modifier names found in the same lexical span
	HasAction  bool     // element triggers a side effect on interaction
}
