package generator

import (
	"strings"

	"stubgen/internal/extractor"
)

// identifierSuffixes keys the derived-identifier suffix by element kind.
var identifierSuffixes = map[extractor.Kind]string{
	extractor.KindButton:         "_button",
	extractor.KindTextField:      "_field",
	extractor.KindSecureField:    "_sf",
	extractor.KindStaticText:     "_text",
	extractor.KindToggle:         "_toggle",
	extractor.KindPicker:         "_picker",
	extractor.KindSlider:         "_slider",
	extractor.KindNavigationLink: "_link",
	extractor.KindList:           "_list",
}

// DeriveIdentifier builds a suggested accessibility identifier from an
// element label: first character of each lower-cased word, joined, plus a
// kind suffix. The derivation is deterministic and purely a display
// convenience; two elements with the same label and kind collide by design.
func DeriveIdentifier(label string, kind extractor.Kind) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(label)) {
		b.WriteString(string([]rune(word)[0]))
	}
	if suffix, ok := identifierSuffixes[kind]; ok {
		return b.String() + suffix
	}
	if name, ok := kind.CustomName(); ok {
		return b.String() + "_" + strings.ToLower(name)
	}
	return b.String() + "_" + strings.ToLower(string(kind))
}

// effectiveIdentifier prefers an explicit identifier and falls back to the
// derived one.
func effectiveIdentifier(f extractor.Fact) string {
	if f.Identifier != "" {
		return f.Identifier
	}
	return DeriveIdentifier(f.Name, f.Kind)
}
