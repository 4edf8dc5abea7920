// Package extractor turns raw Swift source text into normalized Fact
// records using the fixed pattern library. It never builds a syntax tree:
// extraction is a best-effort scan that yields partial results on malformed
// input instead of failing.
package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"stubgen/internal/pattern"
)

// Profile selects which pattern family an extraction run applies.
type Profile string

const (
	// ProfileDeclarations scans for function and property declarations.
	ProfileDeclarations Profile = "declarations"
	// ProfileViewElements scans for UI element construction sites.
	ProfileViewElements Profile = "viewElements"
)

// ErrEmptyInput is returned when the source text is empty or whitespace.
var ErrEmptyInput = errors.New("empty input")

// DefaultLookahead is the bounded window, in bytes, scanned past an element
// construction site to find attached identifiers and modifiers. Tunable via
// configuration; attachments beyond the window are deliberately missed.
const DefaultLookahead = 160

// Extractor applies the pattern library to source text.
type Extractor struct {
	lookahead int
}

// NewExtractor creates an extractor with the given lookahead window.
// Non-positive values fall back to DefaultLookahead.
func NewExtractor(lookahead int) *Extractor {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &Extractor{lookahead: lookahead}
}

// Extract scans the source with the chosen profile and returns the facts it
// discovered. It is a pure function of its input.
func (e *Extractor) Extract(source string, profile Profile) ([]Fact, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyInput
	}
	switch profile {
	case ProfileDeclarations:
		return e.extractDeclarations(source), nil
	case ProfileViewElements:
		return e.extractViewElements(source), nil
	default:
		return nil, fmt.Errorf("unsupported extraction profile: %s", profile)
	}
}

type locatedFact struct {
	fact   Fact
	offset int
}

// extractDeclarations runs the function pass and the property pass
// independently. A name participates in at most one fact per pass; the
// first occurrence wins. The merged result preserves source order.
func (e *Extractor) extractDeclarations(source string) []Fact {
	var located []locatedFact

	seenFuncs := map[string]bool{}
	for _, m := range pattern.FuncDecl.FindAllStringSubmatchIndex(source, -1) {
		name := group(source, m, 2)
		if name == "" || seenFuncs[name] {
			continue
		}
		seenFuncs[name] = true
		located = append(located, locatedFact{
			fact: Fact{
				Kind:     KindFunction,
				Name:     name,
				Type:     strings.TrimSpace(group(source, m, 4)),
				IsStatic: group(source, m, 1) != "",
			},
			offset: m[0],
		})
	}

	seenProps := map[string]bool{}
	for _, m := range pattern.PropertyDecl.FindAllStringSubmatchIndex(source, -1) {
		name := group(source, m, 2)
		if name == "" || seenProps[name] {
			continue
		}
		seenProps[name] = true
		located = append(located, locatedFact{
			fact: Fact{
				Kind:     KindProperty,
				Name:     name,
				Type:     strings.TrimSpace(group(source, m, 3)),
				IsStatic: group(source, m, 1) != "",
			},
			offset: m[0],
		})
	}

	sort.SliceStable(located, func(i, j int) bool {
		return located[i].offset < located[j].offset
	})
	facts := make([]Fact, 0, len(located))
	for _, lf := range located {
		facts = append(facts, lf.fact)
	}
	return facts
}

// elementPass pairs an element pattern with the kind it produces. The pass
// order below is a documented contract: the merged element list preserves
// it (buttons, inputs, text, toggles, links), not source order across
// categories.
type elementPass struct {
	re        *regexp.Regexp
	kind      Kind
	hasAction bool
}

var elementPasses = []elementPass{
	{pattern.ButtonCall, KindButton, true},
	{pattern.TextFieldCall, KindTextField, false},
	{pattern.SecureFieldCall, KindSecureField, false},
	{pattern.StaticTextCall, KindStaticText, false},
	{pattern.ToggleCall, KindToggle, false},
	{pattern.NavigationLinkCall, KindNavigationLink, true},
}

// extractViewElements isolates the body span when possible and runs the
// element passes over it. If isolation fails or yields nothing, the whole
// source is rescanned. Elements are not deduplicated: two buttons may share
// a label.
func (e *Extractor) extractViewElements(source string) []Fact {
	span, ok := pattern.BodySpan(source)
	if ok {
		if facts := e.scanElements(span); len(facts) > 0 {
			return facts
		}
	}
	return e.scanElements(source)
}

func (e *Extractor) scanElements(span string) []Fact {
	var facts []Fact
	for _, pass := range elementPasses {
		for _, m := range pass.re.FindAllStringSubmatchIndex(span, -1) {
			fact := Fact{
				Kind:      pass.kind,
				Name:      group(span, m, 1),
				HasAction: pass.hasAction,
			}
			e.attach(&fact, span, m[1])
			facts = append(facts, fact)
		}
	}
	return facts
}

// attach searches the bounded window past a construction site for a chained
// accessibility identifier and modifier invocations, associating them with
// the fact. Attachments chained beyond the window, or reached through
// indirection, are missed.
func (e *Extractor) attach(fact *Fact, span string, from int) {
	end := from + e.lookahead
	if end > len(span) {
		end = len(span)
	}
	window := span[from:end]

	if m := pattern.AccessibilityIdentifier.FindStringSubmatch(window); m != nil {
		fact.Identifier = m[1]
	}
	for _, m := range pattern.ModifierCall.FindAllStringSubmatch(window, -1) {
		name := m[1]
		if name == "accessibilityIdentifier" {
			continue
		}
		fact.Modifiers = append(fact.Modifiers, name)
	}
}

// group extracts a submatch by index from a FindAllStringSubmatchIndex
// match, tolerating absent optional groups.
func group(s string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}
