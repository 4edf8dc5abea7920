// Package pattern holds the fixed library of structural patterns used to
// extract facts from raw Swift source text. Every pattern is compiled at
// package init, so a malformed pattern is a build-time panic rather than a
// runtime error. All matchers are pure functions over a text span.
package pattern

import (
	"regexp"
	"strings"
)

// Declaration patterns. The static qualifier is captured as group 1 so the
// caller can tell whether a `static`/`class` token sits directly before the
// declaration keyword, as opposed to appearing anywhere else in the file.
var (
	// FuncDecl matches a Swift function declaration. Groups: 1 static
	// qualifier, 2 name, 3 parameter list, 4 return type token.
	FuncDecl = regexp.MustCompile(`(?m)^[ \t]*(?:@\w+(?:\([^)]*\))?[ \t]+)?(?:(?:public|private|internal|fileprivate|open|final|override|mutating)[ \t]+)*(?:(static|class)[ \t]+)?func[ \t]+(\w+)[ \t]*(?:<[^>]*>)?\(([^)]*)\)(?:[ \t]*(?:async[ \t]*)?(?:(?:re)?throws[ \t]*)?->[ \t]*([\w\[\]<>?,. ]+?))?[ \t]*\{`)

	// PropertyDecl matches a stored or computed property with an explicit
	// type annotation. Groups: 1 static qualifier, 2 name, 3 type.
	PropertyDecl = regexp.MustCompile(`(?m)^[ \t]*(?:@\w+(?:\([^)]*\))?[ \t]+)?(?:(?:public|private|internal|fileprivate|open|lazy|weak)(?:\(set\))?[ \t]+)*(?:(static|class)[ \t]+)?(?:var|let)[ \t]+(\w+)[ \t]*:[ \t]*([\w\[\]<>?.]+)`)

	// TypeDecl matches the container type declaration; its first match
	// names the subject of a declaration analysis.
	TypeDecl = regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|internal|fileprivate|open|final)[ \t]+)*(?:struct|class|enum|actor)[ \t]+(\w+)`)
)

// View construction-site patterns, one per element family. Each captures the
// quoted label as group 1.
var (
	ButtonCall         = regexp.MustCompile(`Button\s*\(\s*"([^"]*)"`)
	TextFieldCall      = regexp.MustCompile(`TextField\s*\(\s*"([^"]*)"`)
	SecureFieldCall    = regexp.MustCompile(`SecureField\s*\(\s*"([^"]*)"`)
	StaticTextCall     = regexp.MustCompile(`\bText\s*\(\s*"([^"]*)"\s*\)`)
	ToggleCall         = regexp.MustCompile(`Toggle\s*\(\s*"([^"]*)"`)
	NavigationLinkCall = regexp.MustCompile(`NavigationLink\s*\(\s*"([^"]*)"`)
)

// View structure patterns.
var (
	FrameworkImport = regexp.MustCompile(`(?m)^\s*import\s+SwiftUI\b`)
	ViewName        = regexp.MustCompile(`struct\s+(\w+)\s*:\s*(?:[\w.]+\s*,\s*)*(?:SwiftUI\.)?View\b`)
	BodyMarker      = regexp.MustCompile(`var\s+body\s*:\s*some\s+View\s*\{`)

	// StateVar groups: 1 name, 2 optional type annotation, 3 optional
	// initializer expression (rest of line).
	StateVar = regexp.MustCompile(`@State\s+(?:private\s+)?var\s+(\w+)(?:\s*:\s*([\w\[\]<>?.]+))?(?:\s*=\s*([^\n]+))?`)

	// EnvironmentObjectVar groups: 1 name, 2 type.
	EnvironmentObjectVar = regexp.MustCompile(`@EnvironmentObject\s+(?:private\s+)?var\s+(\w+)\s*:\s*([\w.]+)`)
)

// Attachment patterns, searched inside the bounded lookahead window that
// follows an element construction site.
var (
	AccessibilityIdentifier = regexp.MustCompile(`\.accessibilityIdentifier\s*\(\s*"([^"]*)"\s*\)`)
	ModifierCall            = regexp.MustCompile(`\.([a-zA-Z]\w*)\s*\(`)
)

// navigationMarkers are the known spellings of a navigation container.
var navigationMarkers = []string{"NavigationView", "NavigationStack", "NavigationSplitView"}

// HasNavigationContainer reports whether the source wraps content in any
// known navigation container.
func HasNavigationContainer(source string) bool {
	for _, marker := range navigationMarkers {
		if strings.Contains(source, marker) {
			return true
		}
	}
	return false
}

// HasTabContainer reports whether the source uses a tab container.
func HasTabContainer(source string) bool {
	return strings.Contains(source, "TabView")
}

// HasAlertAttachment reports whether an alert modifier is attached anywhere.
func HasAlertAttachment(source string) bool {
	return strings.Contains(source, ".alert(")
}

// HasContextMenuAttachment reports whether a context menu is attached.
func HasContextMenuAttachment(source string) bool {
	return strings.Contains(source, ".contextMenu")
}

// BodySpan isolates the text between the body declaration's opening brace
// and its matching close, using brace counting. It returns the inner span
// and true on success. ok is false when the marker is absent or the braces
// never balance; callers fall back to the whole source in that case.
func BodySpan(source string) (string, bool) {
	loc := BodyMarker.FindStringIndex(source)
	if loc == nil {
		return "", false
	}
	depth := 1
	start := loc[1] // just past the opening brace
	for i := start; i < len(source); i++ {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return source[start:i], true
			}
		}
	}
	return "", false
}

// HasBodyMarker reports whether the body declaration marker exists at all.
// Total absence is an error at model-building time, whereas a failure to
// balance braces merely triggers the whole-source fallback.
func HasBodyMarker(source string) bool {
	return BodyMarker.MatchString(source)
}
