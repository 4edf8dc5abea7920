package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"stubgen/internal/extractor"
	"stubgen/internal/model"
)

// ErrInvalidViewInfo is returned when the view model carries no name.
var ErrInvalidViewInfo = errors.New("view model has no name")

// elementQueries maps an element kind to the XCUIApplication query that
// locates it at runtime.
var elementQueries = map[extractor.Kind]string{
	extractor.KindButton:         "buttons",
	extractor.KindTextField:      "textFields",
	extractor.KindSecureField:    "secureTextFields",
	extractor.KindStaticText:     "staticTexts",
	extractor.KindToggle:         "switches",
	extractor.KindPicker:         "pickers",
	extractor.KindSlider:         "sliders",
	extractor.KindNavigationLink: "buttons",
	extractor.KindList:           "collectionViews",
}

func elementQuery(kind extractor.Kind) string {
	if q, ok := elementQueries[kind]; ok {
		return q
	}
	return "otherElements"
}

// RenderView renders a UI-test scaffold for one analyzed view. Sections are
// emitted in a fixed order: existence checks, input interaction, button
// taps, toggles, state-change guidance, navigation, and an identifier
// suggestions trailer.
func RenderView(vm *model.ViewModel) (string, error) {
	if vm == nil || vm.Name == "" {
		return "", ErrInvalidViewInfo
	}

	var b strings.Builder
	b.WriteString("import XCTest\n\n")
	fmt.Fprintf(&b, "final class %sUITests: XCTestCase {\n\n", vm.Name)
	b.WriteString("    private var app: XCUIApplication!\n\n")
	b.WriteString("    override func setUpWithError() throws {\n")
	b.WriteString("        continueAfterFailure = false\n")
	b.WriteString("        app = XCUIApplication()\n")
	b.WriteString("        app.launch()\n")
	b.WriteString("    }\n")

	writeExistenceTest(&b, vm)
	writeInputTest(&b, vm)
	writeButtonTest(&b, vm)
	writeToggleTest(&b, vm)
	writeStateChangeGuidance(&b, vm)
	writeNavigationTest(&b, vm)

	b.WriteString("}\n")

	writeIdentifierSuggestions(&b, vm)
	return b.String(), nil
}

func writeExistenceTest(b *strings.Builder, vm *model.ViewModel) {
	b.WriteString("\n    func testElementsExist() throws {\n")
	if len(vm.Elements) == 0 {
		b.WriteString("        // No elements found in the view body.\n")
		b.WriteString("        XCTAssertTrue(app.exists)\n")
		b.WriteString("    }\n")
		return
	}
	for _, el := range vm.Elements {
		id := effectiveIdentifier(el)
		if id == "" {
			continue
		}
		fmt.Fprintf(b, "        XCTAssertTrue(app.%s[\"%s\"].waitForExistence(timeout: 2))\n", elementQuery(el.Kind), id)
	}
	b.WriteString("    }\n")
}

// writeInputTest covers text and secure inputs. Secure inputs are tapped
// and typed into but never asserted for value equality: their rendered
// value is intentionally opaque.
func writeInputTest(b *strings.Builder, vm *model.ViewModel) {
	inputs := elementsOfKind(vm.Elements, extractor.KindTextField, extractor.KindSecureField)
	if len(inputs) == 0 {
		return
	}
	b.WriteString("\n    func testTextInput() throws {\n")
	names := newNameSet()
	for _, el := range inputs {
		varName := names.claim(swiftVarName(el.Name, "Field"))
		id := effectiveIdentifier(el)
		fmt.Fprintf(b, "        let %s = app.%s[\"%s\"]\n", varName, elementQuery(el.Kind), id)
		if el.Kind == extractor.KindSecureField {
			fmt.Fprintf(b, "        XCTAssertTrue(%s.exists)\n", varName)
			fmt.Fprintf(b, "        %s.tap()\n", varName)
			fmt.Fprintf(b, "        %s.typeText(\"secret value\")\n", varName)
		} else {
			fmt.Fprintf(b, "        %s.tap()\n", varName)
			fmt.Fprintf(b, "        %s.typeText(\"test input\")\n", varName)
			fmt.Fprintf(b, "        XCTAssertEqual(%s.value as? String, \"test input\")\n", varName)
		}
	}
	b.WriteString("    }\n")
}

func writeButtonTest(b *strings.Builder, vm *model.ViewModel) {
	var buttons []extractor.Fact
	for _, el := range vm.Elements {
		if el.Kind == extractor.KindButton && el.HasAction {
			buttons = append(buttons, el)
		}
	}
	if len(buttons) == 0 {
		return
	}
	b.WriteString("\n    func testButtonTaps() throws {\n")
	names := newNameSet()
	for _, el := range buttons {
		varName := names.claim(swiftVarName(el.Name, "Button"))
		fmt.Fprintf(b, "        let %s = app.buttons[\"%s\"]\n", varName, effectiveIdentifier(el))
		fmt.Fprintf(b, "        XCTAssertTrue(%s.exists)\n", varName)
		fmt.Fprintf(b, "        %s.tap()\n", varName)
	}
	b.WriteString("    }\n")
}

func writeToggleTest(b *strings.Builder, vm *model.ViewModel) {
	toggles := elementsOfKind(vm.Elements, extractor.KindToggle)
	if len(toggles) == 0 {
		return
	}
	b.WriteString("\n    func testToggles() throws {\n")
	names := newNameSet()
	for _, el := range toggles {
		varName := names.claim(swiftVarName(el.Name, "Toggle"))
		fmt.Fprintf(b, "        let %s = app.switches[\"%s\"]\n", varName, effectiveIdentifier(el))
		fmt.Fprintf(b, "        let %sBefore = %s.value as? String\n", varName, varName)
		fmt.Fprintf(b, "        %s.tap()\n", varName)
		fmt.Fprintf(b, "        XCTAssertNotEqual(%s.value as? String, %sBefore)\n", varName, varName)
	}
	b.WriteString("    }\n")
}

// writeStateChangeGuidance emits a best-effort guidance block for boolean
// state variables whose names appear in an element label or modifier list.
// Text matching cannot prove the causal link between state and UI, so the
// block carries comments rather than executable assertions.
func writeStateChangeGuidance(b *strings.Builder, vm *model.ViewModel) {
	linked := linkedBoolStates(vm)
	if len(linked) == 0 {
		return
	}
	b.WriteString("\n    func testStateDependentVisibility() throws {\n")
	b.WriteString("        // The following boolean state variables appear to drive parts of\n")
	b.WriteString("        // this view. Interact with the controls bound to them and assert\n")
	b.WriteString("        // the dependent elements appear or disappear.\n")
	for _, name := range linked {
		fmt.Fprintf(b, "        // - @State %s: Bool\n", name)
	}
	b.WriteString("    }\n")
}

func writeNavigationTest(b *strings.Builder, vm *model.ViewModel) {
	if !vm.IsNavigationContainer {
		return
	}
	links := elementsOfKind(vm.Elements, extractor.KindNavigationLink)
	if len(links) == 0 {
		return
	}
	b.WriteString("\n    func testNavigation() throws {\n")
	names := newNameSet()
	for _, el := range links {
		varName := names.claim(swiftVarName(el.Name, "Link"))
		fmt.Fprintf(b, "        let %s = app.buttons[\"%s\"]\n", varName, effectiveIdentifier(el))
		fmt.Fprintf(b, "        %s.tap()\n", varName)
		b.WriteString("        XCTAssertTrue(app.navigationBars.element.waitForExistence(timeout: 2))\n")
		b.WriteString("        app.navigationBars.buttons.element(boundBy: 0).tap()\n")
	}
	b.WriteString("    }\n")
}

// writeIdentifierSuggestions appends a trailing comment block enumerating
// every element that lacks an explicit accessibility identifier, paired
// with the derived suggestion.
func writeIdentifierSuggestions(b *strings.Builder, vm *model.ViewModel) {
	var missing []extractor.Fact
	for _, el := range vm.Elements {
		if el.Identifier == "" {
			missing = append(missing, el)
		}
	}
	if len(missing) == 0 {
		return
	}
	b.WriteString("\n// MARK: - Accessibility identifier suggestions\n")
	b.WriteString("//\n")
	b.WriteString("// The elements below have no explicit accessibility identifier. Adding\n")
	b.WriteString("// one makes the generated queries stable across label changes:\n")
	for _, el := range missing {
		fmt.Fprintf(b, "//   %s %q: .accessibilityIdentifier(%q)\n", el.Kind, el.Name, DeriveIdentifier(el.Name, el.Kind))
	}
}

func elementsOfKind(elements []extractor.Fact, kinds ...extractor.Kind) []extractor.Fact {
	var out []extractor.Fact
	for _, el := range elements {
		for _, k := range kinds {
			if el.Kind == k {
				out = append(out, el)
				break
			}
		}
	}
	return out
}

// linkedBoolStates returns the boolean state variables referenced by some
// element label or modifier, sorted for deterministic output.
func linkedBoolStates(vm *model.ViewModel) []string {
	var linked []string
	for name, typ := range vm.StateVariables {
		if typ != "Bool" {
			continue
		}
		needle := strings.ToLower(name)
		for _, el := range vm.Elements {
			if strings.Contains(strings.ToLower(el.Name), needle) || containsFold(el.Modifiers, needle) {
				linked = append(linked, name)
				break
			}
		}
	}
	sort.Strings(linked)
	return linked
}

func containsFold(items []string, needle string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}

// swiftVarName builds a camelCase Swift variable name from an element label
// plus a kind suffix, e.g. "Email address" -> "emailAddressField".
func swiftVarName(label, suffix string) string {
	words := strings.Fields(strings.ToLower(label))
	if len(words) == 0 {
		return "element" + suffix
	}
	var b strings.Builder
	for i, word := range words {
		word = sanitizeWord(word)
		if word == "" {
			continue
		}
		if i == 0 {
			b.WriteString(word)
		} else {
			b.WriteString(capitalize(word))
		}
	}
	if b.Len() == 0 {
		return "element" + suffix
	}
	return b.String() + suffix
}

func sanitizeWord(word string) string {
	var b strings.Builder
	for _, r := range word {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nameSet disambiguates generated variable names within one test function.
type nameSet map[string]int

func newNameSet() nameSet { return nameSet{} }

func (n nameSet) claim(name string) string {
	n[name]++
	if c := n[name]; c > 1 {
		return fmt.Sprintf("%s%d", name, c)
	}
	return name
}
