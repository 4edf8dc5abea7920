// Package generator renders normalized models into XCTest scaffold source.
// Output is intentionally incomplete: it is structurally well-formed test
// code meant for a human to finish, not code that is guaranteed to compile
// against the project under test.
package generator

import (
	"fmt"
	"strings"

	"stubgen/internal/extractor"
	"stubgen/internal/model"
)

// RenderDeclarations renders one test function per declared unit. It is
// total: a model with zero units yields a syntactically closed, empty test
// class.
func RenderDeclarations(m model.DeclarationModel) string {
	subject := m.Subject
	className := "ScaffoldTests"
	if subject != "" {
		className = subject + "Tests"
	}

	var b strings.Builder
	b.WriteString("import XCTest\n")
	b.WriteString("@testable import App\n\n")
	fmt.Fprintf(&b, "final class %s: XCTestCase {\n", className)

	if len(m.Units) == 0 {
		b.WriteString("\n    // No declarations were found in the analyzed source.\n")
	}

	used := map[string]int{}
	for _, unit := range m.Units {
		b.WriteString("\n")
		writeDeclarationTest(&b, subject, unit, m.AssistedBodies, used)
	}

	b.WriteString("}\n")
	return b.String()
}

func writeDeclarationTest(b *strings.Builder, subject string, unit extractor.Fact, assisted map[string]string, used map[string]int) {
	testName := "test" + capitalize(unit.Name)
	used[testName]++
	if n := used[testName]; n > 1 {
		testName = fmt.Sprintf("%s_%d", testName, n)
	}

	fmt.Fprintf(b, "    func %s() throws {\n", testName)
	if body, ok := assisted[unit.Name]; ok && strings.TrimSpace(body) != "" {
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			fmt.Fprintf(b, "        %s\n", line)
		}
		b.WriteString("    }\n")
		return
	}

	target := subjectPlaceholder(subject)
	if unit.IsStatic {
		writeHeuristicAssertion(b, unit, target)
	} else {
		fmt.Fprintf(b, "        let sut = %s()\n", target)
		writeHeuristicAssertion(b, unit, "sut")
	}
	b.WriteString("    }\n")
}

// writeHeuristicAssertion picks an assertion shape keyed by the declared
// return/type token. The placeholders are meant to be replaced by hand.
func writeHeuristicAssertion(b *strings.Builder, unit extractor.Fact, target string) {
	call := fmt.Sprintf("%s.%s()", target, unit.Name)
	if unit.Kind == extractor.KindProperty {
		call = fmt.Sprintf("%s.%s", target, unit.Name)
	}

	b.WriteString("        // TODO: provide arguments and refine the assertion\n")
	switch unit.Type {
	case "Int":
		fmt.Fprintf(b, "        XCTAssertEqual(%s, 0)\n", call)
	case "String":
		fmt.Fprintf(b, "        XCTAssertNotNil(%s)\n", call)
	case "Bool":
		fmt.Fprintf(b, "        XCTAssertFalse(%s)\n", call)
	case "":
		if unit.Kind == extractor.KindFunction {
			fmt.Fprintf(b, "        XCTAssertNoThrow(%s)\n", call)
		} else {
			fmt.Fprintf(b, "        XCTAssertNotNil(%s)\n", call)
		}
	default:
		fmt.Fprintf(b, "        XCTAssertNotNil(%s)\n", call)
	}
}

func subjectPlaceholder(subject string) string {
	if subject == "" {
		return "<#Subject#>"
	}
	return subject
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
