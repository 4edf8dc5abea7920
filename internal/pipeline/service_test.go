package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stubgen/internal/escalation"
	"stubgen/internal/extractor"
	"stubgen/internal/llm"
	"stubgen/internal/model"
)

type scriptedClient struct {
	text  string
	err   error
	calls int
}

func (s *scriptedClient) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Text: s.text}, nil
}

func newService(client llm.Client) *Service {
	var coordinator *escalation.Coordinator
	if client != nil {
		coordinator = escalation.NewCoordinator(client, time.Second)
	}
	return NewService(extractor.NewExtractor(0), coordinator)
}

const loginSource = `import SwiftUI

struct Login: View {
    var body: some View {
        Button("Go") {}
    }
}
`

func TestGenerateUITests_LoginScenario(t *testing.T) {
	svc := newService(nil)
	out, err := svc.GenerateUITests(context.Background(), loginSource)
	require.NoError(t, err)

	assert.Contains(t, out, "final class LoginUITests: XCTestCase {")
	assert.Contains(t, out, `app.buttons["g_button"]`)
}

func TestGenerateUITests_LocalSuccessNeverEscalates(t *testing.T) {
	client := &scriptedClient{text: "should never be requested"}
	svc := newService(client)

	_, err := svc.GenerateUITests(context.Background(), loginSource)
	require.NoError(t, err)
	assert.Zero(t, client.calls, "a non-empty local result must not trigger escalation")
}

func TestGenerateUITests_EmptyInputSurfaces(t *testing.T) {
	svc := newService(nil)
	for _, src := range []string{"", "   \n\t"} {
		_, err := svc.GenerateUITests(context.Background(), src)
		assert.ErrorIs(t, err, extractor.ErrEmptyInput)
	}
}

func TestGenerateUITests_NotAViewSurfacesWithoutClient(t *testing.T) {
	svc := newService(nil)
	_, err := svc.GenerateUITests(context.Background(), "import UIKit\nclass A {}")
	assert.ErrorIs(t, err, model.ErrNotAViewSource)
}

func TestGenerateUITests_EscalationRecovers(t *testing.T) {
	client := &scriptedClient{text: `{"name":"Login","elements":[{"label":"Go","kind":"button","hasAction":true}]}`}
	svc := newService(client)

	out, err := svc.GenerateUITests(context.Background(), "import UIKit\nclass A {}")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, out, "final class LoginUITests: XCTestCase {")
}

func TestGenerateUITests_EscalationFailureSurfacesLocalError(t *testing.T) {
	client := &scriptedClient{err: llm.ErrNetwork}
	svc := newService(client)

	_, err := svc.GenerateUITests(context.Background(), "import UIKit\nclass A {}")
	assert.ErrorIs(t, err, model.ErrNotAViewSource, "the original local error must survive a failed escalation")
}

func TestGenerateUITests_VerbatimBlobPassthrough(t *testing.T) {
	client := &scriptedClient{text: "```swift\nfinal class RemoteUITests: XCTestCase {}\n```"}
	svc := newService(client)

	out, err := svc.GenerateUITests(context.Background(), "import UIKit\nclass A {}")
	require.NoError(t, err)
	assert.Equal(t, "final class RemoteUITests: XCTestCase {}", out)
}

func TestGenerateUITests_ZeroElementsFallsBackToMarker(t *testing.T) {
	src := `import SwiftUI

struct Empty: View {
    var body: some View {
        EmptyView()
    }
}
`
	client := &scriptedClient{err: llm.ErrNetwork}
	svc := newService(client)

	out, err := svc.GenerateUITests(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls, "zero elements is insufficient and escalates")
	assert.Contains(t, out, "No elements found in the view body.")
}

const calculatorSource = `import Foundation

struct Calculator {
    static func run() {
    }

    func compute() -> Int {
        return 0
    }
}
`

func TestGenerateUnitTests_Local(t *testing.T) {
	client := &scriptedClient{}
	svc := newService(client)

	out, err := svc.GenerateUnitTests(context.Background(), calculatorSource)
	require.NoError(t, err)
	assert.Zero(t, client.calls)

	assert.Contains(t, out, "final class CalculatorTests: XCTestCase {")
	assert.Contains(t, out, "XCTAssertNoThrow(Calculator.run())")
	assert.Contains(t, out, "XCTAssertEqual(sut.compute(), 0)")
}

func TestGenerateUnitTests_EmptyInputSurfaces(t *testing.T) {
	svc := newService(nil)
	_, err := svc.GenerateUnitTests(context.Background(), "")
	assert.ErrorIs(t, err, extractor.ErrEmptyInput)
}

func TestGenerateUnitTests_NoDeclarationsRendersClosedClass(t *testing.T) {
	svc := newService(nil)
	out, err := svc.GenerateUnitTests(context.Background(), "// nothing to see here")
	require.NoError(t, err)
	assert.Contains(t, out, "final class ScaffoldTests: XCTestCase {")
	assert.Contains(t, out, "No declarations were found")
}

func TestGenerateUnitTests_EscalationRecovers(t *testing.T) {
	client := &scriptedClient{text: `{"subject":"Mystery","units":[{"name":"decode","kind":"function","type":"String"}]}`}
	svc := newService(client)

	out, err := svc.GenerateUnitTests(context.Background(), "// nothing extractable")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, out, "final class MysteryTests: XCTestCase {")
	assert.Contains(t, out, "func testDecode() throws {")
}
