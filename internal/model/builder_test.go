package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stubgen/internal/extractor"
)

func TestBuildDeclarations(t *testing.T) {
	src := `struct Calculator {
    func compute() -> Int { 0 }
}`
	facts := []extractor.Fact{
		{Kind: extractor.KindFunction, Name: "compute", Type: "Int"},
		{Kind: extractor.KindProperty, Name: "memory", Type: "Int"},
		{Kind: extractor.KindButton, Name: "stray"}, // non-declaration facts are ignored
	}

	m := BuildDeclarations(src, facts)
	assert.Equal(t, "Calculator", m.Subject)
	require.Len(t, m.Units, 2)
	assert.Equal(t, "compute", m.Units[0].Name)
	assert.Equal(t, "memory", m.Units[1].Name)
}

func TestBuildDeclarations_Empty(t *testing.T) {
	m := BuildDeclarations("", nil)
	assert.Empty(t, m.Subject)
	assert.Empty(t, m.Units)
}

func TestValidateViewSource(t *testing.T) {
	t.Run("Missing Framework Import", func(t *testing.T) {
		err := ValidateViewSource("struct Login: View { var body: some View { } }")
		assert.ErrorIs(t, err, ErrNotAViewSource)
	})

	t.Run("Missing View Name", func(t *testing.T) {
		err := ValidateViewSource("import SwiftUI\nvar body: some View { }")
		assert.ErrorIs(t, err, ErrNameNotFound)
	})

	t.Run("Missing Body", func(t *testing.T) {
		err := ValidateViewSource("import SwiftUI\nstruct Login: View { }")
		assert.ErrorIs(t, err, ErrMissingBody)
	})

	t.Run("Valid", func(t *testing.T) {
		err := ValidateViewSource("import SwiftUI\nstruct Login: View { var body: some View { } }")
		assert.NoError(t, err)
	})
}

const loginSource = `import SwiftUI

struct Login: View {
    @State private var isSecure: Bool = true
    @State var email = ""
    @State var attempts = 3
    @EnvironmentObject var session: SessionStore

    var body: some View {
        NavigationStack {
            TabView {
                Button("Go") {}
            }
        }
        .alert("Error", isPresented: $showError) {}
        .contextMenu {}
    }
}
`

func TestBuildView(t *testing.T) {
	facts := []extractor.Fact{{Kind: extractor.KindButton, Name: "Go", HasAction: true}}
	vm, err := BuildView(loginSource, facts)
	require.NoError(t, err)

	t.Run("Name And Elements", func(t *testing.T) {
		assert.Equal(t, "Login", vm.Name)
		require.Len(t, vm.Elements, 1)
		assert.Equal(t, "Go", vm.Elements[0].Name)
	})

	t.Run("State Variables", func(t *testing.T) {
		assert.Equal(t, "Bool", vm.StateVariables["isSecure"])
		assert.Equal(t, "String", vm.StateVariables["email"])
		assert.Equal(t, "Int", vm.StateVariables["attempts"])
	})

	t.Run("Environment Objects", func(t *testing.T) {
		assert.Equal(t, "SessionStore", vm.EnvironmentObjects["session"])
	})

	t.Run("Structural Flags", func(t *testing.T) {
		assert.True(t, vm.IsNavigationContainer)
		assert.True(t, vm.HasTabContainer)
		assert.True(t, vm.HasAlert)
		assert.True(t, vm.HasContextMenu)
	})

	t.Run("Raw Body Is Isolated", func(t *testing.T) {
		assert.Contains(t, vm.RawBody, `Button("Go")`)
		assert.NotContains(t, vm.RawBody, "import SwiftUI")
	})
}

func TestBuildView_InvalidSource(t *testing.T) {
	_, err := BuildView("import UIKit\nclass LoginVC {}", nil)
	assert.ErrorIs(t, err, ErrNotAViewSource)
}

func TestInferLiteralType(t *testing.T) {
	assert.Equal(t, "Bool", inferLiteralType("false"))
	assert.Equal(t, "Bool", inferLiteralType("true"))
	assert.Equal(t, "String", inferLiteralType(`"hello"`))
	assert.Equal(t, "Int", inferLiteralType("42"))
	assert.Equal(t, "Double", inferLiteralType("3.14"))
	assert.Equal(t, "Any", inferLiteralType("Date()"))
}
