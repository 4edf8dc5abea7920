package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFencedBlock(t *testing.T) {
	t.Run("Tagged Block", func(t *testing.T) {
		body, lang, ok := ExtractFencedBlock("```swift\nimport XCTest\n```")
		assert.True(t, ok)
		assert.Equal(t, "swift", lang)
		assert.Equal(t, "import XCTest", body)
	})

	t.Run("Untagged Block", func(t *testing.T) {
		body, lang, ok := ExtractFencedBlock("```\n{\"name\": \"x\"}\n```")
		assert.True(t, ok)
		assert.Empty(t, lang)
		assert.Equal(t, `{"name": "x"}`, body)
	})

	t.Run("Surrounding Whitespace", func(t *testing.T) {
		_, lang, ok := ExtractFencedBlock("\n\n```json\n{}\n```\n")
		assert.True(t, ok)
		assert.Equal(t, "json", lang)
	})

	t.Run("Plain Text", func(t *testing.T) {
		_, _, ok := ExtractFencedBlock(`{"name": "x"}`)
		assert.False(t, ok)
	})

	t.Run("Unterminated", func(t *testing.T) {
		_, _, ok := ExtractFencedBlock("```swift\nno closing fence")
		assert.False(t, ok)
	})
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "{}", StripFences("```json\n{}\n```"))
	assert.Equal(t, "{}", StripFences("  {}  "))
}
