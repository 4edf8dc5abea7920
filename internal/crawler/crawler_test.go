package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_ScanProject(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	write("Sources/Login.swift", "struct Login {}")
	write("Sources/LoginTests.swift", "final class LoginTests {}")
	write("Sources/readme.md", "not swift")
	write(".build/Generated.swift", "struct Cached {}")
	write("Pods/Dep.swift", "struct Dep {}")

	var seen []string
	err := NewCrawler().ScanProject(root, func(path, source string) {
		seen = append(seen, filepath.Base(path))
		assert.NotEmpty(t, source)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Login.swift"}, seen, "test files, non-Swift files, and ignored directories are skipped")
}
