package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaffoldPath(t *testing.T) {
	t.Run("Mirrors Relative Directories", func(t *testing.T) {
		a := scaffoldPath("out", "proj", filepath.Join("proj", "A", "Login.swift"), "unit")
		b := scaffoldPath("out", "proj", filepath.Join("proj", "B", "Login.swift"), "unit")

		assert.Equal(t, filepath.Join("out", "A", "LoginTests.swift"), a)
		assert.Equal(t, filepath.Join("out", "B", "LoginTests.swift"), b)
		assert.NotEqual(t, a, b, "same-named sources in different directories must not collide")
	})

	t.Run("Root Level Source", func(t *testing.T) {
		got := scaffoldPath("out", "proj", filepath.Join("proj", "App.swift"), "unit")
		assert.Equal(t, filepath.Join("out", "AppTests.swift"), got)
	})

	t.Run("UI Mode Suffix", func(t *testing.T) {
		got := scaffoldPath("out", "proj", filepath.Join("proj", "Views", "Login.swift"), "ui")
		assert.Equal(t, filepath.Join("out", "Views", "LoginUITests.swift"), got)
	})
}
