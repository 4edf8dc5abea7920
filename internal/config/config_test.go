package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.True(t, cfg.Escalation.Enabled)
	assert.Equal(t, 30, cfg.Escalation.TimeoutSeconds)
	assert.Equal(t, 160, cfg.Extraction.LookaheadBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stubgen.yaml")
	content := `ai:
  provider: openai
  model: gpt-4o-mini
escalation:
  timeout_seconds: 5
extraction:
  lookahead_bytes: 64
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 5, cfg.Escalation.TimeoutSeconds)
	assert.Equal(t, 64, cfg.Extraction.LookaheadBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Escalation.Enabled, "fields absent from the file keep their defaults")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUBGEN_API_KEY", "env-key")
	t.Setenv("STUBGEN_AI_PROVIDER", "openai")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AI.APIKey)
	assert.Equal(t, "openai", cfg.AI.Provider)
}

func TestLoadConfig_FloorsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stubgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("escalation:\n  timeout_seconds: -1\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Escalation.TimeoutSeconds)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stubgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai: [broken"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
