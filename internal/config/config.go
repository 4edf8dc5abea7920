// Package config loads tool configuration from a YAML file, a .env file,
// and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"ai"`
	Escalation struct {
		Enabled        bool `yaml:"enabled"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"escalation"`
	Extraction struct {
		// LookaheadBytes is the bounded window scanned past an element
		// construction site for attached identifiers and modifiers.
		LookaheadBytes int `yaml:"lookahead_bytes"`
	} `yaml:"extraction"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.AI.Provider = "gemini"
	cfg.AI.Model = "gemini-1.5-flash"
	cfg.Escalation.Enabled = true
	cfg.Escalation.TimeoutSeconds = 30
	cfg.Extraction.LookaheadBytes = 160
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "stderr"
	return &cfg
}

// LoadConfig reads the YAML config at path, falling back to defaults when
// the file does not exist. A .env file and environment variables override
// file values.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if apiKey := os.Getenv("STUBGEN_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("STUBGEN_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if model := os.Getenv("STUBGEN_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}

	applyFloors(cfg)
	return cfg, nil
}

func applyFloors(cfg *Config) {
	if cfg.Escalation.TimeoutSeconds <= 0 {
		cfg.Escalation.TimeoutSeconds = 30
	}
	if cfg.Extraction.LookaheadBytes <= 0 {
		cfg.Extraction.LookaheadBytes = 160
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
