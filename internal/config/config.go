// Package config loads vowterm configuration: a YAML file under the state
// directory, overridden by environment variables and then by CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vowterm/internal/invitation"
)

// Config holds all vowterm configuration.
type Config struct {
	// Gemini text generation
	Gemini GeminiConfig `yaml:"gemini"`

	// Starting theme for the guest view
	Theme string `yaml:"theme"`

	// Audio playback
	Audio AudioConfig `yaml:"audio"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the concierge service.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AudioConfig configures the soundtrack player.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model: "gemini-3-flash-preview",
		},
		Theme: string(invitation.ThemeCyberpunk),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.4,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultPath returns ~/.vowterm/config.yaml, or a relative fallback when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".vowterm", "config.yaml")
	}
	return filepath.Join(home, ".vowterm", "config.yaml")
}

// StateDir returns the directory holding config and logs.
func StateDir() string {
	return filepath.Dir(DefaultPath())
}

// Load reads configuration from a YAML file, applying defaults for a missing
// file and environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if model := os.Getenv("VOWTERM_MODEL"); model != "" {
		c.Gemini.Model = model
	}
	if theme := os.Getenv("VOWTERM_THEME"); theme != "" {
		c.Theme = theme
	}
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	if !invitation.Theme(c.Theme).Valid() {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v out of range [0, 1]", c.Audio.Volume)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
