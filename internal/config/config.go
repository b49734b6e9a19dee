// Package config holds fieldscope user configuration, loaded from
// ~/.fieldscope/config.yaml with environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the single source of truth for client settings.
type Config struct {
	// APIBaseURL is the root of the remote crop-monitoring service.
	APIBaseURL string `yaml:"api_base_url"`

	// Theme selects the TUI color scheme ("light" or "dark").
	Theme string `yaml:"theme,omitempty"`

	// StatsDays is the default window for statistics queries.
	StatsDays int `yaml:"stats_days,omitempty"`

	// TimeoutSeconds is the HTTP client timeout. Zero means no timeout:
	// a hung call then stays in its loading state until the user quits.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Logging controls the diagnostic file logger.
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig mirrors the debug-mode switch of the diagnostic logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level,omitempty"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		APIBaseURL: "http://localhost:8000",
		Theme:      "light",
		StatsDays:  30,
	}
}

// Timeout converts TimeoutSeconds to a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultPath returns ~/.fieldscope/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".fieldscope", "config.yaml"), nil
}

// Load reads the config from the default location. A missing file yields
// DefaultConfig. Environment overrides are applied last either way.
func Load() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// The environment still wins when the file is missing or unreadable.
		applyEnvOverrides(&cfg)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		cfg = DefaultConfig()
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultConfig().APIBaseURL
	}
	if cfg.StatsDays <= 0 {
		cfg.StatsDays = DefaultConfig().StatsDays
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FIELDSCOPE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if os.Getenv("FIELDSCOPE_DARK_MODE") == "1" {
		cfg.Theme = "dark"
	}
	if os.Getenv("FIELDSCOPE_DEBUG") == "1" {
		cfg.Logging.DebugMode = true
	}
}

// SaveTo writes the config to an explicit path, creating the directory.
func (c Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Save writes the config to the default location.
func (c Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}
