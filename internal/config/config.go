// Package config provides configuration management for maistat.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the maistat configuration.
type Config struct {
	LibraryRoot    string   `yaml:"library_root"`
	FileName       string   `yaml:"file_name,omitempty"`
	OutputFormat   string   `yaml:"output_format,omitempty"`
	DefaultPattern []string `yaml:"default_pattern,omitempty"`
}

// Validate checks that all required fields are present.
func (c *Config) Validate() error {
	if c.LibraryRoot == "" {
		return errors.New("library_root is required")
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if root := os.Getenv("MAISTAT_LIBRARY_ROOT"); root != "" {
		c.LibraryRoot = root
	}
	if name := os.Getenv("MAISTAT_FILE_NAME"); name != "" {
		c.FileName = name
	}
	if format := os.Getenv("MAISTAT_OUTPUT_FORMAT"); format != "" {
		c.OutputFormat = format
	}
}

// DefaultConfigPath returns the default configuration file path,
// honoring XDG_CONFIG_HOME when set.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "maistat", "config.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".maistat", "config.yml")
	}
	return filepath.Join(home, ".config", "maistat", "config.yml")
}

// Save writes the configuration to path, creating parent directories as
// needed. The file itself is written user read/write only.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnv reads the configuration file at path and applies
// environment overrides. A missing or unreadable file yields an empty
// base config rather than an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg := &Config{}
	if loaded, err := Load(path); err == nil {
		cfg = loaded
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
