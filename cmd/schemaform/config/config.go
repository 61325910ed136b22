// Package config loads and saves the CLI configuration file. Flags override
// file values; the file only supplies defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	// MaxDepth is the default schema recursion ceiling.
	MaxDepth int `yaml:"maxDepth"`
	// LogLevel is the default console log level.
	LogLevel string `yaml:"logLevel"`
	// Language selects the validation message dictionary ("en"/"de").
	Language string `yaml:"language"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{MaxDepth: 15, LogLevel: "warn", Language: "en"}
}

// Path returns the config file location, ~/.schemaform/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".schemaform", "config.yaml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist. A present-but-broken file is an error, not a silent default.
func Load() (Config, error) {
	cfg := Default()
	p, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", p, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", p, err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = Default().MaxDepth
	}
	return cfg, nil
}

// Save writes the config file, creating its directory when needed.
func Save(cfg Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", p, err)
	}
	return nil
}
