// Package config loads the wsaver configuration file. All settings have
// defaults; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/wsaver/internal/match"
)

// Config is the effective configuration used by the CLI.
type Config struct {
	// PollInterval is the delay between restoration polls.
	PollInterval time.Duration
	// Timeout bounds the total elapsed time of a restoration.
	Timeout time.Duration
	// Weights is the matcher scoring policy.
	Weights match.Weights
}

// raw mirrors the YAML document. Durations are strings so users can write
// "500ms" or "1m30s".
type raw struct {
	Restore struct {
		PollInterval string `yaml:"poll_interval"`
		Timeout      string `yaml:"timeout"`
	} `yaml:"restore"`
	Match *match.Weights `yaml:"match"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		PollInterval: 500 * time.Millisecond,
		Timeout:      30 * time.Second,
		Weights:      match.DefaultWeights(),
	}
}

// DefaultPath returns ~/.config/wsaver/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "wsaver", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path, falling back to defaults
// when the file does not exist.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Config, error) {
	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if r.Restore.PollInterval != "" {
		d, err := time.ParseDuration(r.Restore.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid restore.poll_interval in %q: %w", path, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("restore.poll_interval in %q must be positive", path)
		}
		cfg.PollInterval = d
	}
	if r.Restore.Timeout != "" {
		d, err := time.ParseDuration(r.Restore.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid restore.timeout in %q: %w", path, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("restore.timeout in %q must be positive", path)
		}
		cfg.Timeout = d
	}
	if r.Match != nil {
		cfg.Weights = *r.Match
	}
	return cfg, nil
}
