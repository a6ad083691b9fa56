package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Domains whose 404s the bookmark checker treats as unreachable rather
	// than dead (auth walls return 404 for private pages).
	CullExcludeDomains []string `json:"cullExcludeDomains"`
	CullConcurrency    int      `json:"cullConcurrency"`
	CullTimeoutSecs    int      `json:"cullTimeoutSecs"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CullExcludeDomains: []string{"github.com", "gitlab.com"},
		CullConcurrency:    8,
		CullTimeoutSecs:    10,
	}
}

// CullTimeout returns the checker timeout as a duration.
func (c *Config) CullTimeout() time.Duration {
	return time.Duration(c.CullTimeoutSecs) * time.Second
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			if saveErr := SaveConfig(path, &config); saveErr != nil {
				// Non-fatal: return defaults even if save fails
				return &config, nil
			}
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.CullExcludeDomains == nil {
		config.CullExcludeDomains = defaults.CullExcludeDomains
	}
	if config.CullConcurrency <= 0 {
		config.CullConcurrency = defaults.CullConcurrency
	}
	if config.CullTimeoutSecs <= 0 {
		config.CullTimeoutSecs = defaults.CullTimeoutSecs
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/tabdeck/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabdeck", "config.json"), nil
}
