// Package config persists the operator's settings between runs and resolves
// credentials from the environment. Credentials themselves are never written
// to disk by this tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig holds the persistent settings at ~/.otl2everytime.json.
type AppConfig struct {
	// KaistID is remembered so repeat migrations don't re-prompt for it.
	KaistID string `json:"kaist_id,omitempty"`
	// Headless runs the browser without a window. Off by default so the
	// operator can watch the MFA step.
	Headless bool `json:"headless,omitempty"`
	// AccentColor overrides the prompt theme color.
	AccentColor string `json:"accent_color,omitempty"`
}

func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".otl2everytime.json"), nil
}

// Load reads the settings file, returning an empty config if none exists yet.
func Load() (*AppConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Save writes the settings back to disk.
func Save(cfg *AppConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
