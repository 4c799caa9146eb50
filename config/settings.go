package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type ProviderSettings struct {
	BaseURL string `toml:"base_url"`
}

// Settings mirrors settings.toml.
type Settings struct {
	DefaultProvider string                      `toml:"default_provider"`
	DefaultModel    string                      `toml:"default_model"`
	DefaultStyle    string                      `toml:"default_style"`
	DefaultTemplate string                      `toml:"default_template"`
	ContextDir      string                      `toml:"context_dir,omitempty"`
	Providers       map[string]ProviderSettings `toml:"providers,omitempty"`
}

func LoadSettings() (*Settings, error) {
	cfg := DefaultSettings()
	settingsPath := GetSettingsFilePath()

	if !FileExists(settingsPath) {
		if err := CreateDefaultSettings(); err != nil {
			// A read-only home must not prevent a one-shot prompt.
			Debugf("[Config] could not create default settings: %v", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(settingsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return cfg, nil
}

func SaveSettings(cfg *Settings) error {
	if err := EnsureDir(GetConfigDir()); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(GetSettingsFilePath(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return nil
}

func CreateDefaultSettings() error {
	if err := EnsureDir(GetConfigDir()); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		return nil
	}

	if err := os.WriteFile(settingsPath, []byte(GenerateSettingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
