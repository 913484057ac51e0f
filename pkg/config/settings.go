// Package config manages the lmpgen tool settings stored under ~/.lmpgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the tool configuration: where decks live, where emitted
// scripts go, and how to reach the external MD engine binary.
type Settings struct {
	Engine     string   `yaml:"engine"`
	EngineArgs []string `yaml:"engine_args,omitempty"`
	DeckDirs   []string `yaml:"deck_dirs"`
	OutputDir  string   `yaml:"output_dir"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Engine:    "lmp",
		DeckDirs:  []string{"decks"},
		OutputDir: "out",
	}
}

// Load reads settings from the default location, falling back to defaults
// when no file exists. Environment overrides are always applied.
func Load() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	s, err := LoadFromFile(filepath.Join(homeDir, ".lmpgen", "config.yaml"))
	if err != nil {
		return nil, err
	}
	s.ApplyEnv()
	return s, nil
}

// LoadFromFile reads settings from a specific file. A missing file yields
// the defaults.
func LoadFromFile(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return s, nil
}

// Save writes the settings to the default location.
func Save(s *Settings) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".lmpgen")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from LMPGEN_* environment variables.
func (s *Settings) ApplyEnv() {
	if engine := os.Getenv("LMPGEN_ENGINE"); engine != "" {
		s.Engine = engine
	}
	if args := os.Getenv("LMPGEN_ENGINE_ARGS"); args != "" {
		s.EngineArgs = strings.Fields(args)
	}
	if dirs := os.Getenv("LMPGEN_DECK_DIRS"); dirs != "" {
		s.DeckDirs = strings.Split(dirs, string(os.PathListSeparator))
	}
	if out := os.Getenv("LMPGEN_OUTPUT_DIR"); out != "" {
		s.OutputDir = out
	}
}
