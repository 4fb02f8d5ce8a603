package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the game configuration and validates it.
// Search order: customPath -> ~/.flappy/configs/flappy.{yaml,toml} -> ./configs/flappy.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they set.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	for _, name := range []string{"flappy.yaml", "flappy.toml"} {
		if userCfgPath := userConfigPath(name); userCfgPath != "" {
			if cfg, err := loadFile(userCfgPath); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// loadFile reads one config file, picking the decoder from the extension.
func loadFile(path string) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg. Paths ending in .toml use TOML, anything else YAML.
func Decode(path string, data []byte, cfg *FlappyConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Marshal renders cfg as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		start := StartTierForPreset(preset)
		if start >= len(cfg.Difficulty.Tiers) {
			start = len(cfg.Difficulty.Tiers) - 1
		}
		cfg.Difficulty.StartTier = max(start, 0)
	}
}
