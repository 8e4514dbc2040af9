package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSuika loads Suika configuration.
// Search order: customPath -> ~/.arcade/configs/suika.yaml -> ./configs/suika.yaml -> embedded default
//
// Each file is decoded over the built-in defaults, so a partial YAML only
// overrides the keys it names. A tiers list, when present, replaces the table.
func LoadSuika(customPath string) (SuikaConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SuikaConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSuika(data)
		if err != nil {
			return SuikaConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return SuikaConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory.
	// Broken files here are skipped rather than fatal.
	for _, path := range []string{userConfigPath("suika.yaml"), filepath.Join("configs", "suika.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseSuika(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSuika(defaultSuikaYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultSuikaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseSuika(data []byte) (SuikaConfig, error) {
	cfg := DefaultSuikaConfig()
	cfg.Tiers = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SuikaConfig{}, err
	}
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = DefaultSuikaConfig().Tiers
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplySuikaPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplySuikaPreset(cfg *SuikaConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Rules.DangerMS = 5000
		cfg.Spawn.RandomTiers = 4
	case DifficultyHard:
		cfg.Rules.DangerMS = 2000
		cfg.Spawn.CooldownMS = 350
	}
}
