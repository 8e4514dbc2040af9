package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parseSuika(defaultSuikaYAML)
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	want := DefaultSuikaConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded YAML diverges from DefaultSuikaConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultTierTable(t *testing.T) {
	tiers := DefaultSuikaConfig().Tiers
	if len(tiers) != 11 {
		t.Fatalf("expected 11 tiers, got %d", len(tiers))
	}
	if tiers[0].Radius != 1.0 || tiers[0].Score != 1 {
		t.Errorf("tier 0 = %+v", tiers[0])
	}
	if tiers[10].Radius != 7.9 || tiers[10].Score != 66 {
		t.Errorf("tier 10 = %+v", tiers[10])
	}
}

func TestLoadSuikaFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadSuika("")
	if err != nil {
		t.Fatalf("LoadSuika() failed: %v", err)
	}
	if cfg.Field.Width != 600 || cfg.Rules.DangerMS != 3000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadSuikaCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suika.yaml")
	data := []byte("rules:\n  danger_ms: 4500\nspawn:\n  random_tiers: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSuika(path)
	if err != nil {
		t.Fatalf("LoadSuika(%q) failed: %v", path, err)
	}
	if cfg.Rules.DangerMS != 4500 {
		t.Errorf("DangerMS = %d, expected 4500", cfg.Rules.DangerMS)
	}
	if cfg.Spawn.RandomTiers != 3 {
		t.Errorf("RandomTiers = %d, expected 3", cfg.Spawn.RandomTiers)
	}
	// Untouched keys keep their defaults
	if cfg.Rules.GraceMS != 1000 || cfg.Field.DangerLineY != 150 {
		t.Errorf("defaults lost: %+v", cfg.Rules)
	}
	if len(cfg.Tiers) != 11 {
		t.Errorf("tier table should default to 11 entries, got %d", len(cfg.Tiers))
	}
}

func TestLoadSuikaCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSuika(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSuika(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("spawn:\n  random_tiers: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSuika(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SuikaConfig)
	}{
		{"zero radius scale", func(c *SuikaConfig) { c.Field.RadiusScale = 0 }},
		{"zero step", func(c *SuikaConfig) { c.Physics.StepMS = 0 }},
		{"zero density", func(c *SuikaConfig) { c.Physics.Density = 0 }},
		{"zero danger", func(c *SuikaConfig) { c.Rules.DangerMS = 0 }},
		{"negative cooldown", func(c *SuikaConfig) { c.Spawn.CooldownMS = -1 }},
		{"empty tiers", func(c *SuikaConfig) { c.Tiers = nil }},
		{"non-increasing radius", func(c *SuikaConfig) { c.Tiers[3].Radius = c.Tiers[2].Radius }},
		{"negative score", func(c *SuikaConfig) { c.Tiers[0].Score = -1 }},
		{"tiny field", func(c *SuikaConfig) { c.Field.Width = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSuikaConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplySuikaPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		dangerMS    int
		randomTiers int
		cooldownMS  int
	}{
		{"", false, 3000, 5, 500},
		{DifficultyFixed, false, 3000, 5, 500},
		{DifficultyEasy, true, 5000, 4, 500},
		{DifficultyNormal, true, 3000, 5, 500},
		{DifficultyHard, true, 2000, 5, 350},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultSuikaConfig()
			ApplySuikaPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Rules.DangerMS != tt.dangerMS {
				t.Errorf("DangerMS = %d, expected %d", cfg.Rules.DangerMS, tt.dangerMS)
			}
			if cfg.Spawn.RandomTiers != tt.randomTiers {
				t.Errorf("RandomTiers = %d, expected %d", cfg.Spawn.RandomTiers, tt.randomTiers)
			}
			if cfg.Spawn.CooldownMS != tt.cooldownMS {
				t.Errorf("CooldownMS = %d, expected %d", cfg.Spawn.CooldownMS, tt.cooldownMS)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should yield empty")
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("suika")) == 0 {
		t.Error("suika should have embedded YAML")
	}
	if GetDefaultYAML("tetris") != nil {
		t.Error("unknown game should have no YAML")
	}
}
