package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("DefaultFlappyConfig().Validate() = %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}

	def := DefaultFlappyConfig()
	if cfg.World != def.World || cfg.Physics != def.Physics || cfg.Player != def.Player ||
		cfg.Gates != def.Gates || cfg.Timing != def.Timing {
		t.Errorf("embedded yaml differs from hardcoded defaults:\n%+v\n%+v", cfg, def)
	}
	if len(cfg.Difficulty.Tiers) != len(def.Difficulty.Tiers) {
		t.Fatalf("tier count = %d, expected %d", len(cfg.Difficulty.Tiers), len(def.Difficulty.Tiers))
	}
	for i := range cfg.Difficulty.Tiers {
		if cfg.Difficulty.Tiers[i] != def.Difficulty.Tiers[i] {
			t.Errorf("tier %d = %+v, expected %+v", i, cfg.Difficulty.Tiers[i], def.Difficulty.Tiers[i])
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"world too short for gap plus margins", func(c *FlappyConfig) { c.World.Height = 500 }},
		{"inverted horizontal range", func(c *FlappyConfig) { c.Difficulty.Tiers[0].Horizontal = Range{500, 480} }},
		{"inverted vertical range", func(c *FlappyConfig) { c.Difficulty.Tiers[1].Vertical = Range{380, 340} }},
		{"pool below two pairs", func(c *FlappyConfig) { c.Gates.Pairs = 1 }},
		{"zero gravity", func(c *FlappyConfig) { c.Physics.Gravity = 0 }},
		{"negative flap", func(c *FlappyConfig) { c.Physics.FlapVelocity = -300 }},
		{"zero gate speed", func(c *FlappyConfig) { c.Physics.GateSpeed = 0 }},
		{"zero gate width", func(c *FlappyConfig) { c.Gates.Width = 0 }},
		{"player starts in ground", func(c *FlappyConfig) { c.Player.Y = 590 }},
		{"no tiers", func(c *FlappyConfig) { c.Difficulty.Tiers = nil }},
		{"first tier not at zero", func(c *FlappyConfig) { c.Difficulty.Tiers[0].MinScore = 1 }},
		{"thresholds not ascending", func(c *FlappyConfig) { c.Difficulty.Tiers[2].MinScore = 5 }},
		{"tier widens", func(c *FlappyConfig) { c.Difficulty.Tiers[2].Horizontal = Range{400, 420} }},
		{"start tier out of range", func(c *FlappyConfig) { c.Difficulty.StartTier = 3 }},
		{"no countdown", func(c *FlappyConfig) { c.Timing.CountdownSteps = 0 }},
		{"zero countdown step", func(c *FlappyConfig) { c.Timing.CountdownStep = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateAcceptsSpecScenarioWorld(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.World = WorldConfig{Width: 400, Height: 600}
	cfg.Player.X = 40

	if err := cfg.Validate(); err != nil {
		t.Errorf("400x600 world should be valid, got %v", err)
	}
}

func TestLoadFlappyCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 900\ngates:\n  pairs: 6\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 900 {
		t.Errorf("gravity = %g, expected 900", cfg.Physics.Gravity)
	}
	if cfg.Gates.Pairs != 6 {
		t.Errorf("pairs = %d, expected 6", cfg.Gates.Pairs)
	}
	// Unset fields keep their defaults
	if cfg.Physics.FlapVelocity != 300 {
		t.Errorf("flap velocity = %g, expected default 300", cfg.Physics.FlapVelocity)
	}
}

func TestLoadFlappyCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte(`
[physics]
gate_speed = 250.0

[timing]
restart_delay = 2.0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.GateSpeed != 250 {
		t.Errorf("gate speed = %g, expected 250", cfg.Physics.GateSpeed)
	}
	if cfg.Timing.RestartDelay != 2 {
		t.Errorf("restart delay = %g, expected 2", cfg.Timing.RestartDelay)
	}
}

func TestLoadFlappyInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gates:\n  pairs: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadFlappy() = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadFlappyMissingFile(t *testing.T) {
	_, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadFlappy() should fail for a missing custom path")
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantStart   int
	}{
		{DifficultyEasy, true, 0},
		{DifficultyNormal, true, 1},
		{DifficultyHard, true, 2},
		{DifficultyFixed, false, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			ApplyFlappyPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.wantEnabled)
			}
			if cfg.Difficulty.StartTier != tc.wantStart {
				t.Errorf("StartTier = %d, expected %d", cfg.Difficulty.StartTier, tc.wantStart)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("brutal") != "" {
		t.Error("unknown presets should parse to empty")
	}
}
