package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:      600,
			FlapVelocity: 300,
			GateSpeed:    200,
		},
		Player: PlayerConfig{
			X:      80,
			Y:      300,
			Width:  34,
			Height: 24,
		},
		Gates: GatesConfig{
			Pairs:          4,
			Width:          52,
			VerticalMargin: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			StartTier: 0,
			Tiers:     DefaultTiers(),
		},
		Timing: TimingConfig{
			CountdownSteps: 3,
			CountdownStep:  1.0,
			RestartDelay:   1.0,
		},
	}
}

// DefaultTiers returns the easy/normal/hard tier table.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "easy", MinScore: 0, Horizontal: Range{480, 500}, Vertical: Range{340, 380}},
		{Name: "normal", MinScore: 5, Horizontal: Range{380, 400}, Vertical: Range{340, 380}},
		{Name: "hard", MinScore: 10, Horizontal: Range{360, 380}, Vertical: Range{340, 380}},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
