// Package config provides YAML/TOML game configuration loading, validation
// and difficulty tier selection for the flappy platform.
package config

// FlappyConfig contains all configuration for the gate-runner game.
// Distances are world units, times are seconds.
type FlappyConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Gates      GatesConfig      `yaml:"gates" toml:"gates"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing" toml:"timing"`
}

// WorldConfig defines the playfield size.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PhysicsConfig defines gravity, flap strength and scroll speed.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`             // Downward acceleration, units/s²
	FlapVelocity float64 `yaml:"flap_velocity" toml:"flap_velocity"` // Upward speed set by a flap, units/s
	GateSpeed    float64 `yaml:"gate_speed" toml:"gate_speed"`       // Leftward gate speed, units/s
}

// PlayerConfig defines the flyer's start position and hitbox.
type PlayerConfig struct {
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// GatesConfig defines the gate pool.
type GatesConfig struct {
	Pairs          int     `yaml:"pairs" toml:"pairs"`                     // Number of gate pairs in the pool
	Width          float64 `yaml:"width" toml:"width"`                     // Horizontal extent of every member
	VerticalMargin float64 `yaml:"vertical_margin" toml:"vertical_margin"` // Minimum distance from gap to world edge
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min" toml:"min"`
	Max float64 `yaml:"max" toml:"max"`
}

// Inverted reports whether Min is greater than Max.
func (r Range) Inverted() bool {
	return r.Min > r.Max
}

// Tier is a named difficulty level that controls gate placement.
type Tier struct {
	Name       string `yaml:"name" toml:"name"`
	MinScore   int    `yaml:"min_score" toml:"min_score"`   // Score at which the tier becomes active
	Horizontal Range  `yaml:"horizontal" toml:"horizontal"` // Spacing between consecutive pairs
	Vertical   Range  `yaml:"vertical" toml:"vertical"`     // Gap height between upper and lower member
}

// DifficultyConfig defines the tier table and progression.
type DifficultyConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`       // false pins the run to StartTier
	StartTier int    `yaml:"start_tier" toml:"start_tier"` // Index into Tiers used at run start
	Tiers     []Tier `yaml:"tiers" toml:"tiers"`
}

// TimingConfig defines the pause countdown and post-collision delay.
type TimingConfig struct {
	CountdownSteps int     `yaml:"countdown_steps" toml:"countdown_steps"` // Countdown length after resume
	CountdownStep  float64 `yaml:"countdown_step" toml:"countdown_step"`   // Seconds per countdown step
	RestartDelay   float64 `yaml:"restart_delay" toml:"restart_delay"`     // Seconds from collision to restart
}

// DifficultyPreset represents a named difficulty level selected on the CLI.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// StartTierForPreset returns the tier index a preset starts from.
func StartTierForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 1
	case DifficultyHard:
		return 2
	default:
		return 0
	}
}
