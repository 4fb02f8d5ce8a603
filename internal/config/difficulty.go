package config

// DifficultyController maps a cumulative score to a difficulty tier.
// It holds no run state; the same controller can serve any number of runs.
type DifficultyController struct {
	tiers   []Tier
	start   int
	enabled bool
}

// NewDifficultyController creates a controller from a validated config.
func NewDifficultyController(cfg DifficultyConfig) *DifficultyController {
	tiers := make([]Tier, len(cfg.Tiers))
	copy(tiers, cfg.Tiers)

	return &DifficultyController{
		tiers:   tiers,
		start:   cfg.StartTier,
		enabled: cfg.Enabled,
	}
}

// IsEnabled returns whether tiers advance with the score.
func (d *DifficultyController) IsEnabled() bool {
	return d.enabled && len(d.tiers) > 1
}

// Start returns the tier a fresh run begins with.
func (d *DifficultyController) Start() Tier {
	return d.tiers[d.start]
}

// IndexFor returns the index of the tier active at the given score.
func (d *DifficultyController) IndexFor(score int) int {
	idx := d.start
	if !d.enabled {
		return idx
	}
	for i := idx + 1; i < len(d.tiers); i++ {
		if score < d.tiers[i].MinScore {
			break
		}
		idx = i
	}
	return idx
}

// TierFor returns the tier active at the given score.
func (d *DifficultyController) TierFor(score int) Tier {
	return d.tiers[d.IndexFor(score)]
}

// Tiers returns a copy of the tier table.
func (d *DifficultyController) Tiers() []Tier {
	out := make([]Tier, len(d.tiers))
	copy(out, d.tiers)
	return out
}
