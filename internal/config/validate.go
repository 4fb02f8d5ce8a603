package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when the configuration describes impossible geometry.
var ErrInvalidConfig = errors.New("invalid config")

// invalid wraps ErrInvalidConfig with detail.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the configuration once at construction time.
// Every random draw made during a run stays inside the ranges checked here.
func (c FlappyConfig) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("world size %gx%g must be positive", w.Width, w.Height)
	}

	p := c.Physics
	if p.Gravity <= 0 {
		return invalid("gravity %g must be positive", p.Gravity)
	}
	if p.FlapVelocity <= 0 {
		return invalid("flap velocity %g must be positive", p.FlapVelocity)
	}
	if p.GateSpeed <= 0 {
		return invalid("gate speed %g must be positive", p.GateSpeed)
	}

	pl := c.Player
	if pl.Width <= 0 || pl.Height <= 0 {
		return invalid("player size %gx%g must be positive", pl.Width, pl.Height)
	}
	if pl.Y <= 0 || pl.Y+pl.Height >= w.Height {
		return invalid("player start y %g is outside the world", pl.Y)
	}
	if pl.X < 0 || pl.X+pl.Width > w.Width {
		return invalid("player start x %g is outside the world", pl.X)
	}

	g := c.Gates
	if g.Pairs < 2 {
		return invalid("gate pool of %d pairs, need at least 2", g.Pairs)
	}
	if g.Width <= 0 {
		return invalid("gate width %g must be positive", g.Width)
	}
	if g.VerticalMargin < 0 {
		return invalid("vertical margin %g must not be negative", g.VerticalMargin)
	}

	if err := c.validateTiers(); err != nil {
		return err
	}

	t := c.Timing
	if t.CountdownSteps < 1 {
		return invalid("countdown of %d steps, need at least 1", t.CountdownSteps)
	}
	if t.CountdownStep <= 0 {
		return invalid("countdown step %g must be positive", t.CountdownStep)
	}
	if t.RestartDelay < 0 {
		return invalid("restart delay %g must not be negative", t.RestartDelay)
	}
	return nil
}

// validateTiers checks ranges, thresholds, tightening and vertical fit.
func (c FlappyConfig) validateTiers() error {
	d := c.Difficulty
	if len(d.Tiers) == 0 {
		return invalid("difficulty needs at least one tier")
	}
	if d.StartTier < 0 || d.StartTier >= len(d.Tiers) {
		return invalid("start tier %d out of range [0, %d)", d.StartTier, len(d.Tiers))
	}
	if d.Tiers[0].MinScore != 0 {
		return invalid("first tier %q must start at score 0", d.Tiers[0].Name)
	}

	room := c.World.Height - 2*c.Gates.VerticalMargin
	for i, tier := range d.Tiers {
		if tier.Horizontal.Inverted() {
			return invalid("tier %q horizontal range [%g, %g] is inverted", tier.Name, tier.Horizontal.Min, tier.Horizontal.Max)
		}
		if tier.Vertical.Inverted() {
			return invalid("tier %q vertical range [%g, %g] is inverted", tier.Name, tier.Vertical.Min, tier.Vertical.Max)
		}
		if tier.Horizontal.Min <= 0 || tier.Vertical.Min <= 0 {
			return invalid("tier %q ranges must be positive", tier.Name)
		}
		// The whole vertical range must fit, not just its minimum, so a
		// drawn gap height can never push the gap outside the margins.
		if tier.Vertical.Max > room {
			return invalid("world height %g cannot fit tier %q gap %g plus margins %g",
				c.World.Height, tier.Name, tier.Vertical.Max, c.Gates.VerticalMargin)
		}
		if i == 0 {
			continue
		}

		prev := d.Tiers[i-1]
		if tier.MinScore <= prev.MinScore {
			return invalid("tier %q threshold %d must be above %d", tier.Name, tier.MinScore, prev.MinScore)
		}
		if tier.Horizontal.Min > prev.Horizontal.Min || tier.Horizontal.Max > prev.Horizontal.Max {
			return invalid("tier %q horizontal range widens after %q", tier.Name, prev.Name)
		}
		if tier.Vertical.Min > prev.Vertical.Min || tier.Vertical.Max > prev.Vertical.Max {
			return invalid("tier %q vertical range widens after %q", tier.Name, prev.Name)
		}
	}
	return nil
}
