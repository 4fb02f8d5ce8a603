package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Flyer is the player body. Its x never changes; the world scrolls past it.
type Flyer struct {
	x, y    float64
	vel     float64 // Vertical velocity, positive = down
	w, h    float64
	gravity float64
	flap    float64
}

// NewFlyer creates a flyer at the configured start position, at rest.
func NewFlyer(cfg config.FlappyConfig) *Flyer {
	return &Flyer{
		x:       cfg.Player.X,
		y:       cfg.Player.Y,
		w:       cfg.Player.Width,
		h:       cfg.Player.Height,
		gravity: cfg.Physics.Gravity,
		flap:    cfg.Physics.FlapVelocity,
	}
}

// ApplyGravity integrates velocity first, then position.
func (f *Flyer) ApplyGravity(dt float64) {
	f.vel += f.gravity * dt
	f.y += f.vel * dt
}

// Impulse replaces the current velocity with the flap velocity.
func (f *Flyer) Impulse() {
	f.vel = -f.flap
}

// BoundsCheck reports whether the flyer touches the ceiling or the ground.
func (f *Flyer) BoundsCheck(worldH float64) bool {
	return f.y <= 0 || f.y+f.h >= worldH
}

// Box returns the flyer's hitbox.
func (f *Flyer) Box() core.Box {
	return core.NewBox(f.x, f.y, f.w, f.h)
}

// X returns the fixed horizontal position.
func (f *Flyer) X() float64 { return f.x }

// Y returns the top of the hitbox.
func (f *Flyer) Y() float64 { return f.y }

// Velocity returns the vertical velocity.
func (f *Flyer) Velocity() float64 { return f.vel }
