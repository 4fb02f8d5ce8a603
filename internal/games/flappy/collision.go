package flappy

// Collision is the result of a per-tick collision check.
type Collision int

const (
	NoCollision Collision = iota
	HitGate               // Flyer overlaps a gate member
	OutOfBounds           // Flyer touches the ceiling or the ground
)

// String returns the collision name.
func (c Collision) String() string {
	switch c {
	case NoCollision:
		return "none"
	case HitGate:
		return "hit_gate"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Terminal reports whether the collision ends the run.
func (c Collision) Terminal() bool {
	return c == HitGate || c == OutOfBounds
}

// Check tests the flyer against every gate member and the world bounds.
// Gate hits take precedence when both apply.
func Check(f *Flyer, gates *GateField, worldH float64) Collision {
	if gates.Overlaps(f.Box()) {
		return HitGate
	}
	if f.BoundsCheck(worldH) {
		return OutOfBounds
	}
	return NoCollision
}
