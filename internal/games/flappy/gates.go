package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// GateKind tells which side of the gap a member blocks.
type GateKind uint8

const (
	Upper GateKind = iota // From the ceiling down to the gap
	Lower                 // From the gap down to the ground
)

// String returns the kind name.
func (k GateKind) String() string {
	if k == Upper {
		return "upper"
	}
	return "lower"
}

// Gate is one member of a gate pair.
// Both members of a pair share X and the gap geometry.
type Gate struct {
	ID        int      // Fixed pool index
	PairID    int      // Pair this member was last placed with
	Kind      GateKind // Upper or lower member
	X         float64  // Left edge
	Width     float64
	GapY      float64 // Top of the gap
	GapHeight float64
	Tier      string // Tier the member was placed with
	Immovable bool   // Gates never react to collisions
}

// Right returns the x-coordinate of the right edge.
func (g Gate) Right() float64 {
	return g.X + g.Width
}

// Box returns the member's blocking area in a world of the given height.
func (g Gate) Box(worldH float64) core.Box {
	if g.Kind == Upper {
		return core.NewBox(g.X, 0, g.Width, g.GapY)
	}
	bottomY := g.GapY + g.GapHeight
	return core.NewBox(g.X, bottomY, g.Width, worldH-bottomY)
}

// GatePair is the read-only view of a placed pair.
type GatePair struct {
	ID        int
	X         float64
	Width     float64
	GapY      float64
	GapHeight float64
	Tier      string
}

// GateField owns a fixed pool of gate members and scrolls them left.
// Members are mutated in place and never reallocated.
type GateField struct {
	members    []Gate
	candidates []int // Scratch buffer for Recycle
	speed      float64
	width      float64
	worldH     float64
	margin     float64
	rng        *rand.Rand
}

// NewGateField allocates 2*pairs members, all parked at x = 0.
func NewGateField(cfg config.FlappyConfig, rng *rand.Rand) *GateField {
	n := cfg.Gates.Pairs * 2
	f := &GateField{
		members:    make([]Gate, n),
		candidates: make([]int, 0, n),
		speed:      cfg.Physics.GateSpeed,
		width:      cfg.Gates.Width,
		worldH:     cfg.World.Height,
		margin:     cfg.Gates.VerticalMargin,
		rng:        rng,
	}
	for i := range f.members {
		f.members[i] = Gate{
			ID:        i,
			PairID:    i / 2,
			Kind:      GateKind(i % 2),
			Width:     f.width,
			Immovable: true,
		}
	}
	return f
}

// SpawnInitial places every pair, each one a horizontal gap to the right of the previous.
func (f *GateField) SpawnInitial(tier config.Tier) {
	for i := 0; i+1 < len(f.members); i += 2 {
		f.place(i, i+1, tier)
	}
}

// Advance moves every member left by speed*dt.
func (f *GateField) Advance(dt float64) {
	for i := range f.members {
		f.members[i].X -= f.speed * dt
	}
}

// Recycle re-places members that scrolled fully off the left edge.
// Candidates are taken in scan order and recycled two at a time; a single
// leftover candidate waits for its partner. onPair is called once per
// recycled pair, before placement, and returns the tier to place it with.
// Returns the number of pairs recycled.
func (f *GateField) Recycle(onPair func() config.Tier) int {
	f.candidates = f.candidates[:0]
	for i := range f.members {
		if f.members[i].Right() <= 0 {
			f.candidates = append(f.candidates, i)
		}
	}

	pairs := 0
	for i := 0; i+1 < len(f.candidates); i += 2 {
		tier := onPair()
		f.place(f.candidates[i], f.candidates[i+1], tier)
		pairs++
	}
	return pairs
}

// place positions two members as one upper/lower pair right of the rightmost member.
func (f *GateField) place(upper, lower int, tier config.Tier) {
	gapHeight := f.draw(tier.Vertical.Min, tier.Vertical.Max)
	gapY := f.draw(f.margin, f.worldH-f.margin-gapHeight)
	x := f.RightmostX() + f.draw(tier.Horizontal.Min, tier.Horizontal.Max)

	pairID := f.members[upper].PairID
	for _, idx := range [2]int{upper, lower} {
		m := &f.members[idx]
		m.PairID = pairID
		m.X = x
		m.GapY = gapY
		m.GapHeight = gapHeight
		m.Tier = tier.Name
	}
	f.members[upper].Kind = Upper
	f.members[lower].Kind = Lower
}

// draw returns a uniform value in [lo, hi].
func (f *GateField) draw(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Float64()*(hi-lo)
}

// RightmostX returns the largest left edge in the pool.
func (f *GateField) RightmostX() float64 {
	rightmost := math.Inf(-1)
	for _, m := range f.members {
		rightmost = math.Max(rightmost, m.X)
	}
	return math.Max(rightmost, 0)
}

// Members returns a copy of all members in pool order.
func (f *GateField) Members() []Gate {
	out := make([]Gate, len(f.members))
	copy(out, f.members)
	return out
}

// Pairs returns one view per upper member, in pool order.
func (f *GateField) Pairs() []GatePair {
	out := make([]GatePair, 0, len(f.members)/2)
	for _, m := range f.members {
		if m.Kind != Upper {
			continue
		}
		out = append(out, GatePair{
			ID:        m.PairID,
			X:         m.X,
			Width:     m.Width,
			GapY:      m.GapY,
			GapHeight: m.GapHeight,
			Tier:      m.Tier,
		})
	}
	return out
}

// Overlaps reports whether any member's blocking area intersects b.
func (f *GateField) Overlaps(b core.Box) bool {
	for _, m := range f.members {
		if m.Box(f.worldH).Intersects(b) {
			return true
		}
	}
	return false
}
