package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestField(t *testing.T, seed int64) (*GateField, config.FlappyConfig) {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	f := NewGateField(cfg, rand.New(rand.NewSource(seed)))
	f.SpawnInitial(cfg.Difficulty.Tiers[0])
	return f, cfg
}

func TestGateFieldPoolSize(t *testing.T) {
	f, cfg := newTestField(t, 1)

	members := f.Members()
	if len(members) != cfg.Gates.Pairs*2 {
		t.Fatalf("pool size = %d, expected %d", len(members), cfg.Gates.Pairs*2)
	}
	if len(f.Pairs()) != cfg.Gates.Pairs {
		t.Errorf("pairs = %d, expected %d", len(f.Pairs()), cfg.Gates.Pairs)
	}
	for _, m := range members {
		if !m.Immovable {
			t.Errorf("member %d is not immovable", m.ID)
		}
	}
}

func TestSpawnInitialSpacing(t *testing.T) {
	f, cfg := newTestField(t, 7)
	easy := cfg.Difficulty.Tiers[0]

	prevX := 0.0
	for i, p := range f.Pairs() {
		dx := p.X - prevX
		if dx < easy.Horizontal.Min || dx > easy.Horizontal.Max {
			t.Errorf("pair %d: spacing %g outside [%g, %g]", i, dx, easy.Horizontal.Min, easy.Horizontal.Max)
		}
		prevX = p.X
	}
}

func TestPlacementStaysInsideMargins(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	f := NewGateField(cfg, rand.New(rand.NewSource(99)))

	for _, tier := range cfg.Difficulty.Tiers {
		for round := 0; round < 50; round++ {
			f.SpawnInitial(tier)
			for _, p := range f.Pairs() {
				if p.GapHeight < tier.Vertical.Min || p.GapHeight > tier.Vertical.Max {
					t.Fatalf("tier %s: gap height %g outside %+v", tier.Name, p.GapHeight, tier.Vertical)
				}
				if p.GapY < cfg.Gates.VerticalMargin {
					t.Fatalf("tier %s: gap top %g above margin", tier.Name, p.GapY)
				}
				if p.GapY+p.GapHeight > cfg.World.Height-cfg.Gates.VerticalMargin {
					t.Fatalf("tier %s: gap bottom %g below margin", tier.Name, p.GapY+p.GapHeight)
				}
			}
		}
	}
}

func TestAdvanceMovesEveryMember(t *testing.T) {
	f, _ := newTestField(t, 3)
	before := f.Members()

	f.Advance(0.5)

	for i, m := range f.Members() {
		if !approx(before[i].X-m.X, 100) {
			t.Errorf("member %d moved %g, expected 100", i, before[i].X-m.X)
		}
	}
}

func TestRecycleMatchedPair(t *testing.T) {
	f, _ := newTestField(t, 5)
	rightmost := f.RightmostX()
	f.members[0].X = -f.width
	f.members[1].X = -f.width

	calls := 0
	n := f.Recycle(func() config.Tier {
		calls++
		return config.DefaultTiers()[0]
	})

	if n != 1 || calls != 1 {
		t.Fatalf("Recycle() = %d with %d callbacks, expected 1 and 1", n, calls)
	}
	upper, lower := f.members[0], f.members[1]
	if upper.X != lower.X || upper.GapY != lower.GapY || upper.GapHeight != lower.GapHeight {
		t.Errorf("recycled members do not share geometry: %+v %+v", upper, lower)
	}
	if upper.Kind != Upper || lower.Kind != Lower {
		t.Errorf("recycled kinds = %v/%v, expected upper/lower", upper.Kind, lower.Kind)
	}
	if upper.X-rightmost < 480 || upper.X-rightmost > 500 {
		t.Errorf("recycled pair %g right of rightmost, expected [480, 500]", upper.X-rightmost)
	}
}

func TestRecycleSkipsSingleCandidate(t *testing.T) {
	f, _ := newTestField(t, 5)
	f.members[0].X = -100

	n := f.Recycle(func() config.Tier {
		t.Fatal("onPair must not be called for a lone candidate")
		return config.Tier{}
	})

	if n != 0 {
		t.Errorf("Recycle() = %d, expected 0", n)
	}
	if f.members[0].X != -100 {
		t.Errorf("lone candidate moved to %g", f.members[0].X)
	}
}

func TestRecycleOddCandidatesLeavesOne(t *testing.T) {
	f, _ := newTestField(t, 5)
	for _, i := range []int{0, 1, 2} {
		f.members[i].X = -100
	}

	n := f.Recycle(func() config.Tier { return config.DefaultTiers()[0] })

	if n != 1 {
		t.Fatalf("Recycle() = %d, expected 1", n)
	}
	if f.members[0].X <= 0 || f.members[1].X <= 0 {
		t.Error("first two candidates should have been placed")
	}
	if f.members[2].X != -100 {
		t.Errorf("third candidate moved to %g, expected to wait", f.members[2].X)
	}
}

func TestRecycleRequiresFullyOffscreen(t *testing.T) {
	f, _ := newTestField(t, 5)
	// Right edge still at x = 1
	f.members[0].X = 1 - f.width
	f.members[1].X = 1 - f.width

	if n := f.Recycle(func() config.Tier { return config.DefaultTiers()[0] }); n != 0 {
		t.Errorf("Recycle() = %d, expected 0 for a pair still on screen", n)
	}
}

func TestRecycleKeepsPoolSize(t *testing.T) {
	f, cfg := newTestField(t, 11)
	tier := cfg.Difficulty.Tiers[0]

	for i := 0; i < 2000; i++ {
		f.Advance(1.0 / 60)
		f.Recycle(func() config.Tier { return tier })
		if len(f.members) != cfg.Gates.Pairs*2 {
			t.Fatalf("pool size changed to %d", len(f.members))
		}
	}
	for _, p := range f.Pairs() {
		if p.X+p.Width <= 0 {
			t.Errorf("pair %d left offscreen at x=%g", p.ID, p.X)
		}
	}
}

func TestGateBoxes(t *testing.T) {
	upper := Gate{Kind: Upper, X: 100, Width: 52, GapY: 150, GapHeight: 350}
	lower := upper
	lower.Kind = Lower

	ub := upper.Box(600)
	if ub.Y != 0 || ub.H != 150 {
		t.Errorf("upper box = %+v, expected y=0 h=150", ub)
	}
	lb := lower.Box(600)
	if lb.Y != 500 || lb.H != 100 {
		t.Errorf("lower box = %+v, expected y=500 h=100", lb)
	}
}
