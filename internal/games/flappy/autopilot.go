package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Autopilot is a deterministic flap policy used by the headless simulator
// and in tests. It aims the flyer at the middle of the next gap.
type Autopilot struct {
	// Bias shifts the aim point down from the gap center, in world units.
	Bias float64
}

// Decide returns the input for the next tick given the current snapshot.
func (a Autopilot) Decide(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if s.State != Running && s.State != Ready {
		return in
	}

	target, ok := nextPair(s)
	aim := s.World.Height / 2
	if ok {
		aim = target.GapY + target.GapHeight/2 + a.Bias
	}

	center := s.Flyer.Y + s.Flyer.H/2
	if center > aim && s.Flyer.Velocity >= 0 {
		in.Set(core.ActionFlap)
	}
	return in
}

// nextPair returns the closest pair whose right edge is still ahead of the flyer.
func nextPair(s Snapshot) (GatePair, bool) {
	var best GatePair
	found := false
	for _, p := range s.Pairs {
		if p.X+p.Width < s.Flyer.X {
			continue
		}
		if !found || p.X < best.X {
			best = p
			found = true
		}
	}
	return best, found
}
