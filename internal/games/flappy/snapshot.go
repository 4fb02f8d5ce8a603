package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// FlyerView is the read-only state of the flyer.
type FlyerView struct {
	X, Y     float64
	W, H     float64
	Velocity float64
}

// Snapshot is an immutable copy of everything the renderer and HUD need.
type Snapshot struct {
	Tick      uint64
	Run       int
	State     State
	Flyer     FlyerView
	Gates     []Gate
	Pairs     []GatePair
	Score     int
	Best      int
	Countdown int // Remaining countdown steps while CountingDown
	Tier      string
	Collision Collision // Cause of the last game over
	Elapsed   float64   // Seconds spent running in this run
	World     config.WorldConfig
}

// Snapshot captures the current state. The returned value shares no memory
// with the machine.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Tick:  m.ticks,
		Run:   m.run,
		State: m.state,
		Flyer: FlyerView{
			X:        m.flyer.X(),
			Y:        m.flyer.Y(),
			W:        m.cfg.Player.Width,
			H:        m.cfg.Player.Height,
			Velocity: m.flyer.Velocity(),
		},
		Gates:     m.gates.Members(),
		Pairs:     m.gates.Pairs(),
		Score:     m.score.Current(),
		Best:      m.score.Best(),
		Countdown: m.countdown,
		Tier:      m.tier.Name,
		Collision: m.lastHit,
		Elapsed:   m.elapsed,
		World:     m.cfg.World,
	}
}

// Over reports whether the snapshot was taken after a terminal collision.
func (s Snapshot) Over() bool {
	return s.State == GameOver
}
