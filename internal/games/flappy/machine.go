// Package flappy implements the gate-runner simulation: a flyer under constant
// gravity that must pass through a stream of gate pairs by timing flaps.
//
// Machine is the only entry point for the host loop. Input arrives as events
// that are queued and applied at the start of the next Tick, so the renderer
// never observes a half-integrated frame.
package flappy

import (
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// GameID is the key used for score storage.
const GameID = "flappy"

// State is the game state machine state.
type State int

const (
	Ready State = iota
	Running
	Paused
	CountingDown
	GameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case CountingDown:
		return "counting_down"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a discrete input delivered to the machine.
type Event int

const (
	EventFlap Event = iota
	EventPause
	EventResume
	EventRestart
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventFlap:
		return "flap"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Option configures a Machine.
type Option func(*Machine)

// WithStore sets the best-score store.
func WithStore(store BestScoreStore) Option {
	return func(m *Machine) { m.store = store }
}

// WithLogger sets the logger used for transitions and store failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithSeed seeds gate placement. Equal seeds and inputs replay identically.
func WithSeed(seed int64) Option {
	return func(m *Machine) { m.seed = seed }
}

// WithTransitionHook registers fn to be called on every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(m *Machine) { m.onTransition = fn }
}

// Machine owns every simulation component of a run.
type Machine struct {
	cfg          config.FlappyConfig
	store        BestScoreStore
	logger       *log.Logger
	seed         int64
	rng          *rand.Rand
	onTransition func(from, to State)

	mu      sync.Mutex
	pending []Event

	state      State
	flyer      *Flyer
	gates      *GateField
	difficulty *config.DifficultyController
	tier       config.Tier
	score      *ScoreTracker

	countdown int     // Remaining countdown steps
	timer     float64 // Seconds accumulated towards the next countdown step or restart
	lastHit   Collision
	elapsed   float64 // Seconds spent running in the current run
	ticks     uint64
	run       int
}

// New validates cfg and builds a machine in the Ready state.
func New(cfg config.FlappyConfig, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:  cfg,
		seed: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	m.rng = rand.New(rand.NewSource(m.seed))
	m.difficulty = config.NewDifficultyController(cfg.Difficulty)
	m.score = NewScoreTracker(m.store, GameID, m.logger)
	m.rebuild()
	m.state = Ready
	return m, nil
}

// Send queues an event for the next tick. Safe to call from any goroutine.
func (m *Machine) Send(ev Event) {
	m.mu.Lock()
	m.pending = append(m.pending, ev)
	m.mu.Unlock()
}

// Apply queues the events for one frame of platform input.
// The pause action resumes when the game is paused. Apply reads the current
// state, so unlike Send it must be called from the goroutine that calls Tick.
func (m *Machine) Apply(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		m.Send(EventRestart)
	}
	if in.Has(core.ActionPause) {
		if m.state == Paused {
			m.Send(EventResume)
		} else {
			m.Send(EventPause)
		}
	}
	if in.Has(core.ActionFlap) {
		m.Send(EventFlap)
	}
}

// Tick advances the simulation by dt seconds. Non-positive dt is ignored.
func (m *Machine) Tick(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	m.ticks++

	if m.state == Ready {
		m.transition(Running)
	}
	m.drain()

	switch m.state {
	case Running:
		m.step(dt)

	case CountingDown:
		m.timer += dt
		for m.countdown > 0 && m.timer >= m.cfg.Timing.CountdownStep {
			m.timer -= m.cfg.Timing.CountdownStep
			m.countdown--
		}
		if m.countdown == 0 {
			m.timer = 0
			m.transition(Running)
		}

	case GameOver:
		m.timer += dt
		if m.timer >= m.cfg.Timing.RestartDelay {
			m.restart()
		}
	}
}

// drain applies queued events in arrival order.
func (m *Machine) drain() {
	m.mu.Lock()
	events := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, ev := range events {
		m.handle(ev)
	}
}

// handle applies one event. Events that are not legal in the current state are ignored.
func (m *Machine) handle(ev Event) {
	switch ev {
	case EventFlap:
		if m.state == Running {
			m.flyer.Impulse()
		}
	case EventPause:
		if m.state == Running {
			m.transition(Paused)
		}
	case EventResume:
		if m.state == Paused {
			m.countdown = m.cfg.Timing.CountdownSteps
			m.timer = 0
			m.transition(CountingDown)
		}
	case EventRestart:
		m.restart()
	}
}

// step runs one Running tick: integrate, collide, then recycle and score.
func (m *Machine) step(dt float64) {
	m.flyer.ApplyGravity(dt)
	m.gates.Advance(dt)
	m.elapsed += dt

	if hit := Check(m.flyer, m.gates, m.cfg.World.Height); hit.Terminal() {
		m.lastHit = hit
		m.timer = 0
		m.logger.Debug("collision", "kind", hit, "score", m.score.Current())
		m.transition(GameOver)
		return
	}

	m.gates.Recycle(m.passPair)
}

// passPair scores one recycled pair and returns the tier to place it with.
// The pair uses the tier that was active before this point was scored.
func (m *Machine) passPair() config.Tier {
	tier := m.tier
	m.score.OnGatePassed()
	m.tier = m.difficulty.TierFor(m.score.Current())
	if m.tier.Name != tier.Name {
		m.logger.Debug("difficulty change", "from", tier.Name, "to", m.tier.Name, "score", m.score.Current())
	}
	return tier
}

// restart discards the run and starts a new one. The best score survives.
func (m *Machine) restart() {
	m.rebuild()
	m.score.Reset()
	m.transition(Ready)
	m.transition(Running)
}

// rebuild reconstructs the per-run components.
func (m *Machine) rebuild() {
	m.flyer = NewFlyer(m.cfg)
	m.tier = m.difficulty.Start()
	m.gates = NewGateField(m.cfg, m.rng)
	m.gates.SpawnInitial(m.tier)
	m.countdown = 0
	m.timer = 0
	m.lastHit = NoCollision
	m.elapsed = 0
	m.run++
}

// transition moves to a new state and notifies the hook.
func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	m.logger.Debug("state change", "from", from, "to", to, "run", m.run)
	if m.onTransition != nil {
		m.onTransition(from, to)
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() config.FlappyConfig {
	return m.cfg
}
