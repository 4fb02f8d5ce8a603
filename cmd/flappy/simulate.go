package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimDuration float64
	flagSimBias     float64
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the autopilot without a terminal",
	Long: `Run the game headless with the built-in autopilot and report every
finished run. Useful for checking a config before playing it.

The machine restarts on its own after each collision, so a long
simulation covers many runs. With --save, finished runs are written
to the score store selected by --db; otherwise an in-memory store is used.

Examples:
  flappy simulate
  flappy simulate --duration 300 --seed 7
  flappy simulate --config ./hard.toml --difficulty hard
  flappy simulate --bias 10 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSimDuration, "duration", 60, "Simulated seconds")
	simulateCmd.Flags().Float64Var(&flagSimBias, "bias", 0, "Autopilot aim offset below the gap center")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save finished runs to --db")
}

// simOptions configures a headless session.
type simOptions struct {
	Config  config.FlappyConfig
	Store   storage.Backend
	Logger  *log.Logger
	Seed    int64
	FPS     int
	Seconds float64
	Bias    float64
}

// simResult summarizes a headless session.
type simResult struct {
	Ticks     uint64
	Runs      []int // Scores of finished runs in order
	Best      int
	LastScore int // Score of the run still in progress
}

// simulate ticks a machine driven by the autopilot at a fixed rate.
func simulate(opts simOptions) (simResult, error) {
	var res simResult
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	var m *flappy.Machine
	hook := func(_, to flappy.State) {
		if to != flappy.GameOver {
			return
		}
		s := m.Snapshot()
		res.Runs = append(res.Runs, s.Score)
		opts.Logger.Info("run over", "run", s.Run, "score", s.Score, "cause", s.Collision, "seconds", fmt.Sprintf("%.1f", s.Elapsed))
		if opts.Store != nil && s.Score > 0 {
			if _, err := opts.Store.SaveScore(flappy.GameID, s.Score); err != nil {
				opts.Logger.Warn("could not save score", "score", s.Score, "error", err)
			}
		}
	}

	var store flappy.BestScoreStore
	if opts.Store != nil {
		store = opts.Store
	}
	m, err := flappy.New(opts.Config,
		flappy.WithStore(store),
		flappy.WithLogger(opts.Logger),
		flappy.WithSeed(opts.Seed),
		flappy.WithTransitionHook(hook),
	)
	if err != nil {
		return res, err
	}

	pilot := flappy.Autopilot{Bias: opts.Bias}
	total := int(opts.Seconds * float64(fps))
	for i := 0; i < total; i++ {
		m.Apply(pilot.Decide(m.Snapshot()))
		m.Tick(dt)
	}

	final := m.Snapshot()
	res.Ticks = final.Tick
	res.Best = final.Best
	if !final.Over() {
		res.LastScore = final.Score
	}
	return res, nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	var store storage.Backend = storage.NewMemory()
	if flagSimSave {
		if store, err = storage.Open(flagDBPath); err != nil {
			fail("opening scores database: %v", err)
		}
	}
	defer store.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	res, err := simulate(simOptions{
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Seed:    seed,
		FPS:     flagFPS,
		Seconds: flagSimDuration,
		Bias:    flagSimBias,
	})
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Simulated %.0fs (%d ticks) in %s, seed %d\n", flagSimDuration, res.Ticks, time.Since(start).Round(time.Millisecond), seed)
	fmt.Printf("Finished runs: %d\n", len(res.Runs))
	for i, score := range res.Runs {
		fmt.Printf("  run %-3d  score %d\n", i+1, score)
	}
	if res.LastScore > 0 {
		fmt.Printf("Run in progress: %d\n", res.LastScore)
	}
	fmt.Printf("Best: %d\n", res.Best)
}
