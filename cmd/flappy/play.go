package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start flying right away, skipping the menu.

Controls:
  Space/Up   - Flap
  P          - Pause (a 3 second countdown follows resume)
  R          - Restart
  Esc/B      - Back to menu
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at the widest gaps, tighten with score
  normal - Start at the second tier, tighten with score
  hard   - Start at the tightest tier
  fixed  - No progression, stays at the config's start tier

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runApp(tui.ScenePlay)
	},
}

// runApp starts the local TUI on the given scene.
func runApp(start tui.SceneID) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	store := openStore(logger)

	app := tui.NewApp(tui.Options{
		Config:  cfg,
		Runtime: terminalRuntime(),
		Store:   store,
		Logger:  logger,
		Start:   start,
	})
	runErr := tui.Run(app)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
