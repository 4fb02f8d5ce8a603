// flappy is a side-scrolling gate flyer for the terminal.
//
// Usage:
//
//	flappy                   - Open the main menu
//	flappy play              - Start a run right away
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show the score history
//	flappy simulate          - Run a headless autopilot session
//	flappy config dump       - Print the effective game config
//	flappy config validate   - Check a config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <dsn>            - Score store: sqlite path, postgres:// URL or memory:
//	--config <path>       - Game config file (YAML or TOML)
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly through the gates in your terminal",
	Long: `Flappy is a terminal side-scroller. Keep the flyer in the air and
steer it through the gaps between gates. Each pair of gates passed
scores a point, and the gaps tighten as the score grows.

Available commands:
  play      - Start a run directly
  menu      - Interactive menu (default)
  serve     - Start SSH server for remote play
  scores    - View the score history
  simulate  - Run the autopilot without a terminal
  config    - Inspect or validate game configs

Examples:
  flappy
  flappy play --difficulty hard
  flappy serve --ssh :2222
  flappy scores --db postgres://localhost/flappy
  flappy simulate --duration 120 --seed 42`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Score store: sqlite path, postgres:// URL or memory:")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadGameConfig loads the config selected by --config and applies --difficulty.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyFlappyPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger builds the process logger. Interactive commands own the terminal,
// so without --log-file they log nowhere.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	opts := logging.Options{
		Level:  flagLogLevel,
		Prefix: "flappy",
		File:   flagLogFile,
	}
	if interactive && flagLogFile == "" {
		opts.Output = io.Discard
	}
	return logging.New(opts)
}

// terminalRuntime returns the runtime config for the local terminal.
func terminalRuntime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	return rt
}

// openStore opens the score store. Games still work without one.
func openStore(logger *log.Logger) storage.Backend {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "dsn", flagDBPath, "error", err)
		return nil
	}
	return store
}
