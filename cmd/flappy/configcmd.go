package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or validate game configs",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective game config as YAML",
	Long: `Print the config the game would run with, after the search path
and --difficulty are applied. The output is a complete config file.

Examples:
  flappy config dump > ~/.flappy/configs/flappy.yaml
  flappy config dump --difficulty hard`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := loadGameConfig()
		if err != nil {
			fail("%v", err)
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fail("encoding config: %v", err)
		}
		os.Stdout.Write(data)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML or TOML config file",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		cfg, err := config.LoadFlappy(args[0])
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("%s: ok\n", args[0])
		describeDifficulty(os.Stdout, cfg)
	},
}

// describeDifficulty prints the tier table a config will play with.
func describeDifficulty(w io.Writer, cfg config.FlappyConfig) {
	d := config.NewDifficultyController(cfg.Difficulty)
	progression := "fixed"
	if d.IsEnabled() {
		progression = "by score"
	}
	fmt.Fprintf(w, "Difficulty: starts at %q, progression %s\n", d.Start().Name, progression)
	for _, tier := range d.Tiers() {
		fmt.Fprintf(w, "  %-8s from %3d  spacing %g-%g  gap %g-%g\n",
			tier.Name, tier.MinScore,
			tier.Horizontal.Min, tier.Horizontal.Max,
			tier.Vertical.Min, tier.Vertical.Max)
	}
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configValidateCmd)
}
