package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var flagStartScene string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the main menu",
	Long: `Open the main menu to start a run or browse the score history.

Navigation:
  Up/Down or k/j  - Move selection
  Enter           - Select
  Esc             - Back
  Q/Ctrl+C        - Quit

Examples:
  flappy menu
  flappy menu --start scores`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagStartScene, "start", "menu", "First screen: menu, play or scores")
}

func runMenu(_ *cobra.Command, _ []string) {
	scene, ok := tui.ParseScene(flagStartScene)
	if !ok {
		fail("unknown screen %q (want menu, play or scores)", flagStartScene)
	}
	runApp(scene)
}
