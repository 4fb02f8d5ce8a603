package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history",
	Long: `Display the top scores, aggregate stats and the best score.

Examples:
  flappy scores
  flappy scores --limit 25
  flappy scores --db ./other.db
  flappy scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and the best score")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(flappy.GameID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.TopScores(flappy.GameID, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println("High Scores - Flappy")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return
	}
	printScores(os.Stdout, scores)

	fmt.Println()
	if best, err := store.BestScore(flappy.GameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.Stats(flappy.GameID); err == nil {
		fmt.Printf("Runs: %d  Average: %.1f  Total: %d\n", stats.GamesCount, stats.AvgScore, stats.TotalScore)
	}
}

// printScores writes the ranked score table.
func printScores(w io.Writer, scores []storage.ScoreEntry) {
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}
}
