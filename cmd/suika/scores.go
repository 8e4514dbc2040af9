package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-suika/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and run stats",
	Long: `Display the best runs with their highest tier, merges and play time.

Examples:
  suika scores
  suika scores --recent
  suika scores --limit 25
  suika scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored scores and runs")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	var runs []storage.RunRecord
	title := "High Scores"
	if flagRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(gameID, flagLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - Suika\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'suika play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-6s  %-6s  %-10s  %s\n", "Rank", "Score", "Tier", "Merges", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-6s  %-6s  %-10s  %s\n", "----", "-----", "----", "------", "----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-7d  %-4d  %-6d  %-6s  %-10s  %s\n",
			i+1, r.Score, r.MaxTier+1, r.Merges, r.Duration.Round(time.Second), player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.0f  Play time: %s\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.PlayTime.Round(time.Second))
}
