package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starsurge/internal/registry"
	"github.com/vovakirdan/starsurge/internal/storage"
)

var (
	flagRuns  bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the high-score table",
	Long: `Display the top ten named scores for a mode (default: starsurge).

Examples:
  starsurge scores
  starsurge scores starsurge_endless
  starsurge scores --runs
  starsurge scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recorded runs instead of the named table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "starsurge"
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'starsurge list' to see available modes)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	if flagRuns {
		return printRuns(store, gameID, game.Title())
	}

	table, err := store.HighScores(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(table) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'starsurge play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "Rank", storage.MaxNameLength, "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "----", storage.MaxNameLength, "----", "-----", "----")
	for i, h := range table {
		fmt.Printf("  %-4d  %-*s  %-8d  %s\n", i+1, storage.MaxNameLength, h.Name, h.Score, h.Date.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(store *storage.Store, gameID, title string) error {
	runs, err := store.TopScores(gameID, 0)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n\n", title)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %s\n", i+1, r.Score, r.Level, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Fprintf(os.Stdout, "Runs: %d  Best: %d  Best level: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestLevel, stats.AvgScore)
	}
	return nil
}
