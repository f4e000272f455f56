package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tap-ninja/internal/platform/tui"
	"github.com/vovakirdan/tap-ninja/internal/registry"
	"github.com/vovakirdan/tap-ninja/internal/storage"
)

var (
	flagTable bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the score history",
	Long: `Display the top 10 runs and the best score for a variant.

With --table an interactive table lists every variant (tab switches).
With --clear the history and best score of the variant are deleted.

Examples:
  tapninja scores
  tapninja scores runner_tap
  tapninja scores --table
  tapninja scores --best-store gdata`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagTable, "table", false, "Browse scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history and best score of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := resolveGame(args)
	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tapninja list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", info.Title)
		return
	}

	var best storage.BestScores = store
	if flagBestStore == "gdata" {
		if kv, kvErr := storage.OpenKV(gdataApp); kvErr == nil {
			best = kv
		}
	}

	if flagTable {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(bestView{store, best}, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tapninja play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if b, err := best.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", b)
	}
}

// bestView reads history from the database and the best score from the
// selected backend.
type bestView struct {
	*storage.Store
	best storage.BestScores
}

func (v bestView) BestScore(gameID string) (int, error) {
	return v.best.BestScore(gameID)
}
