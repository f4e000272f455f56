package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tap-ninja/internal/games/runner"
	"github.com/vovakirdan/tap-ninja/internal/platform/window"
	"github.com/vovakirdan/tap-ninja/internal/registry"
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Open the runner in a window drawn with ebiten. Keys are the same as in
the terminal; a left click or touch also jumps or restarts.

Examples:
  tapninja window
  tapninja window runner_tap --difficulty normal`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func runWindow(cmd *cobra.Command, args []string) {
	gameID := resolveGame(args)
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tapninja list' to see available games.")
		os.Exit(1)
	}
	rg, ok := game.(*runner.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q cannot run in a window\n", gameID)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, "tapninja")
	s := openSession(logger, true)
	defer s.Close()

	err = window.Run(rg, window.Options{
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Logger:     logger,
		OnGameOver: s.saveScore,
	})
	if err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", err)
		os.Exit(1)
	}
}
