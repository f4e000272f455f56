package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tap-ninja/internal/config"
	"github.com/vovakirdan/tap-ninja/internal/core"
	"github.com/vovakirdan/tap-ninja/internal/platform/tui"
	"github.com/vovakirdan/tap-ninja/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal. Without a game ID the variant follows
--start-mode: "runner" (title and get-ready screens) or "runner_tap"
(the first tap starts running).

Controls:
  Space/Up/W  - Start, jump, double jump in the air
  Click       - Same as space; restarts after game over
  P/Esc       - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save a text screenshot to ~/.tapninja/screenshots
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at base speed, speed up as you go
  normal - Start 30% of the way to top speed
  hard   - Start 70% of the way to top speed
  fixed  - Constant speed

Logs go to ~/.tapninja/tapninja.log so they do not tear the screen.

Examples:
  tapninja play
  tapninja play runner_tap
  tapninja play --difficulty hard --seed 7
  tapninja play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := resolveGame(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tapninja list' to see available games.")
		os.Exit(1)
	}

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
	}
	logger := newLogger(discardIfNil(logFile), "tapninja")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	s := openSession(logger, true)
	defer s.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	logger.Info("starting run", "game", gameID, "seed", flagSeed, "fps", flagFPS)
	if err := tui.Run(game, s.scores(), cfg, logger); err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// openLogFile opens ~/.tapninja/tapninja.log for appending.
func openLogFile() (*os.File, error) {
	path := config.UserPath("tapninja.log")
	if path == "" {
		return nil, fmt.Errorf("cannot resolve home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// discardIfNil keeps a nil *os.File from becoming a non-nil io.Writer.
func discardIfNil(f *os.File) io.Writer {
	if f == nil {
		return io.Discard
	}
	return f
}
