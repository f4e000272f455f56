// tapninja is a rooftop endless runner for the terminal, a desktop window
// and SSH.
//
// Usage:
//
//	tapninja list              - List game variants
//	tapninja play [game]       - Play in the terminal
//	tapninja window [game]     - Play in a desktop window
//	tapninja serve [game]      - Start SSH server for remote play
//	tapninja scores [game]     - Show the score history
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.tapninja/scores.db)
//	--config <path>      - Load a custom runner config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--best-store <kind>  - Where the best score lives: sqlite or gdata
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tap-ninja/internal/config"
	"github.com/vovakirdan/tap-ninja/internal/games/runner"
	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagStartMode  string
	flagBestStore  string
	flagLogLevel   string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tapninja",
	Short: "Tap Ninja - a rooftop endless runner",
	Long: `Tap Ninja is an endless runner: the ninja runs across the rooftops on
its own, and you jump (and double jump) over the gaps. Every rooftop cell
you cross and every coin you grab adds to the score, and the pace picks up
as you go.

Available commands:
  list     - Show the game variants
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the score history

Examples:
  tapninja play
  tapninja play --start-mode tap --difficulty hard
  tapninja window --seed 42
  tapninja serve --ssh :2222
  tapninja scores --table`,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.tapninja/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagStartMode, "start-mode", "gated", "How a run starts: gated (title, get ready) or tap")
	pf.StringVar(&flagBestStore, "best-store", "sqlite", "Best score backend: sqlite or gdata")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound effects")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyGlobalFlags validates the shared flags and hands the game settings
// to the runner package before any game is created.
func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
			return err
		}
	}
	if _, err := sim.ParseStartMode(flagStartMode); err != nil {
		return err
	}
	switch flagBestStore {
	case "sqlite", "gdata":
	default:
		return fmt.Errorf("--best-store must be sqlite or gdata, got %q", flagBestStore)
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger builds the process logger at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// resolveGame picks the variant from the optional argument, or from
// --start-mode when none is given.
func resolveGame(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if mode, _ := sim.ParseStartMode(flagStartMode); mode == sim.StartTap {
		return runner.TapID
	}
	return runner.GatedID
}
