// Package runner implements Tap Ninja, a rooftop endless runner.
// The ninja runs automatically; jumping (and one double jump) carries it
// across the gaps between procedurally generated rooftops.
package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tap-ninja/internal/config"
	"github.com/vovakirdan/tap-ninja/internal/core"
	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
	"github.com/vovakirdan/tap-ninja/internal/registry"
)

// Registered game IDs.
const (
	GatedID = "runner"
	TapID   = "runner_tap"
)

// Game adapts the simulation to the registry.Game contract and draws it
// into a character screen.
type Game struct {
	id        string
	title     string
	startMode sim.StartMode

	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	sim     *sim.Game
	paused  bool
	frame   time.Duration // duration of one Step at the host tick rate

	hud hud
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

var (
	bestStores   func(gameID string) sim.BestScoreStore
	listeners    []sim.Listener
	errorHandler func(error)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file's own difficulty section.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetBestStore installs the factory that provides best-score persistence
// per game ID. nil disables persistence.
func SetBestStore(f func(gameID string) sim.BestScoreStore) {
	bestStores = f
}

// SetListeners installs event listeners (audio, logging) attached to every
// new run.
func SetListeners(ls ...sim.Listener) {
	listeners = ls
}

// SetErrorHandler installs the handler for swallowed collaborator failures.
func SetErrorHandler(f func(error)) {
	errorHandler = f
}

// New creates the gated-start variant.
func New() *Game {
	return &Game{id: GatedID, title: "Tap Ninja", startMode: sim.StartGated}
}

// NewTap creates the variant where the first tap starts the run.
func NewTap() *Game {
	return &Game{id: TapID, title: "Tap Ninja (tap to start)", startMode: sim.StartTap}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a fresh simulation in the idle
// phase. Later restarts happen inside the simulation with new seeds drawn
// from runtime.Seed, so a session is reproducible from its seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.frame = runtime.FrameDuration()

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		g.reportError(err)
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	cfg.Phases.StartMode = string(g.startMode)
	g.cfg = cfg

	seeds := rand.New(rand.NewSource(runtime.Seed))
	opts := sim.Options{
		Seed:      runtime.Seed,
		Reseed:    seeds.Int63,
		Listeners: append([]sim.Listener{sim.ListenerFunc(g.hud.HandleEvent)}, listeners...),
		OnError:   g.reportError,
	}
	if bestStores != nil {
		opts.Best = bestStores(g.id)
	}

	g.hud.reset()
	s, err := sim.New(cfg, opts)
	if err != nil {
		g.reportError(err)
		g.cfg = config.DefaultRunnerConfig()
		g.cfg.Phases.StartMode = string(g.startMode)
		s, _ = sim.New(g.cfg, opts)
	}
	g.sim = s
}

func (g *Game) reportError(err error) {
	if errorHandler != nil {
		errorHandler(err)
	}
}

// Step advances the game by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.sim.Phase() == sim.PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	presses := sim.Presses{
		Action:  in.Has(core.ActionJump) || in.Has(core.ActionConfirm),
		Touch:   in.Has(core.ActionTap),
		Restart: in.Has(core.ActionRestart),
	}
	for _, raw := range presses.Inputs() {
		g.sim.Push(raw)
	}

	g.Advance(g.frame)
	return core.StepResult{State: g.State()}
}

// Advance runs the simulation for one frame of length dt, unless paused.
func (g *Game) Advance(dt time.Duration) {
	if g.paused {
		return
	}
	g.sim.Advance(dt)
	g.hud.update(dt)
}

// Push queues a raw device input for the next frame.
func (g *Game) Push(in sim.RawInput) {
	g.sim.Push(in)
}

// TogglePause pauses or resumes a run in progress.
func (g *Game) TogglePause() {
	if g.sim.Phase() == sim.PhasePlaying {
		g.paused = !g.paused
	}
}

// Paused reports whether the run is paused.
func (g *Game) Paused() bool { return g.paused }

// Snapshot returns the latest simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.sim.Snapshot()
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// DisplayedScore is the score shown on the end screen, counting up from
// zero after a fall.
func (g *Game) DisplayedScore() int {
	return g.hud.displayed(g.sim.Snapshot().Score)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.sim.Snapshot()
	return core.GameState{
		Score:    s.Score,
		Best:     s.Best,
		GameOver: s.Phase == sim.PhaseEnded,
		Paused:   g.paused,
	}
}

// Register the game variants with the registry
func init() {
	registry.Register(GatedID, func() registry.Game {
		return New()
	})
	registry.Register(TapID, func() registry.Game {
		return NewTap()
	})
}
