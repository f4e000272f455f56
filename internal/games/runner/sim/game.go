// Package sim is the rooftop runner simulation: physics, landing and coin
// collision, procedural platforms, scoring and the game phases. It has no
// rendering, audio or device code; hosts drive it with Tick and input
// requests and draw from Snapshot.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tap-ninja/internal/config"
)

// StepDuration is the frame time that corresponds to a scale of 1.
const StepDuration = time.Second / 60

// BestScoreStore persists the best score between runs.
type BestScoreStore interface {
	LoadBest() (int, error)
	SaveBest(score int) error
}

// Options carries the collaborators of a Game. Every field is optional.
type Options struct {
	// Seed initializes the random source for the first run.
	Seed int64
	// Source builds the random source for a seed. Defaults to NewRand.
	Source func(seed int64) RandSource
	// Reseed picks the seed of each restarted run. When nil the same seed
	// is reused, so every run replays the same level.
	Reseed func() int64
	// Best persists the best score.
	Best BestScoreStore
	// Listeners receive events synchronously during ticks.
	Listeners []Listener
	// OnError receives collaborator failures (store errors, listener
	// panics). They never interrupt the simulation.
	OnError func(error)
}

// Snapshot is a self-contained copy of the state presentation needs.
// Its slices are never shared with the Game.
type Snapshot struct {
	Tick        int
	Phase       Phase
	Body        Body
	Platforms   []Platform
	Coins       []Coin
	CameraX     float64
	BackgroundX float64
	Score       int
	Speed       float64
	Best        int
}

// Game owns one run: the body, the level, the camera and the score.
type Game struct {
	cfg    config.RunnerConfig
	opts   Options
	phases *PhaseMachine
	events bus
	level  *Generator
	queue  []RawInput

	seed      int64
	tick      int
	body      Body
	cameraX   float64
	score     int
	speed     float64
	cell      int // highest scoring cell credited this run
	best      int
	underflow int

	snap Snapshot
}

// New validates cfg and builds a game in the idle phase with its initial
// level already generated.
func New(cfg config.RunnerConfig, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	mode, err := ParseStartMode(cfg.Phases.StartMode)
	if err != nil {
		return nil, err
	}
	if opts.Source == nil {
		opts.Source = NewRand
	}

	g := &Game{
		cfg:  cfg,
		opts: opts,
		seed: opts.Seed,
	}
	g.events.onError = opts.OnError
	for _, l := range opts.Listeners {
		g.events.subscribe(l)
	}
	g.phases = NewPhaseMachine(mode, g.phaseChanged)
	g.level = NewGenerator(cfg.Level, opts.Source(g.seed))
	g.resetRun()
	g.loadBest()
	g.publish()
	return g, nil
}

// Subscribe adds a listener for subsequent events.
func (g *Game) Subscribe(l Listener) {
	g.events.subscribe(l)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phases.Phase() }

// Snapshot returns the state published by the last tick or request.
func (g *Game) Snapshot() Snapshot { return g.snap }

// Seed returns the seed of the current run's level.
func (g *Game) Seed() int64 { return g.seed }

// Underflows returns how many times the frontier had to be force-filled
// because a capped extend pass fell short.
func (g *Game) Underflows() int { return g.underflow }

// RequestAdvancePhase moves idle to ready, or ready (tap mode: idle) to playing.
func (g *Game) RequestAdvancePhase() bool {
	ok := g.phases.Advance()
	g.publish()
	return ok
}

// RequestJump applies a jump impulse. It does nothing unless playing.
func (g *Game) RequestJump() JumpKind {
	kind := g.jump()
	g.publish()
	return kind
}

// RequestRestart discards an ended run and rebuilds the level in the idle
// phase. It does nothing in any other phase.
func (g *Game) RequestRestart() bool {
	if !g.phases.Restart() {
		return false
	}
	if g.opts.Reseed != nil {
		g.seed = g.opts.Reseed()
	}
	g.level.Reset(g.opts.Source(g.seed))
	g.resetRun()
	g.publish()
	return true
}

// Apply maps a device input for the current phase and executes it now.
func (g *Game) Apply(in RawInput) Command {
	cmd := MapInput(g.Phase(), in)
	switch cmd {
	case CommandAdvance:
		g.RequestAdvancePhase()
	case CommandJump:
		g.RequestJump()
	case CommandRestart:
		g.RequestRestart()
	}
	return cmd
}

// Push queues a device input to be applied at the start of the next tick.
func (g *Game) Push(in RawInput) {
	g.queue = append(g.queue, in)
}

// Advance runs one tick scaled by the elapsed frame time, so a 60 Hz frame
// is a full step and a stall is capped at one step.
func (g *Game) Advance(dt time.Duration) {
	g.Tick(float64(dt) / float64(StepDuration))
}

// Tick advances the simulation by scale steps. scale is clamped to the
// configured maximum (one step by default); a non-positive scale only
// drains queued input.
func (g *Game) Tick(scale float64) {
	g.drain()
	if scale <= 0 || math.IsNaN(scale) || g.Phase() != PhasePlaying {
		g.publish()
		return
	}
	scale = math.Min(scale, g.cfg.Physics.MaxStepScale)
	g.tick++

	b := &g.body
	prevBottom := b.Bottom()
	Integrate(b, g.cfg.Physics, scale)

	if b.Running {
		dx := g.speed * scale
		b.X += dx
		g.cameraX += dx
	}

	window := g.window()
	b.Grounded = false
	ResolveLanding(b, g.level.Platforms(), window, g.cfg.Physics.LandingTolerance, prevBottom)

	if i := CollectCoin(b.Rect, g.level.Coins(), window); i >= 0 {
		g.addScore(g.cfg.Scoring.CoinBonus)
		g.events.emit(Event{Kind: EventCoinCollected, Tick: g.tick, Score: g.score, Coin: g.level.Coins()[i].ID})
	}

	g.creditCells()

	if b.Y > g.cfg.Physics.FallThreshold {
		b.Running = false
		g.events.emit(Event{Kind: EventFall, Tick: g.tick, Score: g.score})
		g.phases.End()
		g.publish()
		return
	}

	if !g.level.Extend(g.cameraX) {
		g.underflow++
		g.level.Fill(g.cameraX)
	}
	g.level.Prune(g.cameraX)
	g.publish()
}

func (g *Game) drain() {
	if len(g.queue) == 0 {
		return
	}
	pending := g.queue
	g.queue = nil
	for _, in := range pending {
		g.Apply(in)
	}
}

func (g *Game) jump() JumpKind {
	if g.Phase() != PhasePlaying {
		return JumpNone
	}
	kind := Jump(&g.body, g.cfg.Physics)
	switch kind {
	case JumpPrimary:
		g.events.emit(Event{Kind: EventJump, Tick: g.tick, Score: g.score})
	case JumpDouble:
		g.events.emit(Event{Kind: EventDoubleJump, Tick: g.tick, Score: g.score})
	}
	return kind
}

// creditCells awards one cell bonus when the body enters a new scoring cell
// on the ground. Cells passed while airborne are skipped without credit.
func (g *Game) creditCells() {
	reached := int(math.Floor(g.cameraX / g.cfg.Scoring.CellWidth))
	if reached <= g.cell {
		return
	}
	g.cell = reached
	if !g.body.Grounded {
		return
	}
	g.speed = math.Min(g.speed+g.cfg.SpeedStep(), g.cfg.Scoring.MaxSpeed)
	g.addScore(g.cfg.Scoring.CellBonus)
}

func (g *Game) addScore(n int) {
	if n <= 0 {
		return
	}
	g.score += n
	if g.score > g.best {
		g.best = g.score
		if g.opts.Best != nil {
			if err := g.opts.Best.SaveBest(g.best); err != nil {
				g.events.report(fmt.Errorf("sim: save best score: %w", err))
			}
		}
	}
}

// window is the x range around the camera that can hold anything the body
// touches this tick.
func (g *Game) window() Window {
	return Window{
		Min: g.cameraX - g.cfg.Camera.ViewBehind,
		Max: g.cameraX + g.cfg.Camera.ViewAhead,
	}
}

func (g *Game) resetRun() {
	p := g.cfg.Player
	g.body = Body{
		Rect:          Rect{X: p.StartX, Y: p.StartY, W: p.Width, H: p.Height},
		Grounded:      true,
		CanDoubleJump: true,
	}
	g.tick = 0
	g.cameraX = 0
	g.score = 0
	g.cell = 0
	g.speed = g.cfg.StartSpeed()
	g.queue = nil
}

func (g *Game) phaseChanged(from, to Phase) {
	switch to {
	case PhasePlaying:
		g.body.Running = true
	case PhaseReady, PhaseEnded:
		g.loadBest()
	}
	g.events.emit(Event{Kind: EventPhaseChanged, Tick: g.tick, Score: g.score, From: from, To: to})
}

func (g *Game) loadBest() {
	if g.opts.Best == nil {
		return
	}
	best, err := g.opts.Best.LoadBest()
	if err != nil {
		g.events.report(fmt.Errorf("sim: load best score: %w", err))
		return
	}
	if best > g.best {
		g.best = best
	}
}

// publish rebuilds the snapshot from the current state.
func (g *Game) publish() {
	g.snap = Snapshot{
		Tick:        g.tick,
		Phase:       g.Phase(),
		Body:        g.body,
		Platforms:   append([]Platform(nil), g.level.Platforms()...),
		Coins:       append([]Coin(nil), g.level.Coins()...),
		CameraX:     g.cameraX,
		BackgroundX: g.cameraX * g.cfg.Camera.Parallax,
		Score:       g.score,
		Speed:       g.speed,
		Best:        g.best,
	}
}
