// Package window hosts the runner in a desktop window (or a browser tab
// under GOOS=js) with ebiten.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tap-ninja/internal/core"
	"github.com/vovakirdan/tap-ninja/internal/games/runner"
	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
	"github.com/vovakirdan/tap-ninja/internal/platform/window/scene"
)

// Debug font cell size used by ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

var jumpKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyEnter}

// Options configures a window session.
type Options struct {
	TickRate int
	Seed     int64
	Logger   *log.Logger
	// OnGameOver is called once per finished run with its final score.
	OnGameOver func(gameID string, score int)
}

// Host implements ebiten.Game around a runner.
type Host struct {
	game    *runner.Game
	seed    int64
	frame   time.Duration
	logger  *log.Logger
	onOver  func(string, int)
	saved   bool
	touches []ebiten.TouchID
}

// NewHost resets g for a new session and wraps it.
func NewHost(g *runner.Game, opts Options) *Host {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  scene.Width,
		ScreenH:  scene.Height,
		TickRate: opts.TickRate,
		Seed:     opts.Seed,
	}.WithDefaults(time.Now())
	g.Reset(cfg)
	return &Host{
		game:   g,
		seed:   cfg.Seed,
		frame:  cfg.FrameDuration(),
		logger: opts.Logger,
		onOver: opts.OnGameOver,
	}
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(g *runner.Game, opts Options) error {
	h := NewHost(g, opts)
	ebiten.SetWindowSize(scene.Width, scene.Height)
	ebiten.SetWindowTitle(g.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / h.frame))

	h.logger.Info("opening window", "game", g.ID(), "seed", h.seed)
	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.game.TogglePause()
	}

	var presses sim.Presses
	for _, k := range jumpKeys {
		if inpututil.IsKeyJustPressed(k) {
			presses.Action = true
			break
		}
	}
	presses.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	presses.Mouse = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	presses.Touch = len(h.touches) > 0
	for _, in := range presses.Inputs() {
		h.game.Push(in)
	}

	h.game.Advance(h.frame)
	h.recordGameOver()
	return nil
}

// recordGameOver reports the final score once per run.
func (h *Host) recordGameOver() {
	st := h.game.State()
	if !st.GameOver {
		h.saved = false
		return
	}
	if h.saved {
		return
	}
	h.saved = true
	h.logger.Debug("run ended", "game", h.game.ID(), "score", st.Score, "best", st.Best)
	if h.onOver != nil {
		h.onOver(h.game.ID(), st.Score)
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(scene.Sky)
	s := h.game.Snapshot()
	for _, r := range scene.Build(s, h.game.Glint()) {
		vector.FillRect(screen, r.X, r.Y, r.W, r.H, r.Color, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  Best: %d", s.Score, s.Best), 8, 6)
	spd := fmt.Sprintf("Spd: %.1f", s.Speed)
	ebitenutil.DebugPrintAt(screen, spd, scene.Width-8-len(spd)*glyphW, 6)

	if o, ok := h.game.Overlay(); ok {
		drawOverlay(screen, o)
	}
}

func drawOverlay(screen *ebiten.Image, o runner.Overlay) {
	w := len(o.Title)
	for _, l := range o.Lines {
		w = max(w, len(l))
	}
	boxW := float32((w + 4) * glyphW)
	boxH := float32((len(o.Lines) + 3) * glyphH)
	x := (scene.Width - boxW) / 2
	y := (scene.Height - boxH) / 2

	vector.FillRect(screen, x, y, boxW, boxH, scene.Shade, false)
	vector.FillRect(screen, x, y, boxW, 2, scene.RGBA(o.Color), false)

	centered := func(s string, row int) {
		cx := int(x) + (int(boxW)-len(s)*glyphW)/2
		ebitenutil.DebugPrintAt(screen, s, cx, int(y)+glyphH/2+row*glyphH)
	}
	centered(o.Title, 0)
	for i, l := range o.Lines {
		centered(l, i+2)
	}
}

// Layout implements ebiten.Game. The logical size is fixed and ebiten
// scales it to the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scene.Width, scene.Height
}
