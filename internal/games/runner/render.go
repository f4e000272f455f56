package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tap-ninja/internal/core"
	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
)

// Visual characters for rendering
const (
	RoofChar     = '▀'
	WallChar     = '█'
	WindowChar   = '▪'
	SkylineChar  = '░'
	NinjaChar    = '█'
	NinjaAirChar = '▓'
	ShurikenChar = '✦'
)

// World extent mapped onto the playfield: the reference view is 1200 units
// wide and 600 tall.
const (
	viewWidth  = 1200.0
	viewHeight = 600.0
	hudRows    = 1
)

// viewport maps world coordinates to screen cells for one frame.
type viewport struct {
	cameraX float64
	cols    int
	rows    int // playfield rows below the HUD
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.cameraX) * float64(v.cols) / viewWidth))
}

func (v viewport) row(y float64) int {
	return hudRows + int(math.Floor(y*float64(v.rows)/viewHeight))
}

// cells converts a world rectangle into a screen rectangle at least one
// cell in each dimension.
func (v viewport) cells(r sim.Rect) core.Rect {
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1, y1 := v.col(r.Right()), v.row(r.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() <= hudRows {
		return
	}

	s := g.sim.Snapshot()
	vp := viewport{cameraX: s.CameraX, cols: dst.Width(), rows: dst.Height() - hudRows}

	drawSkyline(dst, s.BackgroundX, vp)
	for _, p := range s.Platforms {
		drawRooftop(dst, p, vp)
	}
	for _, c := range s.Coins {
		if !c.Collected {
			r := vp.cells(c.Rect)
			dst.SetColor(r.X+r.W/2, r.Y, g.hud.coinGlyph(), core.ColorBrightYellow)
		}
	}
	g.drawNinja(dst, s.Body, vp)
	g.drawHUD(dst, s)

	if o, ok := g.Overlay(); ok {
		drawCenteredMessage(dst, o.Color, o.Title, o.Lines...)
	}
}

// Overlay is a centered message shown over the playfield.
type Overlay struct {
	Color core.Color
	Title string
	Lines []string
}

// Overlay returns the message for the current phase, if any. Both the
// terminal and the window hosts draw it.
func (g *Game) Overlay() (Overlay, bool) {
	s := g.sim.Snapshot()
	switch {
	case g.paused:
		return Overlay{core.ColorWhite, "PAUSED", []string{"Press P to resume"}}, true
	case s.Phase == sim.PhaseIdle:
		return Overlay{core.ColorBrightCyan, "TAP NINJA", []string{g.startHint()}}, true
	case s.Phase == sim.PhaseReady:
		return Overlay{core.ColorBrightGreen, "GET READY", []string{
			"SPACE or click to jump, again in the air to double jump",
			"Press SPACE to start",
		}}, true
	case s.Phase == sim.PhaseEnded:
		return Overlay{core.ColorBrightRed, "GAME OVER", []string{
			fmt.Sprintf("Score: %d   Best: %d", g.DisplayedScore(), s.Best),
			"Press R or click to restart",
		}}, true
	}
	return Overlay{}, false
}

func (g *Game) startHint() string {
	if g.startMode == sim.StartTap {
		return "Tap, click or press SPACE to run"
	}
	return "Press SPACE to begin"
}

// drawSkyline draws distant buildings scrolled by the parallax offset.
// Heights come from a hash of the building index so they stay put as the
// view scrolls.
func drawSkyline(dst *core.Screen, offset float64, vp viewport) {
	const blockWidth = 90.0
	bottom := dst.Height()
	for x := 0; x < dst.Width(); x++ {
		wx := offset + float64(x)*viewWidth/float64(vp.cols)
		block := uint32(int64(math.Floor(wx / blockWidth)))
		h := int(hash32(block)%uint32(core.Max(vp.rows/2, 1))) + vp.rows/6
		for y := bottom - h; y < bottom; y++ {
			dst.SetColor(x, y, SkylineChar, core.ColorBlue)
		}
	}
}

// drawRooftop draws a platform's roof line and the building below it.
func drawRooftop(dst *core.Screen, p sim.Platform, vp viewport) {
	r := vp.cells(p.Rect)
	if r.Right() < 0 || r.X >= dst.Width() {
		return
	}
	dst.DrawHLine(r.X, r.Y, r.W, RoofChar, core.ColorWhite)
	dst.DrawRectColor(core.NewRect(r.X, r.Y+1, r.W, dst.Height()-r.Y-1), WallChar, core.ColorGray)

	// Lit windows, fixed per building.
	seed := hash32(uint32(p.ID))
	for y := r.Y + 2; y < dst.Height()-1; y += 2 {
		for x := r.X + 1; x < r.Right()-1; x += 2 {
			seed = hash32(seed)
			if seed%3 == 0 {
				dst.SetColor(x, y, WindowChar, core.ColorYellow)
			}
		}
	}
}

func (g *Game) drawNinja(dst *core.Screen, b sim.Body, vp viewport) {
	r := vp.cells(b.Rect)
	glyph := NinjaChar
	if !b.Grounded {
		glyph = NinjaAirChar
	}
	dst.DrawRectColor(r, glyph, core.ColorBrightMagenta)
	dst.SetColor(r.X+r.W-1, r.Y, ShurikenChar, core.ColorBrightWhite)
}

func (g *Game) drawHUD(dst *core.Screen, s sim.Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	left := fmt.Sprintf(" Score: %d  Best: %d ", s.Score, s.Best)
	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" Spd: %.1f ", s.Speed)
	dst.DrawTextColor(dst.Width()-len(right), 0, right, core.ColorCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, color core.Color, title string, lines ...string) {
	w, h := dst.Width(), dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW = core.Min(boxW+4, w)
	boxH := 4 + len(lines)
	boxX := (w - boxW) / 2
	boxY := core.Clamp((h-boxH)/2, 0, h-1)

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}

// hash32 is a small integer mixer for stable decorative randomness.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
