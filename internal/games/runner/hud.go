package runner

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
)

const (
	tallySeconds = 0.8 // duration of the final score count-up
	pulseSeconds = 0.4 // half period of the coin glint
)

// hud holds presentation-only animation state driven by simulation events.
type hud struct {
	tally     *gween.Tween
	tallyVal  float32
	tallyDone bool

	pulse   *gween.Tween
	pulseUp bool
	glint   float32
}

func (h *hud) reset() {
	h.tally = nil
	h.tallyVal = 0
	h.tallyDone = false
	h.pulse = gween.New(0, 1, pulseSeconds, ease.InOutSine)
	h.pulseUp = true
	h.glint = 0
}

// HandleEvent starts the score count-up when the run ends and clears it
// when a new run begins.
func (h *hud) HandleEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventFall:
		h.tally = gween.New(0, float32(e.Score), tallySeconds, ease.OutQuad)
		h.tallyVal = 0
		h.tallyDone = e.Score == 0
	case sim.EventPhaseChanged:
		if e.To == sim.PhaseIdle {
			h.tally = nil
		}
	}
}

func (h *hud) update(dt time.Duration) {
	sec := float32(dt.Seconds())
	if h.tally != nil && !h.tallyDone {
		h.tallyVal, h.tallyDone = h.tally.Update(sec)
	}
	if h.pulse == nil {
		return
	}
	v, done := h.pulse.Update(sec)
	if h.pulseUp {
		h.glint = v
	} else {
		h.glint = 1 - v
	}
	if done {
		h.pulse.Reset()
		h.pulseUp = !h.pulseUp
	}
}

// displayed returns the counted-up score while the tally runs, else score.
func (h *hud) displayed(score int) int {
	if h.tally == nil || h.tallyDone {
		return score
	}
	return int(h.tallyVal)
}

// coinGlyph alternates coin shapes with the glint animation.
func (h *hud) coinGlyph() rune {
	if h.glint > 0.5 {
		return 'O'
	}
	return 'o'
}

// Glint is the coin shine in [0, 1], oscillating while the game runs.
func (g *Game) Glint() float32 {
	return g.hud.glint
}
