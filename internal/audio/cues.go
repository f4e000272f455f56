// Package audio turns simulation events into short synthesized cues.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Output plays a finished cue. speaker.Play satisfies it.
type Output func(...beep.Streamer)

// Cues is a sim.Listener that plays a sound for jumps, coins and falls.
type Cues struct {
	mu     sync.Mutex
	out    Output
	rate   beep.SampleRate
	volume float64
	muted  bool
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// OpenSpeaker initializes the shared speaker and returns cues that play
// through it. Initialization happens once per process.
func OpenSpeaker(volume float64) (*Cues, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("audio: cannot init speaker: %w", speakerErr)
	}
	return NewCues(speaker.Play, volume), nil
}

// NewCues returns cues that hand their streamers to out.
func NewCues(out Output, volume float64) *Cues {
	return &Cues{out: out, rate: SampleRate, volume: volume}
}

// SetMuted silences or restores the cues.
func (c *Cues) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

// Muted reports whether cues are silenced.
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// HandleEvent implements sim.Listener.
func (c *Cues) HandleEvent(e sim.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.muted || c.out == nil {
		return
	}
	s := c.cue(e.Kind)
	if s == nil {
		return
	}
	c.out(withVolume(s, c.volume))
}

// cue builds the streamer for an event kind, or nil if it is silent.
func (c *Cues) cue(kind sim.EventKind) beep.Streamer {
	r := c.rate
	switch kind {
	case sim.EventJump:
		return Sweep(r, 420, 260, 90*time.Millisecond, WaveSquare)
	case sim.EventDoubleJump:
		return Sweep(r, 620, 360, 80*time.Millisecond, WaveSquare)
	case sim.EventCoinCollected:
		return beep.Seq(
			Tone(r, 988, 60*time.Millisecond, WaveSine),
			Tone(r, 1319, 140*time.Millisecond, WaveSine),
		)
	case sim.EventFall:
		return beep.Seq(
			Sweep(r, 220, -160, 350*time.Millisecond, WaveTriangle),
			beep.Silence(r.N(40*time.Millisecond)),
			Tone(r, 55, 200*time.Millisecond, WaveSquare),
		)
	default:
		return nil
	}
}
