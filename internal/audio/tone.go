package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone streams a fixed-length wave with a linear fade-out over its last
// quarter so cues never click at the cut.
type tone struct {
	freq  float64
	sweep float64 // Hz added per second
	wave  Wave
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
}

// Tone returns a streamer for a single note of the given length.
func Tone(rate beep.SampleRate, freq float64, d time.Duration, wave Wave) beep.Streamer {
	return &tone{freq: freq, wave: wave, rate: rate, total: rate.N(d)}
}

// Sweep is Tone with a pitch glide from freq to freq+delta.
func Sweep(rate beep.SampleRate, freq, delta float64, d time.Duration, wave Wave) beep.Streamer {
	t := &tone{freq: freq, wave: wave, rate: rate, total: rate.N(d)}
	if d > 0 {
		t.sweep = delta / d.Seconds()
	}
	return t
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	fadeFrom := t.total * 3 / 4
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		if t.pos > fadeFrom {
			v *= float64(t.total-t.pos) / float64(t.total-fadeFrom)
		}
		samples[i][0] = v
		samples[i][1] = v

		elapsed := float64(t.pos) / float64(t.rate)
		t.phase += (t.freq + t.sweep*elapsed) / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s by a linear gain in (0, 1]. Zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
