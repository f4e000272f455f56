package core

import "time"

// DefaultTickRate is the host frame rate when none is configured. The
// simulation's fixed step is also 1/60 s, so one frame is one step.
const DefaultTickRate = 60

// RuntimeConfig is what a host tells a game: the size of its drawing
// surface, its frame rate and the session seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells (or pixels for the window host)
	ScreenH  int   // Screen height
	TickRate int   // Host frames per second
	Seed     int64 // Session seed; 0 asks the host for a time-based one
}

// DefaultConfig returns an 80x24 terminal at the default rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// WithDefaults fills a missing tick rate, and replaces a zero seed with
// one derived from now.
func (c RuntimeConfig) WithDefaults(now time.Time) RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Seed == 0 {
		c.Seed = now.UnixNano()
	}
	return c
}

// FrameDuration is the wall time of one host frame.
func (c RuntimeConfig) FrameDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is the run summary a game reports to its host after each
// step.
type GameState struct {
	Score    int
	Best     int
	GameOver bool // the run has ended and waits for a restart
	Paused   bool
}

// StepResult is returned by Game.Step() after each host frame.
type StepResult struct {
	State GameState
}
