package sim

import "fmt"

// Phase is the lifecycle stage of the simulation.
type Phase int

const (
	PhaseIdle    Phase = iota // menu shown, no run active
	PhaseReady                // instructions shown, waiting for the start input
	PhasePlaying              // simulation ticking
	PhaseEnded                // run over, summary shown
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// StartMode selects how a run leaves the idle phase.
type StartMode string

const (
	// StartGated requires a ready step between idle and playing.
	StartGated StartMode = "gated"
	// StartTap lets the first tap go from idle straight to playing.
	StartTap StartMode = "tap"
)

// ParseStartMode maps a config value to a StartMode. Empty means gated.
func ParseStartMode(s string) (StartMode, error) {
	switch StartMode(s) {
	case "", StartGated:
		return StartGated, nil
	case StartTap:
		return StartTap, nil
	}
	return "", fmt.Errorf("sim: unknown start mode %q", s)
}

// PhaseMachine holds the current phase and enforces the legal transitions:
//
//	gated: idle -> ready -> playing -> ended -> idle
//	tap:   idle -> playing -> ended -> idle
//
// Every transition method returns false and changes nothing when the
// request is not legal from the current phase.
type PhaseMachine struct {
	phase    Phase
	mode     StartMode
	onChange func(from, to Phase)
}

// NewPhaseMachine returns a machine in the idle phase. onChange, if set, is
// called after every successful transition.
func NewPhaseMachine(mode StartMode, onChange func(from, to Phase)) *PhaseMachine {
	if mode == "" {
		mode = StartGated
	}
	return &PhaseMachine{phase: PhaseIdle, mode: mode, onChange: onChange}
}

// Phase returns the current phase.
func (m *PhaseMachine) Phase() Phase { return m.phase }

// Mode returns the configured start mode.
func (m *PhaseMachine) Mode() StartMode { return m.mode }

func (m *PhaseMachine) move(from, to Phase) bool {
	if m.phase != from {
		return false
	}
	m.phase = to
	if m.onChange != nil {
		m.onChange(from, to)
	}
	return true
}

// Ready moves idle to ready. Tap mode has no ready gate.
func (m *PhaseMachine) Ready() bool {
	if m.mode == StartTap {
		return false
	}
	return m.move(PhaseIdle, PhaseReady)
}

// Start begins the run: from ready in gated mode, from idle in tap mode.
func (m *PhaseMachine) Start() bool {
	if m.mode == StartTap {
		return m.move(PhaseIdle, PhasePlaying)
	}
	return m.move(PhaseReady, PhasePlaying)
}

// End moves playing to ended.
func (m *PhaseMachine) End() bool {
	return m.move(PhasePlaying, PhaseEnded)
}

// Restart moves ended back to idle.
func (m *PhaseMachine) Restart() bool {
	return m.move(PhaseEnded, PhaseIdle)
}

// Advance performs the next forward step before play begins: Ready then
// Start in gated mode, Start directly in tap mode. It is a no-op once
// playing or ended.
func (m *PhaseMachine) Advance() bool {
	if m.phase == PhaseIdle && m.mode == StartGated {
		return m.Ready()
	}
	return m.Start()
}
