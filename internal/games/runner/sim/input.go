package sim

import "strings"

// Device is the kind of hardware an input came from.
type Device int

const (
	DeviceKeyboard Device = iota
	DeviceTouch
	DeviceMouse
)

// RawInput is a single device event. Key is only meaningful for keyboards
// and uses lowercase names such as "space", "up", "w", "enter" or "r".
type RawInput struct {
	Device Device
	Key    string
}

// KeyPress builds a keyboard input.
func KeyPress(key string) RawInput { return RawInput{Device: DeviceKeyboard, Key: key} }

// Tap builds a touch input.
func Tap() RawInput { return RawInput{Device: DeviceTouch} }

// Click builds a mouse input.
func Click() RawInput { return RawInput{Device: DeviceMouse} }

// Presses records which bindings a host saw pressed during one frame.
type Presses struct {
	Action  bool // any action key
	Touch   bool
	Mouse   bool
	Restart bool
}

// Inputs returns the raw inputs to queue for the frame. Touch, mouse and
// action keys collapse into a single input, pointer first, since browsers
// emulate a click for every touch. Restart is queued after it.
func (p Presses) Inputs() []RawInput {
	var out []RawInput
	switch {
	case p.Touch:
		out = append(out, Tap())
	case p.Mouse:
		out = append(out, Click())
	case p.Action:
		out = append(out, KeyPress("space"))
	}
	if p.Restart {
		out = append(out, KeyPress("r"))
	}
	return out
}

// Command is the semantic meaning of an input in the current phase.
type Command int

const (
	CommandNone Command = iota
	CommandAdvance
	CommandJump
	CommandRestart
)

// MapInput translates a raw input into a command for the given phase.
//
// The action keys (space, up, w, enter) advance the phase before play and
// jump while playing. R restarts an ended run. A tap or click acts like an
// action key, except that on the end screen it restarts.
func MapInput(phase Phase, in RawInput) Command {
	switch in.Device {
	case DeviceTouch, DeviceMouse:
		if phase == PhaseEnded {
			return CommandRestart
		}
		return actionCommand(phase)
	}

	switch strings.ToLower(in.Key) {
	case "space", " ", "up", "w", "enter":
		return actionCommand(phase)
	case "r":
		if phase == PhaseEnded {
			return CommandRestart
		}
	}
	return CommandNone
}

func actionCommand(phase Phase) Command {
	switch phase {
	case PhaseIdle, PhaseReady:
		return CommandAdvance
	case PhasePlaying:
		return CommandJump
	default:
		return CommandNone
	}
}
