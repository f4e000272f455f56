package sim

import "fmt"

// EventKind identifies a feedback event fired during a tick.
type EventKind int

const (
	EventJump EventKind = iota
	EventDoubleJump
	EventCoinCollected
	EventFall
	EventPhaseChanged
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventDoubleJump:
		return "double_jump"
	case EventCoinCollected:
		return "coin"
	case EventFall:
		return "fall"
	case EventPhaseChanged:
		return "phase"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event describes something observable that happened in the simulation.
type Event struct {
	Kind  EventKind
	Tick  int // run tick the event fired in
	Score int // score after the event was applied
	Coin  int // coin ID, for EventCoinCollected
	From  Phase
	To    Phase // phases, for EventPhaseChanged
}

// Listener receives events synchronously, inside the tick that caused them.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// bus fans events out to listeners. A panicking listener is recovered and
// reported so feedback failures never reach the tick.
type bus struct {
	listeners []Listener
	onError   func(error)
}

func (b *bus) subscribe(l Listener) {
	if l != nil {
		b.listeners = append(b.listeners, l)
	}
}

func (b *bus) emit(e Event) {
	for _, l := range b.listeners {
		b.deliver(l, e)
	}
}

func (b *bus) deliver(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.report(fmt.Errorf("sim: listener panicked on %s event: %v", e.Kind, r))
		}
	}()
	l.HandleEvent(e)
}

func (b *bus) report(err error) {
	if b.onError != nil {
		b.onError(err)
	}
}
