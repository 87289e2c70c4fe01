package host

// Event is delivered to listeners by the host.
type Event struct {
	// Type is the event name without the "on" prefix ("click").
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// Value carries the control value for input and change events.
	Value string
}

// Listener is an event callback with identity. Two listeners are the same
// only if they are the same pointer, which is how the committer decides
// whether a handler changed between renders.
type Listener struct {
	fn func(Event)
}

// NewListener wraps fn in a new Listener.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the listener. A nil listener ignores the event.
func (l *Listener) Handle(ev Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(ev)
}
