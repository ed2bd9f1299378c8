package events

// Event represents a structured state change emitted by the payment program.
type Event interface {
	EventType() string
}

// Emitter broadcasts events to downstream subscribers (indexers, auditors).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter satisfies the Emitter interface while discarding all events. It
// is the default for components that expose events optionally.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}

// Collector accumulates emitted events in order. It is intended for tests and
// for callers that drain events after each operation.
type Collector struct {
	events []Event
}

// Emit implements the Emitter interface.
func (c *Collector) Emit(evt Event) {
	if evt == nil {
		return
	}
	c.events = append(c.events, evt)
}

// Events returns the collected events in emission order.
func (c *Collector) Events() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset discards all collected events.
func (c *Collector) Reset() {
	c.events = nil
}
