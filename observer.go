package cgc

// EventType identifies an object lifecycle event.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventInitialized
	EventFinalized
	EventRooted
	EventUnrooted
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventInitialized:
		return "initialized"
	case EventFinalized:
		return "finalized"
	case EventRooted:
		return "rooted"
	case EventUnrooted:
		return "unrooted"
	default:
		return "unknown"
	}
}

// Event describes one object lifecycle event.
type Event struct {
	Desc   *Descriptor
	Handle Handle
	Type   EventType
}

// Observer receives notifications about object lifecycle events. The
// reference LocalStrategy supports observers; other strategies may.
// Observers run synchronously on the goroutine performing the operation
// and must not call back into the strategy.
type Observer interface {
	OnObjectEvent(Event)
}
