package cgc

// Handle is an opaque reference to one collector-managed allocation.
// Handle 0 is reserved and always invalid.
//
// A handle is meaningful only against the heap that issued it. Copying a
// handle is free and implies neither ownership nor rooting; keeping the
// referenced object alive is the job of Root guards and of reachability
// from other live objects.
type Handle uint32

// State is the lifecycle state of a managed object.
//
// Objects move through exactly one forward pass:
//
//	Uninitialized -> Initialized -> Finalized
//
// A freshly allocated object is Uninitialized, pinned, and rooted. Once the
// value has been written, the object becomes Initialized and stays so until
// the collector determines it unreachable and finalizes it. No tracing or
// access is permitted on a Finalized object.
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	StateFinalized
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
