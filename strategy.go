package cgc

import "unsafe"

// Allocation is a freshly reserved managed object: its handle plus the
// address the value is to be written at. The object is Uninitialized,
// pinned, and rooted until SetInitialized commits the write.
type Allocation struct {
	Handle Handle
	Ptr    unsafe.Pointer
}

// Strategy is the contract every collection strategy must satisfy. It
// defines how storage is reserved, how objects move through their
// lifecycle, and how root and pin bookkeeping behaves. The Heap facade in
// this package drives a Strategy; collectors implementing mark-sweep,
// compaction, or generational schemes plug in behind this interface.
//
// # Object Lifecycle
//
// See State for the Uninitialized -> Initialized -> Finalized state
// machine. Orthogonally to its state, an object may be:
//
//   - Rooted: kept alive unconditionally, independent of graph
//     connectivity, while its root count is above zero.
//   - Pinned: guaranteed a stable address while its pin count is above
//     zero. A compacting strategy must not move a pinned object.
//
// Pin counts and root counts are fully independent: an object may be
// pinned without being rooted and rooted without being pinned.
//
// # Heap Ownership
//
// A strategy uniquely owns every object it allocates. Handles are
// non-owning indices into the strategy's object table, which is the sole
// owner of cyclic structures; destroying the strategy destroys all of its
// objects, and no operation, tracing included, may be issued against its
// handles afterward. Objects are never shared between strategies.
//
// The strategy must not access the values it holds except through their
// descriptors' trace dispatch. Cleanup runs through finalization, never
// through direct access.
//
// # Preconditions
//
// The methods below state preconditions on their callers. Violating one is
// outside the defined behavior of the system: it is not reported as an
// error value, and the embedding application must prevent it by
// construction. The reference strategy in this package panics on the
// violations it can detect.
//
// Implementations must support concurrent invocation of every method if
// the embedding application allocates or roots from multiple goroutines.
type Strategy interface {
	// Allocate reserves storage sized and aligned per desc. On success the
	// returned object is Uninitialized, pinned, and rooted, ready for a
	// value to be written at the returned address. Returns false when the
	// heap has no space for the object; the caller decides whether that is
	// fatal.
	Allocate(desc *Descriptor) (Allocation, bool)

	// SetInitialized transitions an object from Uninitialized to
	// Initialized, releasing the allocation-time pin and preserving the
	// allocation-time root. Precondition: h was just returned from this
	// strategy's Allocate and has not been transitioned before.
	SetInitialized(h Handle)

	// SetFinalized transitions an object from Initialized to Finalized,
	// after which its storage may be reclaimed. Precondition: the object
	// has been determined finalizable - unreachable, and either already
	// processed by a finalization queue or never registered with one.
	SetFinalized(h Handle)

	// Pin increments the object's pin count and returns an address that
	// stays valid until the matching Unpin.
	Pin(h Handle) unsafe.Pointer

	// Unpin decrements the object's pin count. Calls must balance Pin.
	Unpin(h Handle)

	// Root increments the object's root count. An object with a positive
	// root count is treated as reachable by every collection cycle.
	Root(h Handle)

	// Unroot decrements the object's root count. Calls must balance Root.
	Unroot(h Handle)

	// Close destroys the strategy and every object it owns. All handles
	// issued by the strategy are invalid afterward.
	Close() error
}

// Finalizer is optionally implemented by managed values that need cleanup
// before their storage is reclaimed. A value that does not implement it is
// reclaimed without notice.
//
// Finalize must not root, pin, trace, or otherwise reach through any
// handle nested in the value; finalization order between objects is
// unspecified.
type Finalizer interface {
	Finalize()
}
