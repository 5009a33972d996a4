package cgc

import "sync/atomic"

// Root owns exactly one root registration against one strategy. It is
// returned by Alloc and RootOf with the registration already taken;
// Release removes it. The usual pattern is
//
//	r := cgc.Alloc(heap, value)
//	defer r.Release()
//
// so the root is removed on every exit path. A Root must not be copied.
type Root[T Tracer] struct {
	gc       Gc[T]
	strategy Strategy
	released atomic.Bool
}

// Gc returns the typed handle this root keeps alive. The Gc remains
// copyable after Release, but no longer implies reachability.
func (r *Root[T]) Gc() Gc[T] {
	return r.gc
}

// Handle returns the raw handle this root keeps alive.
func (r *Root[T]) Handle() Handle {
	return r.gc.handle
}

// Release removes the root registration. Only the first call unroots;
// further calls are no-ops, so a deferred Release stays balanced even when
// an explicit Release already ran.
func (r *Root[T]) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.strategy.Unroot(r.gc.handle)
	}
}
