package cgc

// Gc is a copyable, type-tagged view over a raw handle. It carries no
// ownership: copying a Gc does not root the allocation, and a Gc held past
// the scope of every Root guard for its handle does not keep the object
// alive. The type parameter is a compile-time tag only; it never changes
// the runtime representation, which is just the handle.
type Gc[T Tracer] struct {
	handle Handle
}

// NewGc wraps a raw handle in a typed view. Intended for strategy authors
// and for code re-materializing typed views from handles discovered during
// a trace; the caller is responsible for the type tag actually matching the
// allocation.
func NewGc[T Tracer](h Handle) Gc[T] {
	return Gc[T]{handle: h}
}

// Handle returns the raw handle.
func (g Gc[T]) Handle() Handle {
	return g.handle
}

// Trace reports exactly this handle. A Gc is a leaf in the object graph:
// the collector, not the value, follows the handle to the referent.
func (g Gc[T]) Trace(ctx *Context) {
	ctx.Accept(g.handle)
}
