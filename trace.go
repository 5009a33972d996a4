package cgc

// Context carries the reachability visitor for one trace pass. The collector
// constructs a Context around its marking function and hands it to each
// reachable object's Trace method.
type Context struct {
	visit func(Handle)
}

// NewContext wraps a visitor function. The collector calls this once per
// trace pass; managed value types only ever receive a *Context.
func NewContext(visit func(Handle)) *Context {
	return &Context{visit: visit}
}

// Accept reports one directly-held handle to the collector.
func (c *Context) Accept(h Handle) {
	c.visit(h)
}

// Tracer is the capability every managed value type must implement: given a
// visitor context, report every handle the value directly holds. Transitive
// closure is the collector's job, so implementations must not recurse
// through nested handles - only through nested values.
//
// # Expectations on Managed Value Types
//
// The collector may invoke Trace at any time after the object becomes
// reachable from a root, concurrently with other goroutines accessing the
// same value, and after any external data the value logically depends on
// has gone away. A type may therefore only implement Tracer if all of its
// nested handles permit shared read access at all times. Types that expose
// nested handles only behind exclusive access, such as a mutex wrapping a
// handle, cannot implement this protocol; the restriction is what makes
// reachability well defined.
//
// # Finalization
//
// Managed values must not rely on timely destruction. The heap never calls
// a value's finalizer directly; it hands the value off for finalization
// once the object is determined unreachable, and a value that was never
// registered for finalization is reclaimed without cleanup. A finalizer
// must not root, pin, trace, or otherwise access any nested handle -
// finalization order between objects is unspecified, and the reference
// strategy panics on such access.
type Tracer interface {
	// Trace reports all handles directly reachable from this value.
	Trace(ctx *Context)
}
