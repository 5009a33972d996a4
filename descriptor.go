package cgc

import (
	"reflect"
	"sync"
	"unsafe"
)

// Descriptor is the immutable per-type metadata a collection strategy needs
// to manage allocations of one concrete type: its size and alignment, and a
// type-erased trace dispatch function. There is exactly one Descriptor per
// managed type for the life of the process, so descriptors compare by
// identity.
type Descriptor struct {
	typ   reflect.Type
	size  uintptr
	align uintptr
	trace func(unsafe.Pointer, *Context)
}

// descriptors is the process-wide registry, keyed by concrete type.
// Read-mostly; entries are never removed or mutated.
var descriptors sync.Map // reflect.Type -> *Descriptor

// ForType returns the single process-wide descriptor for T, registering it
// on first use.
func ForType[T Tracer]() *Descriptor {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := descriptors.Load(rt); ok {
		return cached.(*Descriptor)
	}

	d := &Descriptor{
		typ:   rt,
		size:  rt.Size(),
		align: uintptr(rt.Align()),
		trace: func(p unsafe.Pointer, ctx *Context) {
			(*(*T)(p)).Trace(ctx)
		},
	}

	actual, _ := descriptors.LoadOrStore(rt, d)
	return actual.(*Descriptor)
}

// Type returns the concrete Go type this descriptor was generated for.
// Strategies use it to reserve correctly typed storage.
func (d *Descriptor) Type() reflect.Type {
	return d.typ
}

// Size returns the size of the described type in bytes.
func (d *Descriptor) Size() uintptr {
	return d.size
}

// Align returns the required alignment of the described type in bytes.
func (d *Descriptor) Align() uintptr {
	return d.align
}

// Dispatch invokes the described type's Trace implementation on the value
// at p. The caller must guarantee p references a live, shared-accessible
// value of exactly the descriptor's type; that obligation sits with the
// allocator driving the trace, not with Dispatch itself.
func (d *Descriptor) Dispatch(p unsafe.Pointer, ctx *Context) {
	d.trace(p, ctx)
}
