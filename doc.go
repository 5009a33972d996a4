// Package cgc is the contract layer for a pluggable tracing garbage
// collector: a minimal vocabulary of types and capability interfaces that
// let an application define object graphs whose reachability is computed by
// a collector, without the collector needing compile-time knowledge of the
// objects involved.
//
// # Architecture Overview
//
// The layer is a handful of small contracts that compose:
//
//	Handle        Opaque, copyable identifier for one managed allocation
//	Descriptor    Immutable per-type metadata with a type-erased trace
//	              dispatch, one instance per type via ForType
//	Tracer        The reachability protocol: report every directly-held
//	              handle to a visitor Context
//	Strategy      The collector backend contract: allocate, lifecycle
//	              transitions, pin/unpin, root/unroot
//	Gc[T]         Copyable type-tagged view over a handle, itself a Tracer
//	              leaf reporting exactly its own handle
//	Root[T]       Scoped guard owning one root registration, removed
//	              exactly once by Release
//	Heap          Facade composing the above: Alloc/TryAlloc, RootOf,
//	              Load/Store, Strategy
//
// LocalStrategy is the bundled in-memory reference Strategy; mark-sweep,
// compacting, or generational collectors plug in behind the same interface.
//
// # Quick Start
//
// Allocate a value and keep it alive with a scoped root:
//
//	heap := cgc.NewWithDefaults(cgc.NewLocalStrategy())
//	defer heap.Close()
//
//	r := cgc.Alloc(heap, cgc.Int(42))
//	defer r.Release()
//
//	n := cgc.Load(heap, r.Gc()) // cgc.Int(42)
//
// Managed types report their nested handles through the Tracer protocol.
// The built-in leaf and container types compose, so most managed types are
// a struct of other Tracers plus a Trace method that forwards to each
// field:
//
//	type Node struct {
//	    Label cgc.String
//	    Next  cgc.Option[cgc.Gc[Node]]
//	}
//
//	func (n Node) Trace(ctx *cgc.Context) {
//	    n.Label.Trace(ctx)
//	    n.Next.Trace(ctx)
//	}
//
// # Safety Contracts
//
// Allocation exhaustion is the only reported failure; every other misuse -
// lifecycle transitions out of order, handles used against the wrong heap
// or after Close, tracing finalized objects, touching nested handles from
// a finalizer - is a violated precondition, prevented by the ownership
// discipline of Root guards and debug-checked by LocalStrategy, which
// panics with a structured gcerrors error.
//
// The central concurrency hazard is deliberate: a collector may invoke
// Trace on a value concurrently with any other access to it. Managed types
// must keep nested handles shared-readable at all times, whatever their
// own concurrency discipline; see Tracer.
package cgc
