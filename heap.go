package cgc

import (
	"go.uber.org/zap"

	"github.com/kvverti/cgc-strategy/gcerrors"
)

// Options configures heap behavior.
type Options struct {
	// Logger receives debug-level allocation and teardown events.
	// Defaults to the package logger, a no-op unless SetLogger ran.
	Logger *zap.Logger
}

// DefaultOptions returns default heap configuration.
func DefaultOptions() Options {
	return Options{}
}

// Heap is the entry point composing the contract layer: it erases value
// types through their descriptors, drives the Strategy's allocation
// protocol, and hands out Root guards. A Heap owns its Strategy; every
// handle it issues belongs to that strategy alone and dies with it.
//
// Values allocated into a heap may hold references to data outside it; the
// caller must keep such data alive at least as long as the heap, since a
// trace may run at any point before Close.
type Heap struct {
	strategy Strategy
	logger   *zap.Logger
}

// New creates a heap over the given strategy.
func New(s Strategy, opts Options) *Heap {
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Heap{strategy: s, logger: log}
}

// NewWithDefaults creates a heap over the given strategy with default options.
func NewWithDefaults(s Strategy) *Heap {
	return New(s, DefaultOptions())
}

// Strategy returns the underlying collection strategy, for operations not
// covered by the facade.
func (h *Heap) Strategy() Strategy {
	return h.strategy
}

// Close destroys the heap and every object it owns. All handles issued by
// the heap are invalid afterward.
func (h *Heap) Close() error {
	h.logger.Debug("closing heap")
	return h.strategy.Close()
}

// Alloc allocates value into the heap and returns a Root guard keeping it
// alive. Alloc panics when the strategy is out of space; callers that need
// recoverable exhaustion use TryAlloc.
func Alloc[T Tracer](h *Heap, value T) *Root[T] {
	root, err := TryAlloc(h, value)
	if err != nil {
		panic(err)
	}
	return root
}

// TryAlloc allocates value into the heap and returns a Root guard keeping
// it alive. On exhaustion it returns a gcerrors error of kind
// KindExhausted and allocates nothing.
//
// The allocation protocol: the value's type is erased through its
// descriptor, the strategy reserves storage and returns it Uninitialized,
// pinned, and rooted, the value is written at the reserved address, and
// SetInitialized commits the write and releases the allocation pin. The
// root taken at allocation is the one the returned guard owns.
func TryAlloc[T Tracer](h *Heap, value T) (*Root[T], error) {
	desc := ForType[T]()

	alloc, ok := h.strategy.Allocate(desc)
	if !ok {
		return nil, gcerrors.Exhausted(desc.Type().String(), desc.Size())
	}

	*(*T)(alloc.Ptr) = value
	h.strategy.SetInitialized(alloc.Handle)

	h.logger.Debug("allocated",
		zap.Uint32("handle", uint32(alloc.Handle)),
		zap.String("type", desc.Type().String()),
	)

	return &Root[T]{gc: NewGc[T](alloc.Handle), strategy: h.strategy}, nil
}

// RootOf registers an additional root for an existing handle and returns a
// new guard for it. Use it to keep alive a handle discovered during a
// trace, or one stored outside the heap whose original guard is gone.
func RootOf[T Tracer](h *Heap, gc Gc[T]) *Root[T] {
	h.strategy.Root(gc.handle)
	return &Root[T]{gc: gc, strategy: h.strategy}
}

// Load copies the value behind gc out of the heap: it pins the object,
// reads through the stable address, and unpins. The object must be
// Initialized and its type tag must match the allocation.
func Load[T Tracer](h *Heap, gc Gc[T]) T {
	ptr := h.strategy.Pin(gc.handle)
	value := *(*T)(ptr)
	h.strategy.Unpin(gc.handle)
	return value
}

// Store overwrites the value behind gc: it pins the object, writes through
// the stable address, and unpins. The same type and state preconditions as
// Load apply, and the caller must not race Store against a trace of handles
// the old value held exclusively.
func Store[T Tracer](h *Heap, gc Gc[T], value T) {
	ptr := h.strategy.Pin(gc.handle)
	*(*T)(ptr) = value
	h.strategy.Unpin(gc.handle)
}
