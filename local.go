package cgc

import (
	"reflect"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/kvverti/cgc-strategy/gcerrors"
)

// LocalStrategy is the in-memory reference implementation of Strategy. It
// backs each object with its own Go allocation, so addresses are stable
// for the object's whole lifetime and pinning is pure bookkeeping; pin
// counts are still maintained honestly so collectors and tests can rely on
// the contract.
//
// LocalStrategy detects the precondition violations it can observe -
// out-of-order lifecycle transitions, unbalanced root or pin counts,
// operations on finalized or foreign handles, and access from within a
// finalizer - and panics with a structured gcerrors error. Safe for
// concurrent use.
type LocalStrategy struct {
	entries   []localEntry
	freeList  []Handle
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
	live      int
	capacity  int
}

type localEntry struct {
	// storage keeps the allocation reachable by the Go runtime; ptr is its
	// stable address.
	storage    reflect.Value
	ptr        unsafe.Pointer
	desc       *Descriptor
	roots      uint32
	pins       uint32
	state      State
	finalizing bool
}

// NewLocalStrategy creates an unbounded in-memory strategy.
func NewLocalStrategy() *LocalStrategy {
	return &LocalStrategy{
		entries:  make([]localEntry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// NewBoundedStrategy creates an in-memory strategy that reports exhaustion
// once capacity objects are live.
func NewBoundedStrategy(capacity int) *LocalStrategy {
	s := NewLocalStrategy()
	s.capacity = capacity
	return s
}

// entryLocked resolves a handle to a live entry. Caller holds s.mu via
// defer, so a panic here releases the lock.
func (s *LocalStrategy) entryLocked(h Handle, phase gcerrors.Phase) *localEntry {
	if s.closed {
		panic(gcerrors.Closed(phase))
	}
	if h == 0 || int(h) > len(s.entries) {
		panic(gcerrors.InvalidHandle(phase, uint32(h)))
	}
	e := &s.entries[h-1]
	if e.state == StateFinalized {
		panic(gcerrors.InvalidHandle(phase, uint32(h)))
	}
	if e.finalizing {
		panic(gcerrors.FinalizerMisuse(phase, uint32(h)))
	}
	return e
}

// Allocate reserves storage for one object of the described type. The
// returned object is Uninitialized with one root and one pin, both owned
// by the allocation protocol.
func (s *LocalStrategy) Allocate(desc *Descriptor) (Allocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		panic(gcerrors.Closed(gcerrors.PhaseAllocate))
	}
	if s.capacity > 0 && s.live >= s.capacity {
		return Allocation{}, false
	}

	storage := reflect.New(desc.Type())
	e := localEntry{
		storage: storage,
		ptr:     storage.UnsafePointer(),
		desc:    desc,
		state:   StateUninitialized,
		roots:   1,
		pins:    1,
	}

	var h Handle
	if len(s.freeList) > 0 {
		h = s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[h-1] = e
	} else {
		s.entries = append(s.entries, e)
		h = Handle(len(s.entries))
	}
	s.live++

	s.notify(Event{Type: EventAllocated, Handle: h, Desc: desc})
	return Allocation{Handle: h, Ptr: e.ptr}, true
}

// SetInitialized commits the value written at the allocation address,
// releasing the allocation pin and keeping the allocation root.
func (s *LocalStrategy) SetInitialized(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhaseInitialize)
	if e.state != StateUninitialized {
		panic(gcerrors.BadState(gcerrors.PhaseInitialize, uint32(h), e.state.String()))
	}
	e.state = StateInitialized
	e.pins--

	s.notify(Event{Type: EventInitialized, Handle: h, Desc: e.desc})
}

// SetFinalized hands the value to its Finalizer, if it implements one, and
// reclaims the object's slot. The object must be Initialized with no
// remaining roots or pins.
func (s *LocalStrategy) SetFinalized(h Handle) {
	value, desc := s.beginFinalize(h)

	// Runs outside the lock so misuse inside the finalizer is caught by
	// entryLocked instead of deadlocking.
	if f, ok := value.(Finalizer); ok {
		f.Finalize()
	}

	s.finishFinalize(h, desc)
}

func (s *LocalStrategy) beginFinalize(h Handle) (any, *Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhaseFinalize)
	if e.state != StateInitialized {
		panic(gcerrors.BadState(gcerrors.PhaseFinalize, uint32(h), e.state.String()))
	}
	if e.roots > 0 {
		panic(gcerrors.New(gcerrors.PhaseFinalize, gcerrors.KindBadState).
			Handle(uint32(h)).
			Detail("object is still rooted").
			Build())
	}
	if e.pins > 0 {
		panic(gcerrors.New(gcerrors.PhaseFinalize, gcerrors.KindBadState).
			Handle(uint32(h)).
			Detail("object is still pinned").
			Build())
	}
	e.finalizing = true

	// The storage pointer's method set includes both value and pointer
	// receivers, so the Finalizer check covers either form.
	return e.storage.Interface(), e.desc
}

func (s *LocalStrategy) finishFinalize(h Handle, desc *Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &s.entries[h-1]
	e.state = StateFinalized
	e.finalizing = false
	e.storage = reflect.Value{}
	e.ptr = nil
	s.freeList = append(s.freeList, h)
	s.live--

	s.notify(Event{Type: EventFinalized, Handle: h, Desc: desc})
}

// Pin increments the object's pin count and returns its stable address.
func (s *LocalStrategy) Pin(h Handle) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhasePin)
	e.pins++
	return e.ptr
}

// Unpin decrements the object's pin count.
func (s *LocalStrategy) Unpin(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhasePin)
	if e.pins == 0 {
		panic(gcerrors.Unbalanced(gcerrors.PhasePin, uint32(h)))
	}
	e.pins--
}

// Root increments the object's root count.
func (s *LocalStrategy) Root(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhaseRoot)
	e.roots++

	s.notify(Event{Type: EventRooted, Handle: h, Desc: e.desc})
}

// Unroot decrements the object's root count.
func (s *LocalStrategy) Unroot(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhaseRoot)
	if e.roots == 0 {
		panic(gcerrors.Unbalanced(gcerrors.PhaseRoot, uint32(h)))
	}
	e.roots--

	s.notify(Event{Type: EventUnrooted, Handle: h, Desc: e.desc})
}

// Close destroys the strategy and every object it owns. Live values are
// handed to their finalizers.
func (s *LocalStrategy) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	count := s.live

	for i := range s.entries {
		e := &s.entries[i]
		if e.state == StateInitialized {
			if f, ok := e.storage.Interface().(Finalizer); ok {
				f.Finalize()
			}
		}
		e.storage = reflect.Value{}
		e.ptr = nil
		e.state = StateFinalized
	}

	s.entries = nil
	s.freeList = nil
	s.live = 0

	Logger().Debug("local strategy closed", zap.Int("objects", count))
	return nil
}

// TraceObject drives the descriptor's type-erased trace dispatch for one
// Initialized object, reporting each directly-held handle to visit. This is
// the entry point a collection cycle uses per reachable object.
func (s *LocalStrategy) TraceObject(h Handle, visit func(Handle)) {
	desc, ptr := s.traceTarget(h)

	// Dispatch runs outside the lock: the trace contract permits concurrent
	// access to the value, and the visitor may consult the strategy.
	desc.Dispatch(ptr, NewContext(visit))
}

func (s *LocalStrategy) traceTarget(h Handle) (*Descriptor, unsafe.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(h, gcerrors.PhaseTrace)
	if e.state != StateInitialized {
		panic(gcerrors.BadState(gcerrors.PhaseTrace, uint32(h), e.state.String()))
	}
	return e.desc, e.ptr
}

// StateOf returns the lifecycle state recorded for a handle. The second
// return is false for handle 0 and for handles this strategy never issued.
func (s *LocalStrategy) StateOf(h Handle) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h == 0 || int(h) > len(s.entries) {
		return 0, false
	}
	return s.entries[h-1].state, true
}

// RootCount returns the object's root count.
func (s *LocalStrategy) RootCount(h Handle) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h == 0 || int(h) > len(s.entries) {
		return 0, false
	}
	return s.entries[h-1].roots, true
}

// PinCount returns the object's pin count.
func (s *LocalStrategy) PinCount(h Handle) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h == 0 || int(h) > len(s.entries) {
		return 0, false
	}
	return s.entries[h-1].pins, true
}

// Len returns the number of live (not yet finalized) objects.
func (s *LocalStrategy) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Each iterates over all live objects.
func (s *LocalStrategy) Each(fn func(Handle, *Descriptor) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		e := &s.entries[i]
		if e.state == StateFinalized {
			continue
		}
		if !fn(Handle(i+1), e.desc) {
			break
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (s *LocalStrategy) Subscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

// Unsubscribe removes an observer.
func (s *LocalStrategy) Unsubscribe(o Observer) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *LocalStrategy) notify(e Event) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, o := range s.observers {
		o.OnObjectEvent(e)
	}
}
