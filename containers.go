package cgc

// Structural Tracer implementations. Each forwards the trace to every
// element it directly holds, exactly once per trace call. Element order is
// not significant to the collector.

// Option is an optional value.
type Option[T Tracer] struct {
	Value T
	Set   bool
}

// Some wraps a present value.
func Some[T Tracer](v T) Option[T] {
	return Option[T]{Value: v, Set: true}
}

// None returns the absent value.
func None[T Tracer]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) Trace(ctx *Context) {
	if o.Set {
		o.Value.Trace(ctx)
	}
}

// Result holds either a success value or an error value, never both.
type Result[T, E Tracer] struct {
	Value T
	Err   E
	OK    bool
}

// Ok wraps a success value.
func Ok[T, E Tracer](v T) Result[T, E] {
	return Result[T, E]{Value: v, OK: true}
}

// Err wraps an error value.
func Err[T, E Tracer](e E) Result[T, E] {
	return Result[T, E]{Err: e}
}

func (r Result[T, E]) Trace(ctx *Context) {
	if r.OK {
		r.Value.Trace(ctx)
	} else {
		r.Err.Trace(ctx)
	}
}

// Slice is an ordered homogeneous sequence.
type Slice[T Tracer] []T

func (s Slice[T]) Trace(ctx *Context) {
	for i := range s {
		s[i].Trace(ctx)
	}
}

// Each traces every element of a plain slice. Fixed-size arrays trace
// through this helper: Each(ctx, arr[:]).
func Each[T Tracer](ctx *Context, elems []T) {
	for i := range elems {
		elems[i].Trace(ctx)
	}
}

// Set is an unordered collection of unique elements.
type Set[T interface {
	comparable
	Tracer
}] map[T]struct{}

// Add inserts an element.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Has reports whether an element is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes an element if present.
func (s Set[T]) Delete(v T) {
	delete(s, v)
}

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s)
}

func (s Set[T]) Trace(ctx *Context) {
	for v := range s {
		v.Trace(ctx)
	}
}

// Deque is a double-ended queue backed by a ring buffer.
type Deque[T Tracer] struct {
	buf  []T
	head int
	n    int
}

// PushBack appends v at the back.
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[(d.head+d.n)%len(d.buf)] = v
	d.n++
}

// PushFront inserts v at the front.
func (d *Deque[T]) PushFront(v T) {
	d.grow()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = v
	d.n++
}

// PopFront removes and returns the front element.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	return v, true
}

// PopBack removes and returns the back element.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	i := (d.head + d.n - 1) % len(d.buf)
	v := d.buf[i]
	d.buf[i] = zero
	d.n--
	return v, true
}

// At returns the i-th element from the front.
func (d *Deque[T]) At(i int) T {
	return d.buf[(d.head+i)%len(d.buf)]
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int {
	return d.n
}

func (d *Deque[T]) grow() {
	if d.n < len(d.buf) {
		return
	}
	capacity := len(d.buf) * 2
	if capacity == 0 {
		capacity = 8
	}
	buf := make([]T, capacity)
	for i := 0; i < d.n; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}

func (d Deque[T]) Trace(ctx *Context) {
	for i := 0; i < d.n; i++ {
		d.buf[(d.head+i)%len(d.buf)].Trace(ctx)
	}
}

// List is a singly linked list.
type List[T Tracer] struct {
	front *listNode[T]
	back  *listNode[T]
	n     int
}

type listNode[T Tracer] struct {
	value T
	next  *listNode[T]
}

// PushBack appends v at the back.
func (l *List[T]) PushBack(v T) {
	node := &listNode[T]{value: v}
	if l.back == nil {
		l.front = node
	} else {
		l.back.next = node
	}
	l.back = node
	l.n++
}

// PushFront inserts v at the front.
func (l *List[T]) PushFront(v T) {
	node := &listNode[T]{value: v, next: l.front}
	if l.back == nil {
		l.back = node
	}
	l.front = node
	l.n++
}

// PopFront removes and returns the front element.
func (l *List[T]) PopFront() (T, bool) {
	var zero T
	if l.front == nil {
		return zero, false
	}
	node := l.front
	l.front = node.next
	if l.front == nil {
		l.back = nil
	}
	l.n--
	return node.value, true
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.n
}

func (l List[T]) Trace(ctx *Context) {
	for node := l.front; node != nil; node = node.next {
		node.value.Trace(ctx)
	}
}

// Pair is a 2-tuple.
type Pair[A, B Tracer] struct {
	First  A
	Second B
}

func (p Pair[A, B]) Trace(ctx *Context) {
	p.First.Trace(ctx)
	p.Second.Trace(ctx)
}

// Triple is a 3-tuple.
type Triple[A, B, C Tracer] struct {
	First  A
	Second B
	Third  C
}

func (p Triple[A, B, C]) Trace(ctx *Context) {
	p.First.Trace(ctx)
	p.Second.Trace(ctx)
	p.Third.Trace(ctx)
}

// Quad is a 4-tuple.
type Quad[A, B, C, D Tracer] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func (p Quad[A, B, C, D]) Trace(ctx *Context) {
	p.First.Trace(ctx)
	p.Second.Trace(ctx)
	p.Third.Trace(ctx)
	p.Fourth.Trace(ctx)
}

// Ref is a uniquely owned boxed value. Tracing forwards to the referent;
// a nil Ref traces to nothing.
type Ref[T Tracer] struct {
	Value *T
}

func (r Ref[T]) Trace(ctx *Context) {
	if r.Value != nil {
		(*r.Value).Trace(ctx)
	}
}

// Shared is a shared-ownership reference. Tracing forwards to the referent
// and never touches any reference bookkeeping; sharing the same referent
// from several managed values is allowed, and each holder reports the
// referent's handles on its own trace.
type Shared[T Tracer] struct {
	Value *T
}

func (s Shared[T]) Trace(ctx *Context) {
	if s.Value != nil {
		(*s.Value).Trace(ctx)
	}
}
