package cgc

import (
	"sort"
	"testing"
)

// collectHandles runs one trace pass and returns every handle reported.
func collectHandles(tr Tracer) []Handle {
	var out []Handle
	tr.Trace(NewContext(func(h Handle) {
		out = append(out, h)
	}))
	return out
}

func gcInt(h Handle) Gc[Int] {
	return NewGc[Int](h)
}

func TestLeafTypes_TraceToNothing(t *testing.T) {
	leaves := []struct {
		name string
		val  Tracer
	}{
		{"bool", Bool(true)},
		{"int", Int(-1)},
		{"int8", Int8(1)},
		{"int16", Int16(2)},
		{"int32", Int32(3)},
		{"int64", Int64(4)},
		{"uint", Uint(5)},
		{"uint8", Uint8(6)},
		{"uint16", Uint16(7)},
		{"uint32", Uint32(8)},
		{"uint64", Uint64(9)},
		{"float32", Float32(1.5)},
		{"float64", Float64(2.5)},
		{"rune", Rune('x')},
		{"string", String("text")},
		{"bytes", Bytes{1, 2, 3}},
		{"path", Path("/tmp/heap")},
		{"unit", Unit{}},
		{"notrace", NoTrace{}},
		{"func", Func[func() int]{Fn: func() int { return 0 }}},
	}

	for _, tt := range leaves {
		t.Run(tt.name, func(t *testing.T) {
			if got := collectHandles(tt.val); len(got) != 0 {
				t.Fatalf("expected no handles, got %v", got)
			}
		})
	}
}

func TestGc_TracesItself(t *testing.T) {
	g := gcInt(7)

	got := collectHandles(g)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 handle, got %v", got)
	}
	if got[0] != g.Handle() {
		t.Fatalf("expected handle %d, got %d", g.Handle(), got[0])
	}
}

func TestSlice_Trace(t *testing.T) {
	tests := []struct {
		name string
		val  Slice[Gc[Int]]
		want []Handle
	}{
		{"empty", Slice[Gc[Int]]{}, nil},
		{"one", Slice[Gc[Int]]{gcInt(1)}, []Handle{1}},
		{"many", Slice[Gc[Int]]{gcInt(1), gcInt(2), gcInt(3)}, []Handle{1, 2, 3}},
		{"duplicate elements reported per element", Slice[Gc[Int]]{gcInt(4), gcInt(4)}, []Handle{4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectHandles(tt.val)
			if !equalHandles(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOption_Trace(t *testing.T) {
	if got := collectHandles(None[Gc[Int]]()); len(got) != 0 {
		t.Fatalf("none traced %v", got)
	}
	if got := collectHandles(Some(gcInt(9))); !equalHandles(got, []Handle{9}) {
		t.Fatalf("some traced %v", got)
	}
	if got := collectHandles(Some(Int(9))); len(got) != 0 {
		t.Fatalf("leaf payload traced %v", got)
	}
}

func TestResult_Trace(t *testing.T) {
	ok := Ok[Gc[Int], Gc[Int]](gcInt(1))
	if got := collectHandles(ok); !equalHandles(got, []Handle{1}) {
		t.Fatalf("ok traced %v", got)
	}

	fail := Err[Gc[Int], Gc[Int]](gcInt(2))
	if got := collectHandles(fail); !equalHandles(got, []Handle{2}) {
		t.Fatalf("err traced %v", got)
	}
}

func TestTuples_Trace(t *testing.T) {
	pair := Pair[Gc[Int], Gc[Int]]{First: gcInt(1), Second: gcInt(2)}
	if got := collectHandles(pair); !equalHandles(got, []Handle{1, 2}) {
		t.Fatalf("pair traced %v", got)
	}

	triple := Triple[Gc[Int], Int, Gc[Int]]{First: gcInt(1), Second: 0, Third: gcInt(3)}
	if got := collectHandles(triple); !equalHandles(got, []Handle{1, 3}) {
		t.Fatalf("triple traced %v", got)
	}

	quad := Quad[Gc[Int], Gc[Int], Gc[Int], Gc[Int]]{
		First: gcInt(1), Second: gcInt(2), Third: gcInt(3), Fourth: gcInt(4),
	}
	if got := collectHandles(quad); !equalHandles(got, []Handle{1, 2, 3, 4}) {
		t.Fatalf("quad traced %v", got)
	}
}

func TestSet_Trace(t *testing.T) {
	s := Set[Gc[Int]]{}
	if got := collectHandles(s); len(got) != 0 {
		t.Fatalf("empty set traced %v", got)
	}

	s.Add(gcInt(3))
	s.Add(gcInt(1))
	s.Add(gcInt(2))
	s.Add(gcInt(2)) // duplicate insert is a no-op

	if s.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", s.Len())
	}
	if !s.Has(gcInt(1)) {
		t.Fatal("expected membership for handle 1")
	}

	got := collectHandles(s)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	if !equalHandles(got, []Handle{1, 2, 3}) {
		t.Fatalf("expected {1,2,3}, got %v", got)
	}

	s.Delete(gcInt(2))
	got = collectHandles(s)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	if !equalHandles(got, []Handle{1, 3}) {
		t.Fatalf("expected {1,3}, got %v", got)
	}
}

func TestDeque_Trace(t *testing.T) {
	var d Deque[Gc[Int]]
	if got := collectHandles(d); len(got) != 0 {
		t.Fatalf("empty deque traced %v", got)
	}

	// Mix front and back pushes so the ring buffer wraps.
	for i := 1; i <= 12; i++ {
		if i%2 == 0 {
			d.PushBack(gcInt(Handle(i)))
		} else {
			d.PushFront(gcInt(Handle(i)))
		}
	}
	if d.Len() != 12 {
		t.Fatalf("expected 12 elements, got %d", d.Len())
	}

	got := collectHandles(d)
	if len(got) != 12 {
		t.Fatalf("expected 12 handles, got %v", got)
	}

	// Trace order is front to back.
	want := make([]Handle, 0, 12)
	for i := 0; i < d.Len(); i++ {
		want = append(want, d.At(i).Handle())
	}
	if !equalHandles(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Popped elements no longer trace.
	front, ok := d.PopFront()
	if !ok {
		t.Fatal("PopFront failed")
	}
	back, ok := d.PopBack()
	if !ok {
		t.Fatal("PopBack failed")
	}
	got = collectHandles(d)
	if len(got) != 10 {
		t.Fatalf("expected 10 handles after pops, got %v", got)
	}
	for _, h := range got {
		if h == front.Handle() || h == back.Handle() {
			t.Fatalf("popped handle %d still traced", h)
		}
	}
}

func TestList_Trace(t *testing.T) {
	var l List[Gc[Int]]
	if got := collectHandles(l); len(got) != 0 {
		t.Fatalf("empty list traced %v", got)
	}

	l.PushBack(gcInt(2))
	l.PushFront(gcInt(1))
	l.PushBack(gcInt(3))

	if got := collectHandles(l); !equalHandles(got, []Handle{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}

	if v, ok := l.PopFront(); !ok || v.Handle() != 1 {
		t.Fatalf("PopFront = %v, %v", v, ok)
	}
	if got := collectHandles(l); !equalHandles(got, []Handle{2, 3}) {
		t.Fatalf("expected [2 3], got %v", got)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", l.Len())
	}
}

func TestRefShared_Trace(t *testing.T) {
	if got := collectHandles(Ref[Gc[Int]]{}); len(got) != 0 {
		t.Fatalf("nil ref traced %v", got)
	}
	if got := collectHandles(Shared[Gc[Int]]{}); len(got) != 0 {
		t.Fatalf("nil shared traced %v", got)
	}

	inner := gcInt(5)
	if got := collectHandles(Ref[Gc[Int]]{Value: &inner}); !equalHandles(got, []Handle{5}) {
		t.Fatalf("ref traced %v", got)
	}

	// Two shared holders of the same referent each report its handles.
	a := Shared[Gc[Int]]{Value: &inner}
	b := Shared[Gc[Int]]{Value: &inner}
	pair := Pair[Shared[Gc[Int]], Shared[Gc[Int]]]{First: a, Second: b}
	if got := collectHandles(pair); !equalHandles(got, []Handle{5, 5}) {
		t.Fatalf("shared pair traced %v", got)
	}
}

func TestEach_FixedArray(t *testing.T) {
	arr := [3]Gc[Int]{gcInt(1), gcInt(2), gcInt(3)}

	var got []Handle
	Each(NewContext(func(h Handle) { got = append(got, h) }), arr[:])
	if !equalHandles(got, []Handle{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func TestNestedContainers_Trace(t *testing.T) {
	val := Slice[Option[Pair[Gc[Int], Slice[Gc[Int]]]]]{
		None[Pair[Gc[Int], Slice[Gc[Int]]]](),
		Some(Pair[Gc[Int], Slice[Gc[Int]]]{
			First:  gcInt(1),
			Second: Slice[Gc[Int]]{gcInt(2), gcInt(3)},
		}),
	}

	if got := collectHandles(val); !equalHandles(got, []Handle{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func equalHandles(a, b []Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
