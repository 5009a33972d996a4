package cgc

import (
	"reflect"
	"sync"
	"testing"
)

func TestForType_Identity(t *testing.T) {
	a := ForType[Int]()
	b := ForType[Int]()
	if a != b {
		t.Fatal("expected the same descriptor instance for the same type")
	}

	c := ForType[String]()
	if a == c {
		t.Fatal("expected distinct descriptors for distinct types")
	}

	// Distinct generic instantiations are distinct types.
	d := ForType[Slice[Gc[Int]]]()
	e := ForType[Slice[Gc[String]]]()
	if d == e {
		t.Fatal("expected distinct descriptors for distinct instantiations")
	}
}

func TestForType_Layout(t *testing.T) {
	desc := ForType[Pair[Gc[Int], String]]()
	rt := reflect.TypeOf((*Pair[Gc[Int], String])(nil)).Elem()

	if desc.Type() != rt {
		t.Fatalf("expected type %v, got %v", rt, desc.Type())
	}
	if desc.Size() != rt.Size() {
		t.Fatalf("expected size %d, got %d", rt.Size(), desc.Size())
	}
	if desc.Align() != uintptr(rt.Align()) {
		t.Fatalf("expected align %d, got %d", rt.Align(), desc.Align())
	}
}

func TestDescriptor_Dispatch(t *testing.T) {
	desc := ForType[Pair[Gc[Int], Gc[Int]]]()

	storage := reflect.New(desc.Type())
	p := storage.UnsafePointer()
	*(*Pair[Gc[Int], Gc[Int]])(p) = Pair[Gc[Int], Gc[Int]]{
		First:  gcInt(11),
		Second: gcInt(22),
	}

	var got []Handle
	desc.Dispatch(p, NewContext(func(h Handle) { got = append(got, h) }))
	if !equalHandles(got, []Handle{11, 22}) {
		t.Fatalf("expected [11 22], got %v", got)
	}
}

func TestForType_Concurrent(t *testing.T) {
	const goroutines = 16

	var wg sync.WaitGroup
	descs := make([]*Descriptor, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			descs[i] = ForType[Deque[Gc[Int]]]()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if descs[i] != descs[0] {
			t.Fatal("concurrent ForType returned different descriptors")
		}
	}
}
