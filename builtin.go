package cgc

// Leaf Tracer implementations. None of these hold handles, so they all
// trace to nothing. Composite managed types embed or alias these instead of
// the bare primitives so the whole value satisfies Tracer structurally.

// Unit is the empty value.
type Unit struct{}

func (Unit) Trace(*Context) {}

// NoTrace is an embeddable zero-size marker that contributes nothing to a
// trace. Embed it in types whose remaining fields hold no handles.
type NoTrace struct{}

func (NoTrace) Trace(*Context) {}

type (
	Bool    bool
	Int     int
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	Uint    uint
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Float32 float32
	Float64 float64
	Rune    rune
	String  string
	Bytes   []byte
)

// Path is a file system path. It carries no handles.
type Path string

func (Bool) Trace(*Context)    {}
func (Int) Trace(*Context)     {}
func (Int8) Trace(*Context)    {}
func (Int16) Trace(*Context)   {}
func (Int32) Trace(*Context)   {}
func (Int64) Trace(*Context)   {}
func (Uint) Trace(*Context)    {}
func (Uint8) Trace(*Context)   {}
func (Uint16) Trace(*Context)  {}
func (Uint32) Trace(*Context)  {}
func (Uint64) Trace(*Context)  {}
func (Float32) Trace(*Context) {}
func (Float64) Trace(*Context) {}
func (Rune) Trace(*Context)    {}
func (String) Trace(*Context)  {}
func (Bytes) Trace(*Context)   {}
func (Path) Trace(*Context)    {}

// Func wraps a function value. Function values carry no handles.
type Func[F any] struct {
	Fn F
}

func (Func[F]) Trace(*Context) {}
