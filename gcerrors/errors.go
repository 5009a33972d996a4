package gcerrors

import (
	"fmt"
	"strings"
)

// Phase indicates which heap operation the error occurred in
type Phase string

const (
	PhaseAllocate   Phase = "allocate"   // storage reservation
	PhaseInitialize Phase = "initialize" // Uninitialized -> Initialized
	PhaseFinalize   Phase = "finalize"   // Initialized -> Finalized
	PhaseTrace      Phase = "trace"      // reachability tracing
	PhaseRoot       Phase = "root"       // root bookkeeping
	PhasePin        Phase = "pin"        // pin bookkeeping
	PhaseClose      Phase = "close"      // heap teardown
)

// Kind categorizes the error
type Kind string

const (
	KindExhausted       Kind = "exhausted"        // no heap space left
	KindClosed          Kind = "closed"           // strategy used after Close
	KindInvalidHandle   Kind = "invalid_handle"   // handle does not name a live object
	KindBadState        Kind = "bad_state"        // lifecycle transition out of order
	KindUnbalanced      Kind = "unbalanced"       // more unroots/unpins than roots/pins
	KindFinalizerMisuse Kind = "finalizer_misuse" // object touched while being finalized
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Handle uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Handle != 0 {
		b.WriteString(" handle ")
		fmt.Fprintf(&b, "%d", e.Handle)
	}

	if e.GoType != "" {
		b.WriteString(": type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Handle sets the offending handle
func (b *Builder) Handle(h uint32) *Builder {
	b.err.Handle = h
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Exhausted creates an out-of-space error for a failed allocation
func Exhausted(goType string, size uintptr) *Error {
	return &Error{
		Phase:  PhaseAllocate,
		Kind:   KindExhausted,
		GoType: goType,
		Detail: fmt.Sprintf("failed to reserve %d bytes", size),
	}
}

// Closed creates an error for an operation issued after heap teardown
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "strategy is closed",
	}
}

// InvalidHandle creates an error for a handle that names no live object
func InvalidHandle(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Handle: handle,
		Detail: "handle does not name a live object",
	}
}

// BadState creates an out-of-order lifecycle transition error
func BadState(phase Phase, handle uint32, state string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadState,
		Handle: handle,
		Detail: fmt.Sprintf("object is %s", state),
	}
}

// Unbalanced creates an error for an unroot or unpin without a matching root or pin
func Unbalanced(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnbalanced,
		Handle: handle,
		Detail: "count is already zero",
	}
}

// FinalizerMisuse creates an error for touching an object from within finalization
func FinalizerMisuse(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFinalizerMisuse,
		Handle: handle,
		Detail: "object is being finalized",
	}
}
