// Package gcerrors provides structured error types for the cgc-strategy library.
//
// Errors are categorized by Phase (which heap operation failed) and Kind
// (error category). Only allocation exhaustion is a recoverable error value;
// every other kind describes a violated precondition and is delivered by
// panicking, since the contract layer treats those as caller bugs rather
// than runtime conditions.
//
// Use the Builder for structured error construction:
//
//	err := gcerrors.New(gcerrors.PhaseFinalize, gcerrors.KindBadState).
//		Handle(uint32(h)).
//		Detail("object is uninitialized").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := gcerrors.Exhausted("main.Node", 48)
//	err := gcerrors.Unbalanced(gcerrors.PhaseRoot, uint32(h))
//
// All errors implement the standard error interface and support errors.Is/As.
package gcerrors
