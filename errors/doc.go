// Package errors provides structured error types for the wire codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the stream slot, the opcode involved and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMissingPoint).
//		Slot(12).
//		Op("ITERM").
//		Detail("terminal before first point").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseStream, 10, 5)
//	err := errors.Precondition(errors.PhaseGraph, "CreateSegment", "layers differ")
//
// Decoders and graph mutators panic with an *Error when they meet a corrupted
// stream or a misused graph. Recover turns such a panic back into an error at
// an API boundary.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
