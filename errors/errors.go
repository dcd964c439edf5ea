package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseStream   Phase = "stream"   // slot-level access and binary form
	PhaseDecode   Phase = "decode"   // stream to shapes, paths or graph
	PhaseEncode   Phase = "encode"   // graph to stream
	PhaseGraph    Phase = "graph"    // graph mutation
	PhaseValidate Phase = "validate" // stream validation
	PhaseLoad     Phase = "load"     // catalog loading
	PhaseParse    Phase = "parse"    // text assembler
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidOpcode    Kind = "invalid_opcode"
	KindMissingPoint     Kind = "missing_point"
	KindTerminalConflict Kind = "terminal_conflict"
	KindPrecondition     Kind = "precondition"
	KindNotFound         Kind = "not_found"
	KindInvalidData      Kind = "invalid_data"
	KindOverflow         Kind = "overflow"
	KindInvalidInput     Kind = "invalid_input"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Slot   int
	HasPos bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.HasPos {
		b.WriteString(" at slot ")
		b.WriteString(fmt.Sprint(e.Slot))
	}

	if e.Op != "" {
		b.WriteString(" (")
		b.WriteString(e.Op)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
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

// Slot records the stream slot the error refers to
func (b *Builder) Slot(slot int) *Builder {
	b.err.Slot = slot
	b.err.HasPos = true
	return b
}

// Op sets the opcode or operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("slot %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidOpcode creates an error for an opcode that cannot appear at slot
func InvalidOpcode(phase Phase, slot int, opcode byte, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidOpcode,
		Slot:   slot,
		HasPos: true,
		Op:     fmt.Sprintf("0x%02x", opcode),
		Detail: detail,
		Value:  opcode,
	}
}

// MissingPoint creates an error for an instruction that needs a current point
func MissingPoint(phase Phase, slot int, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingPoint,
		Slot:   slot,
		HasPos: true,
		Op:     op,
		Detail: "no current point",
	}
}

// TerminalConflict creates an error for re-attaching a different terminal
func TerminalConflict(phase Phase, have, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTerminalConflict,
		Detail: fmt.Sprintf("node already holds %s, cannot attach %s", have, want),
	}
}

// Precondition creates a caller-misuse error
func Precondition(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPrecondition,
		Op:     op,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string, id int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %d not found", what, id),
		Value:  id,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a catalog loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a text parsing error for the given line
func ParseFailed(line int, detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("line %d: %s", line, detail),
		Cause:  cause,
		Value:  line,
	}
}
