package stream

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/tech"
)

// Stream is the persisted form of one wire: two position-aligned arrays with
// one opcode byte and one operand per slot. A slot index doubles as the
// junction id that later branch instructions use to refer back to a point.
//
// The zero Stream is the empty wire.
type Stream struct {
	Opcodes  []byte
	Operands []int
}

// Len returns the number of slots.
func (s Stream) Len() int {
	return len(s.Opcodes)
}

// Empty reports whether the stream holds no instructions.
func (s Stream) Empty() bool {
	return len(s.Opcodes) == 0
}

// Clone returns a deep copy of s.
func (s Stream) Clone() Stream {
	return Stream{
		Opcodes:  append([]byte(nil), s.Opcodes...),
		Operands: append([]int(nil), s.Operands...),
	}
}

// At returns the opcode and operand stored at slot i.
func (s Stream) At(i int) (byte, int) {
	s.check(i)
	return s.Opcodes[i], s.Operands[i]
}

func (s Stream) check(i int) {
	if i < 0 || i >= len(s.Opcodes) || i >= len(s.Operands) {
		panic(errors.OutOfBounds(errors.PhaseStream, i, len(s.Opcodes)))
	}
}

func (s *Stream) push(opcode byte, operand int) int {
	s.Opcodes = append(s.Opcodes, opcode)
	s.Operands = append(s.Operands, operand)
	return len(s.Opcodes) - 1
}

// Append concatenates src onto dst. Junction references inside src are
// shifted so they keep addressing the same points.
func Append(dst, src Stream) Stream {
	off := dst.Len()
	out := Stream{
		Opcodes:  make([]byte, 0, off+src.Len()),
		Operands: make([]int, 0, off+src.Len()),
	}
	out.Opcodes = append(out.Opcodes, dst.Opcodes...)
	out.Operands = append(out.Operands, dst.Operands...)

	for i := 0; i < src.Len(); i++ {
		op, v := src.At(i)
		switch Code(op) {
		case OpJunction:
			v += off
		case OpOperand:
			if i > 0 {
				if prev := Code(src.Opcodes[i-1]); prev == OpShort || prev == OpVWire {
					v += off
				}
			}
		}
		out.push(op, v)
	}
	return out
}

// TermJunction returns the junction id of the point a terminal is attached
// to, or false when the terminal does not appear in s.
func TermJunction(s Stream, kind tech.TermKind, id int) (int, bool) {
	want := OpITerm
	if kind == tech.TermBTerm {
		want = OpBTerm
	}
	for i := 0; i < s.Len(); i++ {
		if Code(s.Opcodes[i]) != want || s.Operands[i] != id {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			switch Code(s.Opcodes[j]) {
			case OpX, OpY, OpColinear, OpVia, OpTechVia:
				return j, true
			case OpPath, OpShort, OpJunction, OpVWire:
				return 0, false
			}
		}
		return 0, false
	}
	return 0, false
}
