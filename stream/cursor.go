package stream

import (
	"github.com/wippyai/wire-codec/errors"
)

// Cursor walks a stream one instruction at a time, hiding the fact that
// instructions occupy a variable number of slots. It tracks the current
// point so every instruction comes back with resolved coordinates.
type Cursor struct {
	s        Stream
	pos      int
	x, y     int
	pointCnt int
}

// NewCursor returns a cursor positioned at the first slot of s.
func NewCursor(s Stream) *Cursor {
	return &Cursor{s: s}
}

// Reset repositions the cursor at the start of s.
func (c *Cursor) Reset(s Stream) {
	*c = Cursor{s: s}
}

// Pos returns the slot the next instruction starts at.
func (c *Cursor) Pos() int {
	return c.pos
}

// PointCount returns the number of points seen since the last path opener.
// COLINEAR slots count as points.
func (c *Cursor) PointCount() int {
	return c.pointCnt
}

// Point returns the current point.
func (c *Cursor) Point() (int, int) {
	return c.x, c.y
}

// Peek returns the kind of the next instruction without consuming it.
func (c *Cursor) Peek() Kind {
	if c.pos >= c.s.Len() {
		return KindEnd
	}
	return kindOf(Code(c.s.Opcodes[c.pos]))
}

// Next decodes the instruction at the cursor and advances past all of its
// slots. At the end of the stream it returns an instruction of KindEnd.
// A malformed stream makes Next panic with an *errors.Error.
func (c *Cursor) Next() Instruction {
	if c.pos >= c.s.Len() {
		return Instruction{Kind: KindEnd, Slot: c.pos, ID: c.pos, Junction: -1}
	}

	start := c.pos
	op, v := c.take()
	in := Instruction{Opcode: op, Slot: start, ID: start, Operand: v, Junction: -1}

	switch code := Code(op); code {
	case OpPath:
		in.Kind = KindPath
		c.pointCnt = 0

	case OpShort, OpVWire:
		in.Kind = KindShort
		if code == OpVWire {
			in.Kind = KindVWire
		}
		in.Junction = c.junction(start, c.operand(start))
		c.pointCnt = 0

	case OpJunction:
		in.Kind = KindJunction
		in.Junction = c.junction(start, v)
		p := PrevPoint(c.s, v, nil)
		c.x, c.y = p.X, p.Y
		c.pointCnt = 0

	case OpRule:
		in.Kind = KindRule

	case OpX:
		in.Kind = KindPoint
		c.x = v
		if c.pointCnt == 0 {
			yop, y := c.take()
			if Code(yop) != OpY {
				panic(errors.InvalidOpcode(errors.PhaseStream, start+1, yop, "first point needs a Y slot"))
			}
			c.y = y
			in.YOpcode = yop
			in.ID = start + 1
			in.First = true
			c.pointCnt = 1
			if yop&FlagExtension != 0 {
				in.Ext, in.HasExt = c.operand(start), true
			}
			break
		}
		c.pointCnt++
		if op&FlagExtension != 0 {
			in.Ext, in.HasExt = c.operand(start), true
		}

	case OpY:
		in.Kind = KindPoint
		if c.pointCnt == 0 {
			panic(errors.MissingPoint(errors.PhaseStream, start, "y"))
		}
		c.y = v
		c.pointCnt++
		if op&FlagExtension != 0 {
			in.Ext, in.HasExt = c.operand(start), true
		}

	case OpColinear:
		in.Kind = KindColinear
		c.pointCnt++
		if op&FlagExtension != 0 {
			in.Ext, in.HasExt = v, true
		}

	case OpVia:
		in.Kind = KindVia

	case OpTechVia:
		in.Kind = KindTechVia

	case OpITerm:
		in.Kind = KindITerm

	case OpBTerm:
		in.Kind = KindBTerm

	case OpRect:
		in.Kind = KindRect
		in.Rect[0] = v
		for k := 1; k < 4; k++ {
			in.Rect[k] = c.operand(start)
		}

	case OpProperty, OpNop, OpColor, OpViaColor:
		in.Kind = KindAux

	case OpOperand:
		panic(errors.InvalidOpcode(errors.PhaseStream, start, op, "operand slot without an instruction"))

	default:
		panic(errors.InvalidOpcode(errors.PhaseStream, start, op, "unknown instruction code"))
	}

	in.X, in.Y = c.x, c.y
	in.Slots = c.pos - start
	return in
}

func (c *Cursor) take() (byte, int) {
	if c.pos >= c.s.Len() {
		panic(errors.OutOfBounds(errors.PhaseStream, c.pos, c.s.Len()))
	}
	op, v := c.s.At(c.pos)
	c.pos++
	return op, v
}

// operand consumes the OPERAND slot that belongs to the instruction at start.
func (c *Cursor) operand(start int) int {
	op, v := c.take()
	if Code(op) != OpOperand {
		panic(errors.InvalidOpcode(errors.PhaseStream, c.pos-1, op,
			"expected operand slot for "+OpName(Code(c.s.Opcodes[start]))))
	}
	return v
}

func (c *Cursor) junction(slot, jct int) int {
	if jct < 0 || jct >= slot {
		panic(errors.New(errors.PhaseStream, errors.KindInvalidData).
			Slot(slot).
			Op(OpName(Code(c.s.Opcodes[slot]))).
			Detail("junction %d does not precede its reference", jct).
			Build())
	}
	if !isPointSlot(c.s.Opcodes[jct]) {
		panic(errors.New(errors.PhaseStream, errors.KindInvalidData).
			Slot(slot).
			Op(OpName(Code(c.s.Opcodes[slot]))).
			Detail("junction %d does not name a point", jct).
			Build())
	}
	return jct
}

// isPointSlot reports whether a junction may refer to a slot holding op.
// A JUNCTION slot stands for the point it refers to.
func isPointSlot(op byte) bool {
	switch Code(op) {
	case OpX, OpY, OpColinear, OpVia, OpTechVia, OpJunction:
		return true
	}
	return false
}

func kindOf(code byte) Kind {
	switch code {
	case OpPath:
		return KindPath
	case OpJunction:
		return KindJunction
	case OpShort:
		return KindShort
	case OpVWire:
		return KindVWire
	case OpRule:
		return KindRule
	case OpX, OpY:
		return KindPoint
	case OpColinear:
		return KindColinear
	case OpVia:
		return KindVia
	case OpTechVia:
		return KindTechVia
	case OpITerm:
		return KindITerm
	case OpBTerm:
		return KindBTerm
	case OpRect:
		return KindRect
	default:
		return KindAux
	}
}

// Decode returns every instruction of s in order.
func Decode(s Stream) []Instruction {
	var out []Instruction
	c := NewCursor(s)
	for {
		in := c.Next()
		if in.Kind == KindEnd {
			return out
		}
		out = append(out, in)
	}
}

// EncodeInstructions writes instructions back to slots. It is the inverse
// of Decode: only the opcode bytes, operands, extensions, junction
// references and rect deltas are read; positions and resolved points are
// ignored.
func EncodeInstructions(instrs []Instruction) Stream {
	var s Stream
	for i := range instrs {
		EncodeInstructionTo(&s, &instrs[i])
	}
	return s
}

// EncodeInstructionTo appends the slots of one instruction to s.
func EncodeInstructionTo(s *Stream, in *Instruction) {
	switch in.Kind {
	case KindEnd:
	case KindJunction:
		s.push(in.Opcode, in.Junction)
	case KindShort, KindVWire:
		s.push(in.Opcode, in.Operand)
		s.push(OpOperand, in.Junction)
	case KindPoint:
		s.push(in.Opcode, in.Operand)
		if in.First {
			s.push(in.YOpcode, in.Y)
		}
		if in.HasExt {
			s.push(OpOperand, in.Ext)
		}
	case KindRect:
		s.push(in.Opcode, in.Rect[0])
		for _, d := range in.Rect[1:] {
			s.push(OpOperand, d)
		}
	default:
		s.push(in.Opcode, in.Operand)
	}
}
