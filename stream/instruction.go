package stream

import (
	"fmt"
	"strings"
)

// Kind identifies a decoded instruction. One instruction spans one to four
// slots depending on its kind and flags.
type Kind uint8

const (
	KindEnd Kind = iota
	KindPath
	KindJunction
	KindShort
	KindVWire
	KindRule
	KindPoint
	KindColinear
	KindVia
	KindTechVia
	KindITerm
	KindBTerm
	KindRect
	KindAux // PROPERTY, NOP, COLOR, VIA_COLOR
)

var kindNames = [...]string{
	KindEnd:      "end",
	KindPath:     "path",
	KindJunction: "junction",
	KindShort:    "short",
	KindVWire:    "vwire",
	KindRule:     "rule",
	KindPoint:    "point",
	KindColinear: "colinear",
	KindVia:      "via",
	KindTechVia:  "techvia",
	KindITerm:    "iterm",
	KindBTerm:    "bterm",
	KindRect:     "rect",
	KindAux:      "aux",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Opens reports whether k starts a new path.
func (k Kind) Opens() bool {
	switch k {
	case KindPath, KindJunction, KindShort, KindVWire:
		return true
	}
	return false
}

// Instruction is one decoded instruction. Fields that do not apply to the
// kind are zero.
type Instruction struct {
	// Rect holds the four deltas of a RECT.
	Rect [4]int

	Kind Kind
	// Opcode is the opcode byte of the leading slot, flags included.
	Opcode byte
	// YOpcode is the opcode byte of the Y slot of a first point.
	YOpcode byte

	Slot  int // leading slot
	Slots int // number of slots consumed
	// ID is the junction id naming the point this instruction leaves
	// current: the Y slot of a first point, the leading slot otherwise.
	ID int

	// Operand is the leading operand: a layer, rule, via or terminal id, a
	// coordinate for X and Y, or the raw value of an auxiliary slot.
	Operand int
	// Junction is the referenced junction id of JUNCTION, SHORT and VWIRE.
	Junction int

	// X and Y are the current point after the instruction. They are
	// resolved for points, colinears, vias, rects and junctions.
	X, Y int

	Ext    int
	HasExt bool
	// First marks the X/Y pair that starts a path.
	First bool
}

// WireType returns the wire type of a path opener.
func (in Instruction) WireType() WireType {
	return WireType(in.Opcode & WireTypeMask)
}

// ExitTop reports whether a via continues on its top layer.
func (in Instruction) ExitTop() bool {
	return in.Opcode&FlagExitTop != 0
}

// BlockRule reports whether a RULE refers to a block-scoped rule.
func (in Instruction) BlockRule() bool {
	return in.Opcode&FlagBlockRule != 0
}

// DefaultWidth reports whether a point was written with no rule active.
func (in Instruction) DefaultWidth() bool {
	return in.Opcode&FlagDefaultWidth != 0
}

func (in Instruction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d %-8s", in.Slot, in.Kind)
	switch in.Kind {
	case KindPath:
		fmt.Fprintf(&b, " layer=%d type=%s", in.Operand, in.WireType())
	case KindJunction:
		fmt.Fprintf(&b, " jct=%d type=%s (%d %d)", in.Junction, in.WireType(), in.X, in.Y)
	case KindShort, KindVWire:
		fmt.Fprintf(&b, " layer=%d jct=%d type=%s", in.Operand, in.Junction, in.WireType())
	case KindRule:
		scope := "tech"
		if in.BlockRule() {
			scope = "block"
		}
		fmt.Fprintf(&b, " %s=%d", scope, in.Operand)
	case KindPoint, KindColinear:
		fmt.Fprintf(&b, " (%d %d)", in.X, in.Y)
		if in.HasExt {
			fmt.Fprintf(&b, " ext=%d", in.Ext)
		}
		if in.First {
			b.WriteString(" first")
		}
	case KindVia, KindTechVia:
		exit := "bottom"
		if in.ExitTop() {
			exit = "top"
		}
		fmt.Fprintf(&b, " id=%d exit=%s (%d %d)", in.Operand, exit, in.X, in.Y)
	case KindITerm, KindBTerm:
		fmt.Fprintf(&b, " id=%d", in.Operand)
	case KindRect:
		fmt.Fprintf(&b, " %d %d %d %d", in.Rect[0], in.Rect[1], in.Rect[2], in.Rect[3])
	case KindAux:
		fmt.Fprintf(&b, " %s=%d", OpName(Code(in.Opcode)), in.Operand)
	}
	if in.Kind != KindEnd && in.ID != in.Slot {
		fmt.Fprintf(&b, " @%d", in.ID)
	}
	return b.String()
}
