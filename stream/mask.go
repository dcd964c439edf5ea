package stream

import "fmt"

// MaxMask is the highest mask number a layer supports.
const MaxMask = 3

// ViaColor is the mask of each layer a via touches. Zero means no mask.
type ViaColor struct {
	Bottom int
	Cut    int
	Top    int
}

// IsZero reports whether c assigns no mask at all.
func (c ViaColor) IsZero() bool {
	return c == ViaColor{}
}

// pack lays c out as the VIA_COLOR operand: two bits per layer, bottom in
// bits 4-5, cut in 2-3, top in 0-1.
func (c ViaColor) pack() int {
	return c.Bottom<<4 | c.Cut<<2 | c.Top
}

// UnpackViaColor decodes a VIA_COLOR operand.
func UnpackViaColor(v int) ViaColor {
	return ViaColor{Bottom: v >> 4 & 3, Cut: v >> 2 & 3, Top: v & 3}
}

func (c ViaColor) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Bottom, c.Cut, c.Top)
}

// Property returns the property stored with the point at junction id jid.
// Colinear points and rects always report 0. The second result is false
// when the point was written without a PROPERTY slot.
func Property(s Stream, jid int) (int, bool) {
	s.check(jid)
	switch Code(s.Opcodes[jid]) {
	case OpColinear, OpRect:
		return 0, true
	}
	if i, ok := propertySlot(s, jid); ok {
		return s.Operands[i], true
	}
	return 0, false
}

// SetProperty overwrites, in place, the property of the point at junction
// id jid. It reports false when the point has no PROPERTY slot to hold
// it. Colinear points accept and ignore any value.
func SetProperty(s Stream, jid, v int) bool {
	s.check(jid)
	if Code(s.Opcodes[jid]) == OpColinear {
		return true
	}
	i, ok := propertySlot(s, jid)
	if ok {
		s.Operands[i] = v
	}
	return ok
}

// propertySlot finds the PROPERTY slot of an X or Y point: right after the
// point or after its extension operand.
func propertySlot(s Stream, jid int) (int, bool) {
	if c := Code(s.Opcodes[jid]); c != OpX && c != OpY {
		return 0, false
	}
	i := jid + 1
	if i < s.Len() && Code(s.Opcodes[i]) == OpOperand {
		i++
	}
	if i < s.Len() && Code(s.Opcodes[i]) == OpProperty {
		return i, true
	}
	return 0, false
}
