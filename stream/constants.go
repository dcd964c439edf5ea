package stream

import (
	"fmt"
	"strings"
)

// Instruction codes occupy the low five bits of an opcode byte.
const (
	OpPath     byte = 0  // PATH(layer)
	OpShort    byte = 1  // SHORT(layer) OPERAND(jct)
	OpJunction byte = 2  // JUNCTION(jct)
	OpRule     byte = 3  // RULE(rule)
	OpX        byte = 4  // X(x) [OPERAND(ext)]
	OpY        byte = 5  // Y(y) [OPERAND(ext)]
	OpColinear byte = 6  // COLINEAR(ext or 0)
	OpVia      byte = 7  // VIA(via)
	OpTechVia  byte = 8  // TECH_VIA(via)
	OpITerm    byte = 9  // ITERM(iterm)
	OpBTerm    byte = 10 // BTERM(bterm)
	OpOperand  byte = 11 // second operand of the preceding instruction
	OpProperty byte = 12 // point property, ignored by the decoders
	OpVWire    byte = 13 // VWIRE(layer) OPERAND(jct)
	OpRect     byte = 14 // RECT(dx1) OPERAND(dy1) OPERAND(dx2) OPERAND(dy2)
	OpNop      byte = 15
	OpColor    byte = 16 // mask color of the following shapes
	OpViaColor byte = 17 // cut colors of the following vias

	maxOpcode = OpViaColor
)

// OpcodeMask selects the instruction code of an opcode byte.
const OpcodeMask byte = 0x1F

// Flag bits. Their meaning depends on the instruction code.
const (
	FlagExtension    byte = 0x20 // X, Y, COLINEAR: explicit extension operand
	FlagDefaultWidth byte = 0x40 // X, Y, COLINEAR: no non-default rule active
	FlagExitTop      byte = 0x80 // VIA, TECH_VIA: continue on the top layer
	FlagBlockRule    byte = 0x80 // RULE: rule id is block-scoped
	WireTypeMask     byte = 0xE0 // PATH, JUNCTION, SHORT, VWIRE
)

// RuleRefreshInterval is the point count between repeated RULE slots on a
// non-default-width path.
const RuleRefreshInterval = 16

// Code returns the instruction code of an opcode byte.
func Code(opcode byte) byte {
	return opcode & OpcodeMask
}

// WireType is the routing status carried in the flag bits of a path opener.
type WireType byte

const (
	WireNone     WireType = 0x00
	WireCover    WireType = 0x20
	WireFixed    WireType = 0x40
	WireRouted   WireType = 0x60
	WireNoShield WireType = 0x80
)

var wireTypeNames = map[WireType]string{
	WireNone:     "none",
	WireCover:    "cover",
	WireFixed:    "fixed",
	WireRouted:   "routed",
	WireNoShield: "noshield",
}

func (t WireType) String() string {
	if n, ok := wireTypeNames[t]; ok {
		return n
	}
	return "invalid"
}

// ParseWireType accepts the names printed by WireType.String.
func ParseWireType(s string) (WireType, bool) {
	for t, n := range wireTypeNames {
		if strings.EqualFold(n, s) {
			return t, true
		}
	}
	return WireNone, false
}

var opNames = [...]string{
	OpPath:     "path",
	OpShort:    "short",
	OpJunction: "jct",
	OpRule:     "rule",
	OpX:        "x",
	OpY:        "y",
	OpColinear: "colinear",
	OpVia:      "via",
	OpTechVia:  "techvia",
	OpITerm:    "iterm",
	OpBTerm:    "bterm",
	OpOperand:  "operand",
	OpProperty: "property",
	OpVWire:    "vwire",
	OpRect:     "rect",
	OpNop:      "nop",
	OpColor:    "color",
	OpViaColor: "viacolor",
}

// OpName returns the assembler mnemonic of an instruction code.
func OpName(code byte) string {
	if int(code) < len(opNames) {
		return opNames[code]
	}
	return fmt.Sprintf("op%d", code)
}

func opByName(name string) (byte, bool) {
	for code, n := range opNames {
		if n == name {
			return byte(code), true
		}
	}
	var code byte
	if _, err := fmt.Sscanf(name, "op%d", &code); err == nil && code <= OpcodeMask {
		return code, true
	}
	return 0, false
}

func isOpener(code byte) bool {
	switch code {
	case OpPath, OpShort, OpJunction, OpVWire:
		return true
	}
	return false
}
