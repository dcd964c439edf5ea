package stream

import (
	"github.com/wippyai/wire-codec/errors"
	"go.uber.org/zap"
)

// Validate checks the structure of s without a catalog: slot pairing,
// junction references, wire types, and that every instruction needing a
// current point has one. It returns the first problem found as an
// *errors.Error in the validate phase.
func Validate(s Stream) (err error) {
	if len(s.Opcodes) != len(s.Operands) {
		return errors.New(errors.PhaseValidate, errors.KindInvalidData).
			Detail("opcode and operand arrays differ in length (%d != %d)", len(s.Opcodes), len(s.Operands)).
			Build()
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(*errors.Error)
		if !ok {
			panic(r)
		}
		v := *e
		v.Phase = errors.PhaseValidate
		err = &v
	}()

	c := NewCursor(s)
	inPath := false
	for {
		in := c.Next()
		switch in.Kind {
		case KindEnd:
			Logger().Debug("stream valid", zap.Int("slots", s.Len()))
			return nil

		case KindPath, KindJunction, KindShort, KindVWire:
			if _, ok := wireTypeNames[in.WireType()]; !ok {
				return errors.InvalidOpcode(errors.PhaseValidate, in.Slot, in.Opcode, "invalid wire type")
			}
			inPath = true

		case KindRule, KindPoint, KindColinear:
			if !inPath {
				return errors.InvalidOpcode(errors.PhaseValidate, in.Slot, in.Opcode, "instruction outside a path")
			}

		case KindVia, KindTechVia, KindITerm, KindBTerm, KindRect:
			if !inPath || c.PointCount() == 0 {
				return errors.MissingPoint(errors.PhaseValidate, in.Slot, in.Kind.String())
			}
		}
	}
}
