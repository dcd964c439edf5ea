package stream

import (
	"math"

	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/stream/internal/binary"
	"go.uber.org/zap"
)

// Binary form: the magic, a version byte, the slot count as unsigned
// LEB128, the opcode bytes, then every operand as signed LEB128.
const (
	Magic   = "WIRE"
	Version = 1
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (s Stream) MarshalBinary() ([]byte, error) {
	if len(s.Opcodes) != len(s.Operands) {
		return nil, errors.InvalidData(errors.PhaseStream, "opcode and operand arrays differ in length")
	}
	if uint64(len(s.Opcodes)) > math.MaxUint32 {
		return nil, errors.Overflow(errors.PhaseStream, len(s.Opcodes), "slot count")
	}

	w := binary.NewWriter(len(s.Opcodes))
	w.Span([]byte(Magic))
	w.Byte(Version)
	w.Count(uint32(len(s.Opcodes)))
	w.Span(s.Opcodes)
	for _, v := range s.Operands {
		w.Operand(int64(v))
	}
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Operands must fit
// in 32 bits.
func (s *Stream) UnmarshalBinary(data []byte) error {
	r := binary.NewReader(data)

	magic, err := r.Span(len(Magic))
	if err != nil {
		return errors.Wrap(errors.PhaseStream, errors.KindInvalidData, err, "truncated header")
	}
	if string(magic) != Magic {
		return errors.New(errors.PhaseStream, errors.KindInvalidData).Value(magic).Detail("bad magic %q", magic).Build()
	}
	version, err := r.Byte()
	if err != nil {
		return errors.Wrap(errors.PhaseStream, errors.KindInvalidData, err, "truncated header")
	}
	if version != Version {
		return errors.New(errors.PhaseStream, errors.KindInvalidData).Value(version).Detail("unsupported version %d", version).Build()
	}

	n, err := r.Count()
	if err != nil {
		return errors.Wrap(errors.PhaseStream, errors.KindInvalidData, err, "bad slot count")
	}
	if rem := r.Remaining(); int(n) > rem {
		return errors.New(errors.PhaseStream, errors.KindOutOfBounds).
			Detail("slot count %d exceeds %d remaining bytes", n, rem).
			Build()
	}

	opcodes, err := r.Span(int(n))
	if err != nil {
		return errors.Wrap(errors.PhaseStream, errors.KindInvalidData, err, "truncated opcodes")
	}
	operands := make([]int, n)
	for i := range operands {
		v, err := r.Operand()
		if err != nil {
			return errors.Wrap(errors.PhaseStream, errors.KindInvalidData, err, "truncated operands")
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errors.New(errors.PhaseStream, errors.KindOverflow).
				Slot(i).Value(v).
				Detail("operand %d does not fit in 32 bits", v).
				Build()
		}
		operands[i] = int(v)
	}
	if r.Remaining() > 0 {
		return errors.New(errors.PhaseStream, errors.KindInvalidData).
			Detail("%d trailing bytes", r.Remaining()).
			Build()
	}

	if n == 0 {
		opcodes, operands = nil, nil
	}
	s.Opcodes, s.Operands = opcodes, operands
	Logger().Debug("stream unmarshaled", zap.Int("slots", len(opcodes)), zap.Int("bytes", len(data)))
	return nil
}
