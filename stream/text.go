package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/wire-codec/errors"
)

// The text form lists one slot per line:
//
//	   0  path.routed 3
//	   1  x.dw 0
//	   2  y.dw 0
//	   3  x.ext.dw 500
//	   4  operand 200
//	   5  via.top 7
//
// The leading slot number is optional on input and checked when present.
// Flag bits are written as named suffixes where the instruction gives them
// a meaning and as hex suffixes (".0x80") otherwise. '#' starts a comment.

// Format writes s in text form.
func Format(w io.Writer, s Stream) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < s.Len(); i++ {
		op, v := s.At(i)
		if _, err := fmt.Fprintf(bw, "%4d  %s %d\n", i, Mnemonic(op), v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatString returns the text form of s.
func FormatString(s Stream) string {
	var b strings.Builder
	_ = Format(&b, s)
	return b.String()
}

// Mnemonic renders an opcode byte with its flag suffixes.
func Mnemonic(op byte) string {
	code := Code(op)
	flags := op &^ OpcodeMask
	var b strings.Builder
	b.WriteString(OpName(code))

	switch {
	case isOpener(code):
		if flags != 0 {
			if n, ok := wireTypeNames[WireType(flags)]; ok {
				b.WriteString("." + n)
				flags = 0
			}
		}
	case code == OpX || code == OpY || code == OpColinear:
		if flags&FlagExtension != 0 {
			b.WriteString(".ext")
			flags &^= FlagExtension
		}
		if flags&FlagDefaultWidth != 0 {
			b.WriteString(".dw")
			flags &^= FlagDefaultWidth
		}
	case code == OpVia || code == OpTechVia:
		if flags&FlagExitTop != 0 {
			b.WriteString(".top")
			flags &^= FlagExitTop
		}
	case code == OpRule:
		if flags&FlagBlockRule != 0 {
			b.WriteString(".block")
			flags &^= FlagBlockRule
		}
	}
	if flags != 0 {
		fmt.Fprintf(&b, ".0x%02x", flags)
	}
	return b.String()
}

// ParseMnemonic is the inverse of Mnemonic.
func ParseMnemonic(m string) (byte, error) {
	parts := strings.Split(m, ".")
	code, ok := opByName(parts[0])
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", parts[0])
	}
	op := code
	for _, suffix := range parts[1:] {
		f, err := flagBits(code, suffix)
		if err != nil {
			return 0, err
		}
		op |= f
	}
	return op, nil
}

func flagBits(code byte, suffix string) (byte, error) {
	if strings.HasPrefix(suffix, "0x") {
		v, err := strconv.ParseUint(suffix[2:], 16, 8)
		if err != nil || byte(v)&OpcodeMask != 0 {
			return 0, fmt.Errorf("bad flag bits %q", suffix)
		}
		return byte(v), nil
	}
	switch {
	case isOpener(code):
		if t, ok := ParseWireType(suffix); ok {
			return byte(t), nil
		}
	case code == OpX || code == OpY || code == OpColinear:
		switch suffix {
		case "ext":
			return FlagExtension, nil
		case "dw":
			return FlagDefaultWidth, nil
		}
	case code == OpVia || code == OpTechVia:
		if suffix == "top" {
			return FlagExitTop, nil
		}
	case code == OpRule:
		if suffix == "block" {
			return FlagBlockRule, nil
		}
	}
	return 0, fmt.Errorf("flag %q does not apply to %s", suffix, OpName(code))
}

// Parse reads a stream in text form. The result is not validated.
func Parse(r io.Reader) (Stream, error) {
	var s Stream
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if len(fields) == 3 {
			slot, err := strconv.Atoi(fields[0])
			if err != nil {
				return Stream{}, errors.ParseFailed(line, "bad slot number", err)
			}
			if slot != s.Len() {
				return Stream{}, errors.ParseFailed(line, fmt.Sprintf("slot %d out of sequence, expected %d", slot, s.Len()), nil)
			}
			fields = fields[1:]
		}
		if len(fields) != 2 {
			return Stream{}, errors.ParseFailed(line, "expected mnemonic and operand", nil)
		}

		op, err := ParseMnemonic(fields[0])
		if err != nil {
			return Stream{}, errors.ParseFailed(line, "bad mnemonic", err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return Stream{}, errors.ParseFailed(line, "bad operand", err)
		}
		s.push(op, int(v))
	}
	if err := sc.Err(); err != nil {
		return Stream{}, errors.ParseFailed(line, "read", err)
	}
	return s, nil
}

// MustParse parses a text-form stream and panics on error. It is meant for
// fixtures.
func MustParse(text string) Stream {
	s, err := Parse(strings.NewReader(text))
	if err != nil {
		panic(err)
	}
	return s
}
