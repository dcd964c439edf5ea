// Package binary holds the byte-level codec of the wire file format: single
// bytes, raw spans, an unsigned LEB128 slot count and signed LEB128
// operands.
package binary

import (
	"bytes"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTruncated reports input that ends inside a field.
	ErrTruncated = errors.New("wire: input ends inside a field")
	// ErrVarintOverflow reports a LEB128 value wider than its field.
	ErrVarintOverflow = errors.New("wire: LEB128 value overflows its field")
)

const (
	maxCountBytes   = 5  // 32 bits
	maxOperandBytes = 10 // 64 bits
)

// FieldError locates a failed read at the offset where the field starts.
type FieldError struct {
	Err    error
	Offset int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("byte %d: %v", e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Reader decodes fields from an in-memory wire file.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Byte reads one byte.
func (r *Reader) Byte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, r.fail(r.off, ErrTruncated)
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// Span returns a copy of the next n bytes.
func (r *Reader) Span(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, r.fail(r.off, ErrTruncated)
	}
	out := bytes.Clone(r.data[r.off : r.off+n])
	r.off += n
	return out, nil
}

// Count reads an unsigned LEB128 value that must fit in 32 bits.
func (r *Reader) Count() (uint32, error) {
	start := r.off
	var v uint64
	for i := range maxCountBytes {
		b, err := r.Byte()
		if err != nil {
			return 0, r.fail(start, ErrTruncated)
		}
		v |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if v > math.MaxUint32 {
				return 0, r.fail(start, ErrVarintOverflow)
			}
			return uint32(v), nil
		}
	}
	return 0, r.fail(start, ErrVarintOverflow)
}

// Operand reads a signed LEB128 value that must fit in 64 bits.
func (r *Reader) Operand() (int64, error) {
	start := r.off
	var v int64
	var shift uint
	for range maxOperandBytes {
		b, err := r.Byte()
		if err != nil {
			return 0, r.fail(start, ErrTruncated)
		}
		v |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				v |= ^int64(0) << shift
			}
			return v, nil
		}
	}
	return 0, r.fail(start, ErrVarintOverflow)
}

func (r *Reader) fail(start int, err error) error {
	return &FieldError{Offset: start, Err: err}
}
