package binary

// Writer appends fields in the layout Reader expects.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with room for a header and slots slots.
func NewWriter(slots int) *Writer {
	return &Writer{buf: make([]byte, 0, 16+2*slots)}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Byte appends one byte.
func (w *Writer) Byte(b byte) { w.buf = append(w.buf, b) }

// Span appends p unchanged.
func (w *Writer) Span(p []byte) { w.buf = append(w.buf, p...) }

// Count appends v as unsigned LEB128.
func (w *Writer) Count(v uint32) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// Operand appends v as signed LEB128.
func (w *Writer) Operand(v int64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			w.buf = append(w.buf, b)
			return
		}
		w.buf = append(w.buf, b|0x80)
	}
}
