package shape

import (
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
	"go.uber.org/zap"
)

// BBox returns the bounding box of every shape in s, or false when s draws
// nothing.
func BBox(s stream.Stream, cat tech.Catalog) (geom.Rect, bool) {
	box := geom.EmptyRect()
	it := NewIterator(cat)
	it.Begin(s)
	for sh, ok := it.Next(); ok; sh, ok = it.Next() {
		box = box.Merge(sh.Box)
	}
	if box.Empty() {
		return geom.Rect{}, false
	}
	Logger().Debug("wire bbox", zap.Stringer("box", box))
	return box, true
}

// Length returns the total centerline length of the segments in s. Vias and
// rects do not count.
func Length(s stream.Stream, cat tech.Catalog) int {
	total := 0
	it := NewIterator(cat)
	it.Begin(s)
	for sh, ok := it.Next(); ok; sh, ok = it.Next() {
		total += sh.Length()
	}
	return total
}

// At returns the shape whose id is the given slot.
func At(s stream.Stream, id int, cat tech.Catalog) (Shape, bool) {
	it := NewIterator(cat)
	it.Begin(s)
	for sh, ok := it.Next(); ok; sh, ok = it.Next() {
		if sh.ID == id {
			return sh, true
		}
		if sh.ID > id {
			break
		}
	}
	return Shape{}, false
}

// Collect returns every shape of s.
func Collect(s stream.Stream, cat tech.Catalog) []Shape {
	var out []Shape
	it := NewIterator(cat)
	it.Begin(s)
	for sh, ok := it.Next(); ok; sh, ok = it.Next() {
		out = append(out, sh)
	}
	return out
}

// PrevVia returns the via that leads into the point at junction id jid:
// the via right before it, or the via before an extended colinear point
// that restarts the wire at the via.
func PrevVia(s stream.Stream, jid int, cat tech.Catalog) (Shape, bool) {
	if jid <= 0 || jid >= s.Len() {
		return Shape{}, false
	}
	i := prevSlot(s, jid)
	if i >= 0 && stream.Code(s.Opcodes[i]) == stream.OpColinear && s.Opcodes[i]&stream.FlagExtension != 0 {
		i = prevSlot(s, i)
	}
	return viaAt(s, i, cat)
}

// NextVia returns the via placed at the point at junction id jid, if the
// wire goes on through one before moving.
func NextVia(s stream.Stream, jid int, cat tech.Catalog) (Shape, bool) {
	if jid <= 0 || jid >= s.Len() {
		return Shape{}, false
	}
	for i := jid + 1; i < s.Len(); i++ {
		switch stream.Code(s.Opcodes[i]) {
		case stream.OpVia, stream.OpTechVia:
			return viaAt(s, i, cat)
		case stream.OpPath, stream.OpShort, stream.OpVWire, stream.OpJunction,
			stream.OpX, stream.OpY, stream.OpColinear:
			return Shape{}, false
		}
	}
	return Shape{}, false
}

// ViaBoxes returns the boxes of the via shape with the given id, placed at
// the via. It reports false when id is not a via.
func ViaBoxes(s stream.Stream, id int, cat tech.Catalog) ([]tech.ViaBox, bool) {
	sh, ok := At(s, id, cat)
	if !ok || !sh.IsVia() {
		return nil, false
	}
	out := make([]tech.ViaBox, 0, len(sh.Via.Boxes))
	for _, b := range sh.Via.Boxes {
		out = append(out, tech.ViaBox{Layer: b.Layer, Box: b.Box.Offset(sh.From)})
	}
	return out, true
}

// prevSlot walks back from i to the closest slot that opens a path, draws
// a point or places a via. Rules, operands, terminals and auxiliary slots
// are skipped.
func prevSlot(s stream.Stream, i int) int {
	for i--; i >= 0; i-- {
		switch stream.Code(s.Opcodes[i]) {
		case stream.OpPath, stream.OpShort, stream.OpVWire, stream.OpJunction,
			stream.OpX, stream.OpY, stream.OpColinear, stream.OpVia, stream.OpTechVia:
			return i
		}
	}
	return -1
}

func viaAt(s stream.Stream, i int, cat tech.Catalog) (Shape, bool) {
	if i < 0 {
		return Shape{}, false
	}
	switch stream.Code(s.Opcodes[i]) {
	case stream.OpVia, stream.OpTechVia:
		return At(s, i, cat)
	}
	return Shape{}, false
}
