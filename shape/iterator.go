package shape

import (
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

// Iterator walks the shapes of a stream in order: one shape per segment,
// via and rect. It allocates nothing beyond its own state.
type Iterator struct {
	d decoder
}

// NewIterator returns an iterator that resolves ids through cat.
func NewIterator(cat tech.Catalog) *Iterator {
	it := &Iterator{}
	it.d.cat = cat
	return it
}

// Begin resets the iterator to the start of s.
func (it *Iterator) Begin(s stream.Stream) {
	it.d.begin(s, it.d.cat)
}

// Next returns the next shape, or false at the end of the stream.
func (it *Iterator) Next() (Shape, bool) {
	return it.d.next()
}

// Path describes one path of a stream: a PATH, JUNCTION, SHORT or VWIRE
// opener and its first point.
type Path struct {
	Point geom.Point
	Layer *tech.Layer
	// Rule is the non-default rule given before the first point.
	Rule  *tech.Rule
	ITerm *tech.ITerm
	BTerm *tech.BTerm

	// Junction is the junction id of the first point, or -1 when the path
	// has none.
	Junction int
	// Source is the junction a branch, short or virtual wire starts from,
	// or -1 for a PATH.
	Source int

	WireType  stream.WireType
	IsBranch  bool
	IsShort   bool
	IsVirtual bool
}

// PathShape is a shape inside a path together with the point and layer the
// path continues from after it.
type PathShape struct {
	Shape Shape
	Point geom.Point
	Layer *tech.Layer
	ITerm *tech.ITerm
	BTerm *tech.BTerm
	// Junction is the junction id of Point.
	Junction int
}

// PathIterator groups the shapes of a stream by path. Call NextPath to move
// to the next path and NextShape to walk its shapes.
type PathIterator struct {
	d decoder
}

// NewPathIterator returns a path iterator that resolves ids through cat.
func NewPathIterator(cat tech.Catalog) *PathIterator {
	it := &PathIterator{}
	it.d.cat = cat
	return it
}

// Begin resets the iterator to the start of s.
func (it *PathIterator) Begin(s stream.Stream) {
	it.d.begin(s, it.d.cat)
}

// NextPath skips what is left of the current path and returns the next one,
// or false at the end of the stream.
func (it *PathIterator) NextPath() (Path, bool) {
	var in stream.Instruction
	for {
		in = it.d.cur.Next()
		if in.Kind == stream.KindEnd {
			return Path{}, false
		}
		it.d.step(in)
		if in.Kind.Opens() {
			break
		}
	}

	p := Path{
		Junction:  -1,
		Source:    in.Junction,
		WireType:  in.WireType(),
		IsBranch:  in.Kind == stream.KindJunction,
		IsShort:   in.Kind == stream.KindShort,
		IsVirtual: in.Kind == stream.KindVWire,
	}

	for k := it.d.cur.Peek(); k == stream.KindRule || k == stream.KindAux; k = it.d.cur.Peek() {
		in = it.d.cur.Next()
		it.d.step(in)
		if k == stream.KindRule {
			p.Rule = tech.MustRule(it.d.cat, in.Operand, in.BlockRule())
		}
	}

	switch k := it.d.cur.Peek(); {
	case k == stream.KindColinear && p.IsBranch, k == stream.KindPoint:
		in = it.d.cur.Next()
		it.d.step(in)
		p.Junction = in.ID
		p.Point = it.d.prev
		p.ITerm, p.BTerm = it.terms()
	default:
		p.Point = it.d.prev
	}
	p.Layer = it.d.layer
	return p, true
}

// NextShape returns the next shape of the current path. It stops, without
// consuming it, at the instruction that opens the next path.
func (it *PathIterator) NextShape() (PathShape, bool) {
	for {
		if k := it.d.cur.Peek(); k == stream.KindEnd || k.Opens() {
			return PathShape{}, false
		}
		in := it.d.cur.Next()
		sh, ok := it.d.step(in)
		if !ok {
			continue
		}
		ps := PathShape{
			Shape:    sh,
			Point:    it.d.prev,
			Layer:    it.d.layer,
			Junction: in.ID,
		}
		ps.ITerm, ps.BTerm = it.terms()
		return ps, true
	}
}

// terms consumes up to two terminal attachments, in either order.
func (it *PathIterator) terms() (*tech.ITerm, *tech.BTerm) {
	var iterm *tech.ITerm
	var bterm *tech.BTerm
	for n := 0; n < 2; n++ {
		switch it.d.cur.Peek() {
		case stream.KindITerm:
			if iterm != nil {
				return iterm, bterm
			}
			iterm = tech.MustITerm(it.d.cat, it.d.cur.Next().Operand)
		case stream.KindBTerm:
			if bterm != nil {
				return iterm, bterm
			}
			bterm = tech.MustBTerm(it.d.cat, it.d.cur.Next().Operand)
		default:
			return iterm, bterm
		}
	}
	return iterm, bterm
}
