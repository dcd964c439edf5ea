package shape

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

// decoder is the state machine shared by Iterator and PathIterator. It
// consumes one instruction at a time and reports the shape, if any, that
// the instruction produces.
type decoder struct {
	cur stream.Cursor
	s   stream.Stream
	cat tech.Catalog

	layer     *tech.Layer
	halfWidth int
	// explicitWidth is set once a RULE fixed the width of the current path.
	explicitWidth bool

	pointCnt int
	hasPoint bool
	prev     geom.Point
	// prevExt is the explicit extension stored for prev, if any.
	prevExt    int
	hasPrevExt bool

	// color and viaColor are the masks set by the last COLOR and VIA_COLOR
	// slots. They carry over from one path to the next.
	color    int
	viaColor stream.ViaColor
}

func (d *decoder) begin(s stream.Stream, cat tech.Catalog) {
	*d = decoder{s: s, cat: cat}
	d.cur.Reset(s)
}

func (d *decoder) setLayer(l *tech.Layer) {
	d.layer = l
	if !d.explicitWidth {
		d.halfWidth = l.HalfWidth()
	}
}

func (d *decoder) openPath(l *tech.Layer) {
	d.explicitWidth = false
	d.setLayer(l)
	d.pointCnt = 0
	d.hasPrevExt = false
}

// step applies in to the state and returns the shape it produces.
func (d *decoder) step(in stream.Instruction) (Shape, bool) {
	switch in.Kind {
	case stream.KindPath, stream.KindShort, stream.KindVWire:
		d.openPath(tech.MustLayer(d.cat, in.Operand))
		d.hasPoint = false

	case stream.KindJunction:
		p := stream.PrevPoint(d.s, in.Junction, d.cat)
		d.openPath(p.Layer)
		d.prev = p.Point()
		d.hasPoint = true

	case stream.KindRule:
		r := tech.MustRule(d.cat, in.Operand, in.BlockRule())
		d.halfWidth = r.HalfWidth()
		d.explicitWidth = true

	case stream.KindPoint:
		pt := geom.Pt(in.X, in.Y)
		if in.First {
			d.pointCnt = 1
			d.hasPoint = true
			d.prev = pt
			d.prevExt, d.hasPrevExt = in.Ext, in.HasExt
			return Shape{}, false
		}
		d.pointCnt++
		sh := d.segment(in.ID, pt, in.Ext, in.HasExt)
		d.prev = pt
		d.prevExt, d.hasPrevExt = in.Ext, in.HasExt
		return sh, true

	case stream.KindColinear:
		d.pointCnt++
		switch {
		case d.pointCnt == 1:
			// Absorbed: the branch start of a junction path.
			d.hasPrevExt = false
		case in.HasExt:
			d.prevExt, d.hasPrevExt = in.Ext, true
		case d.hasPrevExt:
			d.hasPrevExt = false
		default:
			return d.segment(in.ID, d.prev, 0, false), true
		}

	case stream.KindVia, stream.KindTechVia:
		d.needPoint(in)
		techVia := in.Kind == stream.KindTechVia
		via := tech.MustVia(d.cat, in.Operand, techVia)
		sh := Shape{
			Kind: KindVia,
			ID:   in.ID,
			Via:  via,
			From: d.prev,
			To:   d.prev,
			Box:  via.BBox.Offset(d.prev),

			Color:    d.color,
			ViaColor: d.viaColor,
		}
		if techVia {
			sh.Kind = KindTechVia
		}
		exit := via.Bottom
		if in.ExitTop() {
			exit = via.Top
		}
		d.setLayer(tech.MustLayer(d.cat, exit))
		d.hasPrevExt = false
		return sh, true

	case stream.KindRect:
		d.needPoint(in)
		r := in.Rect
		return Shape{
			Kind:  KindRect,
			ID:    in.ID,
			Layer: d.layer,
			From:  d.prev,
			To:    d.prev,
			Box:   geom.NewRect(d.prev.X+r[0], d.prev.Y+r[1], d.prev.X+r[2], d.prev.Y+r[3]),
			Color: d.color,
		}, true

	case stream.KindAux:
		switch stream.Code(in.Opcode) {
		case stream.OpColor:
			d.color = in.Operand
		case stream.OpViaColor:
			d.viaColor = stream.UnpackViaColor(in.Operand)
		}
	}
	return Shape{}, false
}

func (d *decoder) segment(id int, to geom.Point, ext int, hasExt bool) Shape {
	fromExt := d.halfWidth
	if d.hasPrevExt {
		fromExt = d.prevExt
	}
	toExt := d.halfWidth
	if hasExt {
		toExt = ext
	}
	return Shape{
		Kind:      KindSegment,
		ID:        id,
		Layer:     d.layer,
		From:      d.prev,
		To:        to,
		HalfWidth: d.halfWidth,
		FromExt:   fromExt,
		ToExt:     toExt,
		Box:       segmentBox(d.prev, to, fromExt, toExt, d.halfWidth, d.layer.Direction),
		Color:     d.color,
	}
}

func (d *decoder) needPoint(in stream.Instruction) {
	if !d.hasPoint {
		panic(errors.MissingPoint(errors.PhaseDecode, in.Slot, in.Kind.String()))
	}
}

// next decodes instructions until one produces a shape or the stream ends.
func (d *decoder) next() (Shape, bool) {
	for {
		in := d.cur.Next()
		if in.Kind == stream.KindEnd {
			return Shape{}, false
		}
		if sh, ok := d.step(in); ok {
			return sh, true
		}
	}
}
