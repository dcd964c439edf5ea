package graph

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
	"go.uber.org/zap"
)

// Decode builds the graph of a wire in one forward pass over s. Every
// point, via and junction slot is registered so that NodeAt and EdgeAt
// resolve the junction ids of s.
//
// RECT slots carry no topology and are skipped. A malformed stream panics
// with an *errors.Error.
func Decode(s stream.Stream, cat tech.Catalog) *Graph {
	b := builder{g: New(), cat: cat}
	b.cur.Reset(s)
	for {
		in := b.cur.Next()
		if in.Kind == stream.KindEnd {
			break
		}
		b.step(in)
	}
	Logger().Debug("decoded wire",
		zap.Int("slots", s.Len()),
		zap.Int("nodes", b.g.NodeCount()),
		zap.Int("edges", b.g.EdgeCount()))
	return b.g
}

// builder is the decode state. prevStyle is the end style the next segment
// leaving prev starts with.
type builder struct {
	g     *Graph
	cat   tech.Catalog
	cur   stream.Cursor
	layer *tech.Layer
	attrs Attrs

	prev      NodeID
	prevStyle EndStyle
	// branch is set between a JUNCTION and the COLINEAR that restates it.
	branch bool

	pending     stream.Kind
	pendingFrom NodeID
}

func (b *builder) step(in stream.Instruction) {
	switch in.Kind {
	case stream.KindPath:
		b.open(in, tech.MustLayer(b.cat, in.Operand))

	case stream.KindShort, stream.KindVWire:
		from := b.junction(in)
		b.open(in, tech.MustLayer(b.cat, in.Operand))
		b.pending, b.pendingFrom = in.Kind, from

	case stream.KindJunction:
		from := b.junction(in)
		b.open(in, b.g.Node(from).layer)
		b.prev = from
		b.branch = true
		b.g.register(in.ID, from)

	case stream.KindRule:
		b.attrs.Rule = tech.MustRule(b.cat, in.Operand, in.BlockRule())

	case stream.KindPoint, stream.KindColinear:
		b.point(in)

	case stream.KindVia, stream.KindTechVia:
		b.via(in)

	case stream.KindITerm:
		b.g.AttachTerminal(b.needPrev(in), tech.MustITerm(b.cat, in.Operand))

	case stream.KindBTerm:
		b.g.AttachTerminal(b.needPrev(in), tech.MustBTerm(b.cat, in.Operand))

	case stream.KindRect, stream.KindAux:
	}
}

func (b *builder) open(in stream.Instruction, layer *tech.Layer) {
	b.layer = layer
	b.attrs = Attrs{WireType: in.WireType()}
	b.prev = NodeID{}
	b.prevStyle = Extended()
	b.branch = false
	b.pending = stream.KindEnd
}

// junction resolves the node a JUNCTION, SHORT or VWIRE refers to.
func (b *builder) junction(in stream.Instruction) NodeID {
	id, ok := b.g.NodeAt(in.Junction)
	if !ok {
		panic(errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Slot(in.Slot).
			Op(in.Kind.String()).
			Detail("junction %d names no point", in.Junction).
			Build())
	}
	return id
}

func (b *builder) needPrev(in stream.Instruction) NodeID {
	if !b.prev.IsValid() {
		panic(errors.MissingPoint(errors.PhaseDecode, in.Slot, in.Kind.String()))
	}
	return b.prev
}

func styleOf(in stream.Instruction) EndStyle {
	if in.HasExt {
		return VariableExt(in.Ext)
	}
	return Extended()
}

func (b *builder) point(in stream.Instruction) {
	style := styleOf(in)
	pt := geom.Pt(in.X, in.Y)

	if !b.prev.IsValid() {
		if in.Kind == stream.KindColinear {
			panic(errors.MissingPoint(errors.PhaseDecode, in.Slot, "colinear"))
		}
		n := b.g.CreateNode(pt, b.layer)
		switch b.pending {
		case stream.KindShort:
			b.g.CreateShort(b.pendingFrom, n, b.attrs)
		case stream.KindVWire:
			b.g.CreateVWire(b.pendingFrom, n, b.attrs)
		}
		b.pending = stream.KindEnd
		b.advance(in, n, style)
		return
	}

	if b.branch && in.Kind == stream.KindColinear {
		b.branch = false
		b.advance(in, b.prev, style)
		return
	}
	b.branch = false

	if pt == b.g.Node(b.prev).pt {
		switch {
		case in.HasExt:
			b.advance(in, b.prev, style)
			return
		case b.prevStyle.Variable:
			b.advance(in, b.prev, Extended())
			return
		}
	}

	n := b.g.CreateNode(pt, b.layer)
	b.g.CreateSegment(b.prev, n, b.prevStyle, style, b.attrs)
	b.advance(in, n, style)
}

func (b *builder) via(in stream.Instruction) {
	prev := b.needPrev(in)
	techVia := in.Kind == stream.KindTechVia
	v := tech.MustVia(b.cat, in.Operand, techVia)
	exit := v.Bottom
	if in.ExitTop() {
		exit = v.Top
	}
	b.layer = tech.MustLayer(b.cat, exit)
	n := b.g.CreateNode(b.g.Node(prev).pt, b.layer)
	if techVia {
		b.g.CreateTechVia(prev, n, v, b.attrs)
	} else {
		b.g.CreateVia(prev, n, v, b.attrs)
	}
	b.branch = false
	b.advance(in, n, Extended())
}

// advance makes n the current node and registers it at the junction id of
// the instruction that left it current.
func (b *builder) advance(in stream.Instruction, n NodeID, style EndStyle) {
	b.g.register(in.ID, n)
	b.prev = n
	b.prevStyle = style
}
