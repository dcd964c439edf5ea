package graph

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/stream"
	"go.uber.org/zap"
)

// Encode writes g back to an opcode stream.
//
// Trees are walked depth first from every root in creation order. Runs of
// segments and vias that share wire type and rule become one path; every
// other child opens a branch at the junction id its source was written
// with. Shorts and virtual wires are written after the physical children
// of their source, each as a path of its own. Decoding the result gives a
// graph isomorphic to g.
func Encode(g *Graph) stream.Stream {
	e := encoder{g: g, w: stream.NewWriter(), jct: make(map[NodeID]int)}
	for _, n := range g.Roots() {
		e.walk(n)
	}
	s := e.w.Stream()
	Logger().Debug("encoded wire",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("slots", s.Len()))
	return s
}

// encoder holds the state of one Encode call. jct maps every node written
// so far to its junction id.
type encoder struct {
	g   *Graph
	w   *stream.Writer
	jct map[NodeID]int
	buf []Edge
	// style is the end style of the last point written.
	style EndStyle
}

func (e *encoder) walk(n *Node) {
	var links []Edge
	kids := 0
	for _, id := range n.out {
		edge := e.g.Edge(id)
		if !edge.Kind().Physical() {
			links = append(links, edge)
			continue
		}
		if kids > 0 || (len(e.buf) > 0 && !e.buf[0].Attrs().same(edge.Attrs())) {
			e.flush()
		}
		kids++
		e.buf = append(e.buf, edge)
		e.walk(e.g.Node(edge.Target()))
	}

	if kids == 0 {
		e.flush()
		if _, ok := e.jct[n.id]; !ok {
			e.w.NewPath(n.layer.ID, stream.WireNone, stream.NoRule)
			e.materialize(n, e.w.AddPoint(n.pt.X, n.pt.Y))
		}
	}

	for _, l := range links {
		e.flush()
		e.link(l)
		e.walk(e.g.Node(l.Target()))
	}
}

// flush writes the buffered run of edges as one path.
func (e *encoder) flush() {
	if len(e.buf) == 0 {
		return
	}
	first := e.buf[0]
	src := e.g.Node(first.Source())
	a := first.Attrs()
	style := Extended()
	if seg, ok := first.(*Segment); ok {
		style = seg.SourceStyle
	}

	if jct, ok := e.jct[src.id]; ok {
		if style.Variable {
			e.w.NewPathJunctionExt(jct, style.Ext, a.WireType, a.ruleRef())
		} else {
			e.w.NewPathJunction(jct, a.WireType, a.ruleRef())
		}
	} else {
		e.w.NewPath(src.layer.ID, a.WireType, a.ruleRef())
		e.materialize(src, e.addPoint(src, style))
	}
	e.style = style

	for _, edge := range e.buf {
		e.edge(edge)
	}
	clear(e.buf)
	e.buf = e.buf[:0]
}

func (e *encoder) edge(edge Edge) {
	src := e.g.Node(edge.Source())
	dst := e.g.Node(edge.Target())

	switch edge := edge.(type) {
	case *Segment:
		if edge.SourceStyle != e.style {
			e.addPoint(src, edge.SourceStyle)
		}
		e.materialize(dst, e.addPoint(dst, edge.TargetStyle))
		e.style = edge.TargetStyle

	case *Via:
		e.materialize(dst, e.w.AddVia(edge.Master.ID, dst.layer.ID == edge.Master.Top))
		e.style = Extended()

	case *TechVia:
		e.materialize(dst, e.w.AddTechVia(edge.Master.ID, dst.layer.ID == edge.Master.Top))
		e.style = Extended()

	default:
		panic(errors.Precondition(errors.PhaseEncode, "encode", "logical edge "+edge.ID().String()+" inside a path"))
	}
}

// link writes a short or virtual wire as a single-point path.
func (e *encoder) link(l Edge) {
	jct, ok := e.jct[l.Source()]
	if !ok {
		panic(errors.Precondition(errors.PhaseEncode, l.Kind().String(), "source "+l.Source().String()+" not written"))
	}
	dst := e.g.Node(l.Target())
	a := l.Attrs()
	if l.Kind() == EdgeShort {
		e.w.NewPathShort(jct, dst.layer.ID, a.WireType, a.ruleRef())
	} else {
		e.w.NewPathVirtualWire(jct, dst.layer.ID, a.WireType, a.ruleRef())
	}
	e.materialize(dst, e.w.AddPoint(dst.pt.X, dst.pt.Y))
	e.style = Extended()
}

func (e *encoder) addPoint(n *Node, style EndStyle) int {
	if style.Variable {
		return e.w.AddPointExt(n.pt.X, n.pt.Y, style.Ext)
	}
	return e.w.AddPoint(n.pt.X, n.pt.Y)
}

// materialize records the junction id of n and writes its terminals right
// after the point that introduced it.
func (e *encoder) materialize(n *Node, jct int) {
	if _, ok := e.jct[n.id]; ok {
		return
	}
	e.jct[n.id] = jct
	if n.iterm != nil {
		e.w.AddITerm(n.iterm.ID)
	}
	if n.bterm != nil {
		e.w.AddBTerm(n.bterm.ID)
	}
}
