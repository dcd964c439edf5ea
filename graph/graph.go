package graph

import (
	"fmt"
	"slices"

	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/tech"
)

// Node is a point of a wire on one layer.
type Node struct {
	layer *tech.Layer
	iterm *tech.ITerm
	bterm *tech.BTerm
	out   []EdgeID
	pt    geom.Point
	id    NodeID
	in    EdgeID
}

func (n *Node) ID() NodeID         { return n.id }
func (n *Node) Point() geom.Point  { return n.pt }
func (n *Node) Layer() *tech.Layer { return n.layer }
func (n *Node) ITerm() *tech.ITerm { return n.iterm }
func (n *Node) BTerm() *tech.BTerm { return n.bterm }

// In returns the incoming edge, or the zero EdgeID for a root.
func (n *Node) In() EdgeID { return n.in }

// Out returns the outgoing edges in creation order.
func (n *Node) Out() []EdgeID { return slices.Clone(n.out) }

// IsRoot reports whether n has no incoming edge.
func (n *Node) IsRoot() bool { return !n.in.IsValid() }

// Terminals returns the attached terminals, iterm first.
func (n *Node) Terminals() []tech.Terminal {
	var out []tech.Terminal
	if n.iterm != nil {
		out = append(out, n.iterm)
	}
	if n.bterm != nil {
		out = append(out, n.bterm)
	}
	return out
}

func (n *Node) String() string {
	layer := "?"
	if n.layer != nil {
		layer = n.layer.Name
	}
	return fmt.Sprintf("%s %s %s", n.id, n.pt, layer)
}

// Graph owns the nodes and edges of one wire. Every node has at most one
// incoming edge, so a graph is a forest.
//
// Mutations that would break an invariant panic with an *errors.Error of
// kind precondition. A Graph is not safe for concurrent mutation.
type Graph struct {
	nodes arena[*Node]
	edges arena[Edge]

	// junctions maps the slots of the stream the graph was decoded from to
	// the nodes they left current.
	junctions map[int]NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.nodes.live }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.edges.live }

// Node resolves id, returning nil for a stale or zero handle.
func (g *Graph) Node(id NodeID) *Node {
	n, _ := g.nodes.get(id.index, id.gen)
	return n
}

// Edge resolves id, returning nil for a stale or zero handle.
func (g *Graph) Edge(id EdgeID) Edge {
	e, _ := g.edges.get(id.index, id.gen)
	return e
}

// Nodes returns every live node in creation order.
func (g *Graph) Nodes() []*Node { return g.nodes.ordered() }

// Edges returns every live edge in creation order.
func (g *Graph) Edges() []Edge { return g.edges.ordered() }

// Roots returns the nodes without an incoming edge in creation order.
func (g *Graph) Roots() []*Node {
	var out []*Node
	for _, n := range g.nodes.ordered() {
		if n.IsRoot() {
			out = append(out, n)
		}
	}
	return out
}

// NodeAt returns the node registered at junction id jid by Decode.
func (g *Graph) NodeAt(jid int) (NodeID, bool) {
	id, ok := g.junctions[jid]
	if !ok || g.Node(id) == nil {
		return NodeID{}, false
	}
	return id, true
}

// EdgeAt returns the incoming edge of the node registered at jid.
func (g *Graph) EdgeAt(jid int) (EdgeID, bool) {
	id, ok := g.NodeAt(jid)
	if !ok {
		return EdgeID{}, false
	}
	in := g.Node(id).in
	return in, in.IsValid()
}

func (g *Graph) register(jid int, id NodeID) {
	if g.junctions == nil {
		g.junctions = make(map[int]NodeID)
	}
	g.junctions[jid] = id
}

func (g *Graph) mustNode(op string, id NodeID) *Node {
	n := g.Node(id)
	if n == nil {
		panic(errors.Precondition(errors.PhaseGraph, op, fmt.Sprintf("stale node handle %s", id)))
	}
	return n
}

func (g *Graph) mustEdge(op string, id EdgeID) Edge {
	e := g.Edge(id)
	if e == nil {
		panic(errors.Precondition(errors.PhaseGraph, op, fmt.Sprintf("stale edge handle %s", id)))
	}
	return e
}

// CreateNode adds a node at p on layer.
func (g *Graph) CreateNode(p geom.Point, layer *tech.Layer) NodeID {
	if layer == nil {
		panic(errors.Precondition(errors.PhaseGraph, "create node", "nil layer"))
	}
	n := &Node{pt: p, layer: layer}
	idx, gen := g.nodes.alloc(n)
	n.id = NodeID{index: idx, gen: gen}
	return n.id
}

// CreateSegment adds a wire segment from src to dst. Both nodes must be on
// the same layer and axis-aligned; a zero-length segment must use the
// Extended style at both ends.
func (g *Graph) CreateSegment(src, dst NodeID, srcStyle, dstStyle EndStyle, a Attrs) EdgeID {
	const op = "create segment"
	s, d := g.link(op, src, dst)
	if s.layer.ID != d.layer.ID {
		panic(errors.Precondition(errors.PhaseGraph, op,
			fmt.Sprintf("endpoints on layers %s and %s", s.layer.Name, d.layer.Name)))
	}
	if s.pt.X != d.pt.X && s.pt.Y != d.pt.Y {
		panic(errors.Precondition(errors.PhaseGraph, op,
			fmt.Sprintf("non-orthogonal segment %s to %s", s.pt, d.pt)))
	}
	if s.pt == d.pt && (srcStyle.Variable || dstStyle.Variable) {
		panic(errors.Precondition(errors.PhaseGraph, op, "zero-length segment with a variable end"))
	}
	e := &Segment{SourceStyle: srcStyle, TargetStyle: dstStyle}
	return g.attach(e, s, d, a)
}

// CreateVia adds a block via from src to dst.
func (g *Graph) CreateVia(src, dst NodeID, v *tech.Via, a Attrs) EdgeID {
	s, d := g.viaLink("create via", src, dst, v, false)
	return g.attach(&Via{Master: v}, s, d, a)
}

// CreateTechVia adds a technology via from src to dst.
func (g *Graph) CreateTechVia(src, dst NodeID, v *tech.Via, a Attrs) EdgeID {
	s, d := g.viaLink("create tech via", src, dst, v, true)
	return g.attach(&TechVia{Master: v}, s, d, a)
}

// CreateShort adds a short from src to dst.
func (g *Graph) CreateShort(src, dst NodeID, a Attrs) EdgeID {
	s, d := g.link("create short", src, dst)
	return g.attach(&Short{}, s, d, a)
}

// CreateVWire adds a virtual wire from src to dst.
func (g *Graph) CreateVWire(src, dst NodeID, a Attrs) EdgeID {
	s, d := g.link("create vwire", src, dst)
	return g.attach(&VWire{}, s, d, a)
}

func (g *Graph) viaLink(op string, src, dst NodeID, v *tech.Via, techVia bool) (*Node, *Node) {
	if v == nil {
		panic(errors.Precondition(errors.PhaseGraph, op, "nil via"))
	}
	if v.Tech != techVia {
		panic(errors.Precondition(errors.PhaseGraph, op, fmt.Sprintf("via %s has the wrong scope", v.Name)))
	}
	s, d := g.link(op, src, dst)
	if s.pt != d.pt {
		panic(errors.Precondition(errors.PhaseGraph, op,
			fmt.Sprintf("via endpoints %s and %s differ", s.pt, d.pt)))
	}
	if !v.Connects(s.layer.ID, d.layer.ID) {
		panic(errors.Precondition(errors.PhaseGraph, op,
			fmt.Sprintf("via %s does not join %s and %s", v.Name, s.layer.Name, d.layer.Name)))
	}
	return s, d
}

// link checks the preconditions every edge shares: live distinct nodes, a
// target with no incoming edge, and no cycle.
func (g *Graph) link(op string, src, dst NodeID) (*Node, *Node) {
	s := g.mustNode(op, src)
	d := g.mustNode(op, dst)
	if src == dst {
		panic(errors.Precondition(errors.PhaseGraph, op, "edge loops on "+src.String()))
	}
	if d.in.IsValid() {
		panic(errors.Precondition(errors.PhaseGraph, op,
			fmt.Sprintf("%s already has incoming edge %s", dst, d.in)))
	}
	for up := s; up.in.IsValid(); {
		e := g.Edge(up.in)
		if e.Source() == dst {
			panic(errors.Precondition(errors.PhaseGraph, op,
				fmt.Sprintf("%s is an ancestor of %s", dst, src)))
		}
		up = g.Node(e.Source())
	}
	return s, d
}

func (g *Graph) attach(e Edge, s, d *Node, a Attrs) EdgeID {
	idx, gen := g.edges.alloc(e)
	b := e.base()
	b.id = EdgeID{index: idx, gen: gen}
	b.source = s.id
	b.target = d.id
	b.attrs = a
	s.out = append(s.out, b.id)
	d.in = b.id
	return b.id
}

// DeleteEdge removes an edge and unlinks it from both end nodes.
func (g *Graph) DeleteEdge(id EdgeID) {
	e := g.mustEdge("delete edge", id)
	if s := g.Node(e.Source()); s != nil {
		if i := slices.Index(s.out, id); i >= 0 {
			s.out = slices.Delete(s.out, i, i+1)
		}
	}
	if d := g.Node(e.Target()); d != nil && d.in == id {
		d.in = EdgeID{}
	}
	g.edges.release(id.index, id.gen)
}

// DeleteNode removes a node together with its outgoing edges and its
// incoming edge. The targets of the outgoing edges become roots.
func (g *Graph) DeleteNode(id NodeID) {
	n := g.mustNode("delete node", id)
	for _, e := range slices.Clone(n.out) {
		g.DeleteEdge(e)
	}
	if n.in.IsValid() {
		g.DeleteEdge(n.in)
	}
	g.nodes.release(id.index, id.gen)
}

// AttachTerminal attaches t to a node. Re-attaching the same terminal is a
// no-op; attaching a different terminal of the same kind panics.
func (g *Graph) AttachTerminal(id NodeID, t tech.Terminal) {
	n := g.mustNode("attach terminal", id)
	switch t := t.(type) {
	case *tech.ITerm:
		if n.iterm != nil && n.iterm.ID != t.ID {
			panic(errors.TerminalConflict(errors.PhaseGraph, n.iterm.String(), t.String()))
		}
		n.iterm = t
	case *tech.BTerm:
		if n.bterm != nil && n.bterm.ID != t.ID {
			panic(errors.TerminalConflict(errors.PhaseGraph, n.bterm.String(), t.String()))
		}
		n.bterm = t
	default:
		panic(errors.Precondition(errors.PhaseGraph, "attach terminal", fmt.Sprintf("unsupported terminal %T", t)))
	}
}

// DetachTerminal removes the terminal of the given kind from a node.
func (g *Graph) DetachTerminal(id NodeID, kind tech.TermKind) {
	n := g.mustNode("detach terminal", id)
	if kind == tech.TermBTerm {
		n.bterm = nil
		return
	}
	n.iterm = nil
}

// Transform maps every node through t. Orthogonal transforms keep segments
// axis-aligned and via endpoints coincident.
func (g *Graph) Transform(t geom.Transform) {
	for _, n := range g.nodes.ordered() {
		n.pt = t.Apply(n.pt)
	}
}
