package graph

import (
	"fmt"

	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

// EdgeKind identifies the variant of an Edge.
type EdgeKind uint8

const (
	EdgeSegment EdgeKind = iota
	EdgeVia
	EdgeTechVia
	EdgeShort
	EdgeVWire
)

var edgeKindNames = [...]string{
	EdgeSegment: "segment",
	EdgeVia:     "via",
	EdgeTechVia: "techvia",
	EdgeShort:   "short",
	EdgeVWire:   "vwire",
}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return fmt.Sprintf("EdgeKind(%d)", uint8(k))
}

// Physical reports whether edges of kind k carry geometry. Shorts and
// virtual wires are logical connections only.
func (k EdgeKind) Physical() bool {
	return k <= EdgeTechVia
}

// EndStyle says how far a segment extends past one of its end points: the
// default half-width (Extended) or an explicit length (Variable).
type EndStyle struct {
	Variable bool
	Ext      int
}

// Extended is the default end style.
func Extended() EndStyle { return EndStyle{} }

// VariableExt is an explicit extension of n.
func VariableExt(n int) EndStyle { return EndStyle{Variable: true, Ext: n} }

func (s EndStyle) String() string {
	if s.Variable {
		return fmt.Sprintf("var(%d)", s.Ext)
	}
	return "ext"
}

// Attrs are the path attributes every edge carries.
type Attrs struct {
	WireType stream.WireType
	// Rule is the non-default width rule, nil for the layer default.
	Rule *tech.Rule
}

func (a Attrs) same(b Attrs) bool {
	if a.WireType != b.WireType {
		return false
	}
	if a.Rule == nil || b.Rule == nil {
		return a.Rule == b.Rule
	}
	return a.Rule.ID == b.Rule.ID && a.Rule.Block == b.Rule.Block
}

func (a Attrs) ruleRef() stream.RuleRef {
	if a.Rule == nil {
		return stream.NoRule
	}
	return stream.RuleRef{ID: a.Rule.ID, Block: a.Rule.Block}
}

// Edge is one of *Segment, *Via, *TechVia, *Short or *VWire. Switch on the
// concrete type to reach variant data.
type Edge interface {
	ID() EdgeID
	Kind() EdgeKind
	Source() NodeID
	Target() NodeID
	Attrs() Attrs
	WireType() stream.WireType
	Rule() *tech.Rule

	base() *edgeBase
}

type edgeBase struct {
	attrs  Attrs
	id     EdgeID
	source NodeID
	target NodeID
}

func (e *edgeBase) ID() EdgeID                { return e.id }
func (e *edgeBase) Source() NodeID            { return e.source }
func (e *edgeBase) Target() NodeID            { return e.target }
func (e *edgeBase) Attrs() Attrs              { return e.attrs }
func (e *edgeBase) WireType() stream.WireType { return e.attrs.WireType }
func (e *edgeBase) Rule() *tech.Rule          { return e.attrs.Rule }
func (e *edgeBase) base() *edgeBase           { return e }

// Segment is a straight wire between two nodes on one layer.
type Segment struct {
	edgeBase
	SourceStyle EndStyle
	TargetStyle EndStyle
}

func (*Segment) Kind() EdgeKind { return EdgeSegment }

// Via joins two nodes at one point through a block via.
type Via struct {
	edgeBase
	Master *tech.Via
}

func (*Via) Kind() EdgeKind { return EdgeVia }

// TechVia joins two nodes at one point through a technology via.
type TechVia struct {
	edgeBase
	Master *tech.Via
}

func (*TechVia) Kind() EdgeKind { return EdgeTechVia }

// Short is a zero-length same-net connection between two points.
type Short struct {
	edgeBase
}

func (*Short) Kind() EdgeKind { return EdgeShort }

// VWire is a virtual connection between two points that routing has not
// completed.
type VWire struct {
	edgeBase
}

func (*VWire) Kind() EdgeKind { return EdgeVWire }

// viaMaster returns the via of a Via or TechVia edge.
func viaMaster(e Edge) *tech.Via {
	switch v := e.(type) {
	case *Via:
		return v.Master
	case *TechVia:
		return v.Master
	}
	return nil
}
