package shape

import (
	"fmt"

	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

// Kind identifies the primitive a Shape describes.
type Kind uint8

const (
	KindSegment Kind = iota
	KindVia
	KindTechVia
	KindRect
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindVia:
		return "via"
	case KindTechVia:
		return "techvia"
	case KindRect:
		return "rect"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Shape is one primitive decoded from a stream.
type Shape struct {
	// Box is the drawn footprint.
	Box geom.Rect
	// Layer is the layer of a segment or rect. Vias leave it nil.
	Layer *tech.Layer
	// Via is set for via shapes.
	Via *tech.Via
	// From and To are the centerline ends of a segment. Vias and rects
	// report the current point in both.
	From, To geom.Point

	Kind Kind
	// ID is the slot of the instruction that produced the shape.
	ID int

	HalfWidth int
	FromExt   int
	ToExt     int

	// Color is the mask of the shape, 0 when it has none.
	Color int
	// ViaColor holds the per-layer masks of a via.
	ViaColor stream.ViaColor
}

// IsVia reports whether s is a block or technology via.
func (s Shape) IsVia() bool {
	return s.Kind == KindVia || s.Kind == KindTechVia
}

// Length is the centerline length of a segment and zero for anything else.
func (s Shape) Length() int {
	if s.Kind != KindSegment {
		return 0
	}
	return abs(s.To.X-s.From.X) + abs(s.To.Y-s.From.Y)
}

func (s Shape) String() string {
	var out string
	switch s.Kind {
	case KindSegment:
		out = fmt.Sprintf("segment %s %v-%v hw=%d ext=%d/%d box=%v", layerName(s.Layer), s.From, s.To, s.HalfWidth, s.FromExt, s.ToExt, s.Box)
	case KindVia, KindTechVia:
		out = fmt.Sprintf("%s %s at %v box=%v", s.Kind, s.Via.Name, s.From, s.Box)
		if !s.ViaColor.IsZero() {
			out += " vmask=" + s.ViaColor.String()
		}
	default:
		out = fmt.Sprintf("rect %s box=%v", layerName(s.Layer), s.Box)
	}
	if s.Color != 0 {
		out += fmt.Sprintf(" mask=%d", s.Color)
	}
	return out
}

func layerName(l *tech.Layer) string {
	if l == nil {
		return "-"
	}
	return l.Name
}

// segmentBox is the footprint of a wire segment: the half-width on each
// side of the centerline and the extension past each end.
func segmentBox(from, to geom.Point, fromExt, toExt, hw int, dir tech.Direction) geom.Rect {
	switch {
	case from.Y == to.Y && (from.X != to.X || dir != tech.DirVertical):
		if from.X > to.X {
			from, to = to, from
			fromExt, toExt = toExt, fromExt
		}
		return geom.Rect{XMin: from.X - fromExt, YMin: from.Y - hw, XMax: to.X + toExt, YMax: to.Y + hw}
	default:
		if from.Y > to.Y {
			from, to = to, from
			fromExt, toExt = toExt, fromExt
		}
		return geom.Rect{XMin: from.X - hw, YMin: from.Y - fromExt, XMax: to.X + hw, YMax: to.Y + toExt}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
