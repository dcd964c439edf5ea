package stream

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/tech"
)

// WirePoint is a point recovered from the stream without decoding it.
type WirePoint struct {
	Layer *tech.Layer // nil when resolved without a catalog
	X     int
	Y     int
}

// Point returns the coordinates of p.
func (p WirePoint) Point() geom.Point {
	return geom.Pt(p.X, p.Y)
}

// PrevPoint walks backward from slot idx (inclusive) and recovers the point
// current at that slot together with its layer. JUNCTION slots are followed
// to the point they reference. With a nil catalog only the coordinates are
// resolved.
//
// A stream in which the walk runs off the start, or in which a JUNCTION
// refers forward, is corrupt and makes PrevPoint panic.
func PrevPoint(s Stream, idx int, cat tech.Catalog) WirePoint {
	s.check(idx)

	var p WirePoint
	needX, needY, needLayer := true, true, cat != nil

	for i := idx; needX || needY || needLayer; {
		if i < 0 {
			panic(errors.MissingPoint(errors.PhaseStream, idx, "prev point"))
		}
		op, v := s.Opcodes[i], s.Operands[i]

		switch Code(op) {
		case OpPath, OpShort, OpVWire:
			if needX || needY {
				panic(errors.MissingPoint(errors.PhaseStream, idx, "prev point"))
			}
			if needLayer {
				p.Layer = tech.MustLayer(cat, v)
				needLayer = false
			}
		case OpJunction:
			if v < 0 || v >= i {
				panic(errors.New(errors.PhaseStream, errors.KindInvalidData).
					Slot(i).Op("jct").
					Detail("junction %d does not precede its reference", v).
					Build())
			}
			i = v
			continue
		case OpX:
			if needX {
				p.X = v
				needX = false
			}
		case OpY:
			if needY {
				p.Y = v
				needY = false
			}
		case OpVia, OpTechVia:
			if needLayer {
				via := tech.MustVia(cat, v, Code(op) == OpTechVia)
				p.Layer = exitLayer(cat, via, op)
				needLayer = false
			}
		}
		i--
	}
	return p
}

// Coord returns the coordinates of the point at junction id jid.
func Coord(s Stream, jid int) geom.Point {
	return PrevPoint(s, jid, nil).Point()
}

func exitLayer(cat tech.Catalog, via *tech.Via, op byte) *tech.Layer {
	if op&FlagExitTop != 0 {
		return tech.MustLayer(cat, via.Top)
	}
	return tech.MustLayer(cat, via.Bottom)
}
