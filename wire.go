package wirecodec

import (
	"github.com/wippyai/wire-codec/errors"
	"github.com/wippyai/wire-codec/geom"
	"github.com/wippyai/wire-codec/graph"
	"github.com/wippyai/wire-codec/shape"
	"github.com/wippyai/wire-codec/stream"
	"github.com/wippyai/wire-codec/tech"
)

// Cell is the per-net storage holding exactly one opcode stream.
type Cell interface {
	Load() (stream.Stream, error)
	Store(s stream.Stream) error
}

// MemoryCell is a Cell kept in memory.
type MemoryCell struct {
	s stream.Stream
}

// NewMemoryCell returns a cell holding a copy of s.
func NewMemoryCell(s stream.Stream) *MemoryCell {
	return &MemoryCell{s: s.Clone()}
}

// Load returns a copy of the stored stream.
func (c *MemoryCell) Load() (stream.Stream, error) {
	return c.s.Clone(), nil
}

// Store replaces the stored stream with a copy of s.
func (c *MemoryCell) Store(s stream.Stream) error {
	c.s = s.Clone()
	return nil
}

// Decode validates s and builds its graph.
func Decode(s stream.Stream, cat tech.Catalog) (g *graph.Graph, err error) {
	if err := stream.Validate(s); err != nil {
		return nil, err
	}
	defer errors.Recover(&err)
	return graph.Decode(s, cat), nil
}

// Encode writes g to a stream.
func Encode(g *graph.Graph) (s stream.Stream, err error) {
	defer errors.Recover(&err)
	return graph.Encode(g), nil
}

// Shapes returns every shape of s in stream order.
func Shapes(s stream.Stream, cat tech.Catalog) (shapes []shape.Shape, err error) {
	defer errors.Recover(&err)
	return shape.Collect(s, cat), nil
}

// PathShapes is one path of a wire with the shapes drawn inside it.
type PathShapes struct {
	Path   shape.Path
	Shapes []shape.PathShape
}

// Paths returns the paths of s in stream order.
func Paths(s stream.Stream, cat tech.Catalog) (paths []PathShapes, err error) {
	defer errors.Recover(&err)
	it := shape.NewPathIterator(cat)
	it.Begin(s)
	for {
		p, ok := it.NextPath()
		if !ok {
			return paths, nil
		}
		ps := PathShapes{Path: p}
		for {
			sh, ok := it.NextShape()
			if !ok {
				break
			}
			ps.Shapes = append(ps.Shapes, sh)
		}
		paths = append(paths, ps)
	}
}

// Rewrite loads the wire of c, lets edit change its graph and stores the
// re-encoded result. Nothing is stored when any step fails.
func Rewrite(c Cell, cat tech.Catalog, edit func(*graph.Graph) error) error {
	s, err := c.Load()
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "load wire")
	}
	g, err := Decode(s, cat)
	if err != nil {
		return err
	}
	if err := edit(g); err != nil {
		return err
	}
	out, err := Encode(g)
	if err != nil {
		return err
	}
	return c.Store(out)
}

// CopyTransformed decodes the wire of src, maps it through t and stores the
// result in dst. Placing a child cell's wires into its parent during
// flattening is this operation.
func CopyTransformed(dst, src Cell, cat tech.Catalog, t geom.Transform) error {
	s, err := src.Load()
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "load wire")
	}
	g, err := Decode(s, cat)
	if err != nil {
		return err
	}
	g.Transform(t)
	out, err := Encode(g)
	if err != nil {
		return err
	}
	return dst.Store(out)
}
