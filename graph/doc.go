// Package graph converts between opcode streams and an editable wire graph.
//
// A Graph is a forest: every Node has at most one incoming Edge, and an Edge
// is a *Segment, *Via, *TechVia, *Short or *VWire. Nodes and edges live in
// arenas addressed by generation-checked handles, so a handle to a deleted
// node or edge stops resolving instead of aliasing a newer one.
//
// Decode and Encode are inverses up to isomorphism:
//
//	g := graph.Decode(s, cat)
//	g.Transform(geom.Transform{Orient: geom.R90})
//	s = graph.Encode(g)
//
// Both panic with an *errors.Error on a malformed stream or a broken graph;
// use errors.Recover at the boundary where one bad wire must not stop a
// batch.
package graph
