// Package stream implements the opcode stream that stores one routed wire.
//
// A stream is two position-aligned arrays: an opcode byte per slot (a
// five-bit instruction code plus three flag bits) and an integer operand per
// slot. Instructions take one to four slots. Branch instructions refer back
// to an earlier point by its slot index, the junction id.
//
// Reading:
//
//	c := stream.NewCursor(s)
//	for in := c.Next(); in.Kind != stream.KindEnd; in = c.Next() {
//		fmt.Println(in)
//	}
//
// Writing:
//
//	w := stream.NewWriter()
//	w.NewPath(layerID, stream.WireRouted, stream.NoRule)
//	w.AddPoint(0, 0)
//	j := w.AddPoint(500, 0)
//	w.NewPathJunction(j, stream.WireRouted, stream.NoRule)
//	w.AddPoint(500, 300)
//	s := w.Stream()
//
// Streams also have a binary form (MarshalBinary, UnmarshalBinary) and a
// line-oriented text form (Format, Parse) used by fixtures and the wiredump
// tool.
package stream
