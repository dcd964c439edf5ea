// Package shape decodes an opcode stream into drawn primitives.
//
// Iterator yields one Shape per segment, via and rect in stream order.
// PathIterator yields the same shapes grouped by path, together with the
// branch, short and terminal information of each path.
package shape
