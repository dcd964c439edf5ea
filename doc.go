// Package wirecodec encodes and decodes the routed geometry of one net.
//
// A wire is stored as an opcode stream: parallel arrays of opcode bytes and
// integer operands where a slot index doubles as the junction id that later
// branches refer back to. This module reads and writes that format.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wirecodec/           Root package with the checked facade and storage cells
//	├── stream/          Opcode stream, instruction cursor, writer, binary and text forms
//	├── shape/           Linear shape decoder and per-path decoder
//	├── graph/           Editable wire graph with Decode and Encode
//	├── tech/            Layer, via, rule and terminal catalog
//	├── geom/            Points, rectangles and orthogonal transforms
//	├── errors/          Structured error types for debugging
//	└── cmd/wiredump/    Command-line dumper and interactive browser
//
// # Quick Start
//
// Decode a wire into a graph, edit it and write it back:
//
//	cat, err := tech.LoadFile("tech.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g, err := wirecodec.Decode(s, cat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g.Transform(geom.Transform{Orient: geom.MX, Offset: geom.Pt(1000, 0)})
//
//	s, err = wirecodec.Encode(g)
//
// Read the drawn shapes without building a graph:
//
//	shapes, err := wirecodec.Shapes(s, cat)
//
// # Error Model
//
// The decoders treat a malformed stream as a corrupted database and panic
// with an *errors.Error. The functions of this package recover such panics
// and return them, so that one bad wire does not stop a batch.
//
// # Thread Safety
//
// Decoding and encoding touch only the stream or graph passed in and read
// the catalog. Different wires may be processed concurrently against one
// catalog; a single Graph must not be shared between goroutines.
package wirecodec
