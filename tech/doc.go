// Package tech describes the read-only catalog the wire codec resolves ids
// against: routing layers, block and technology vias, non-default width
// rules, and the instance and block terminals a wire can attach to.
//
// The codec never mutates a catalog, so one Catalog may be shared by any
// number of goroutines decoding different wires.
package tech
