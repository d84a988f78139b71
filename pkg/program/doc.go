// Package program defines the canonical program graph model used throughout
// flowgraph: an ordered node list and an ordered edge list, where every edge
// carries a flow type (control, data, call or type) and a position ordinal.
//
// The package also owns the two serialization boundaries of the pipeline:
//
//   - the binary wire form written to external transform tools (see
//     [Graph.MarshalWire] and [UnmarshalWire]), and
//   - the node-link intermediate produced by the graph2json tool (see
//     [NodeLink] and [DecodeNodeLink]).
//
// Graphs are plain values. The conversion pipeline treats them as read-only,
// so a single Graph may be shared safely across concurrent conversions.
package program
