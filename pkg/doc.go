// Package pkg provides the core libraries for flowgraph program graph
// conversion.
//
// # Overview
//
// Flowgraph converts compiler-produced program graphs into the
// representations consumed by graph learning pipelines. The pkg directory
// is organized into focused areas:
//
//  1. [program] - Canonical graph model, wire codec, node-link intermediate
//  2. [transform] - Conversions to node-link JSON, multigraphs, tensors, DOT
//  3. [batch] - Executor abstraction and ordered batch mapping
//  4. [vocab] - Node-text vocabularies for tensor graphs
//  5. [cache] - Conversion artifact caching (file, redis, null backends)
//  6. [render] - SVG/PNG rendering of DOT output
//
// # Architecture
//
// The typical data flow through flowgraph:
//
//	Binary graph file (wire form)
//	         ↓
//	    [program] package (decode + validate)
//	         ↓
//	    [transform] package (invoke tools / compute tensors)
//	         ↓
//	    JSON / DOT / tensor / multigraph output
//
// Subprocess-backed conversions shell out to the graph2json and graph2dot
// tools, one process per graph; tensor graphs are computed in-process.
// Batched conversions run on a [batch.Executor] and always yield results
// in input order.
package pkg
