// Package transform converts canonical program graphs into the
// representations consumed by graph-learning models.
//
// Conversions that need an external transform tool (node-link JSON, DOT and
// everything derived from them) go through a [Converter], which owns the
// subprocess contract: wire-encoded graph on stdin, result on stdout,
// diagnostics on stderr, a per-invocation timeout, and non-zero exit codes
// reported as TRANSFORM_FAILED errors. The heterogeneous tensor
// representation is computed in-process from the graph itself; see [Hetero].
//
// Every conversion has a single-graph form and a batched *All form. The
// batched forms run through [batch.Map] and inherit its ordering, chunking
// and error-surfacing guarantees.
package transform
