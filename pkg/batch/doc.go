// Package batch scales single-graph operations to large collections.
//
// The execution model is a capability interface, not a scheduler: an
// [Executor] accepts tasks via Submit and hands back a [Future]. The package
// ships a worker-pool implementation ([Pool]); callers may plug in anything
// with the same shape, including cluster-backed dispatchers. With a nil
// executor, operations run serially on the consuming goroutine.
//
// [Map] is the single entry point. It returns a lazy, single-pass,
// order-preserving iter.Seq2 of results: inputs are consumed in chunks of a
// caller-chosen size, submitted concurrently within a chunk, and drained in
// submission order regardless of completion order. A failing item surfaces
// its error at that item's position without aborting earlier results.
package batch
