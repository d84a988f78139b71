package transform

import (
	"iter"

	"github.com/lkraemer/flowgraph/pkg/batch"
	"github.com/lkraemer/flowgraph/pkg/program"
	"github.com/lkraemer/flowgraph/pkg/vocab"
)

// Relation is one typed edge set of a [HeteroGraph]: parallel source and
// target index arrays plus the matching position array. The three slices
// always have equal length and are non-nil even when the relation is empty,
// so consumers may index all four relations unconditionally.
type Relation struct {
	Src []int64
	Dst []int64
	Pos []int64
}

// Len returns the number of edges in the relation.
func (r Relation) Len() int { return len(r.Src) }

// HeteroGraph is the heterogeneous tensor representation: one shared node
// set and four directed edge relations, one per flow type. Edges keep their
// source-scan order within each relation; parallel edges are preserved as
// separate entries.
type HeteroGraph struct {
	// Text holds each node's primary text, indexed by node.
	Text []string

	// FullText holds each node's full-text attribute: the first value of
	// the node's full_text feature when the feature carries any values,
	// otherwise the primary text.
	FullText []string

	// VocabIDs holds one vocabulary id per node, with out-of-vocabulary
	// texts mapped to the vocabulary's sentinel. Nil when no vocabulary
	// was supplied.
	VocabIDs []int64

	// Relations is indexed by [program.Flow].
	Relations [program.NumFlows]Relation
}

// Relation returns the edge set for the given flow type.
func (h *HeteroGraph) Relation(f program.Flow) Relation {
	return h.Relations[f]
}

// Hetero converts a canonical graph to its heterogeneous tensor
// representation. The conversion is pure and in-process: it scans edges
// once to partition them by flow type and nodes once to collect text
// features. A nil vocabulary leaves VocabIDs unset.
func Hetero(g *program.Graph, v vocab.Vocabulary) *HeteroGraph {
	h := &HeteroGraph{
		Text:     make([]string, 0, len(g.Nodes)),
		FullText: make([]string, 0, len(g.Nodes)),
	}
	for f := range h.Relations {
		h.Relations[f] = Relation{Src: []int64{}, Dst: []int64{}, Pos: []int64{}}
	}

	for _, e := range g.Edges {
		r := &h.Relations[e.Flow]
		r.Src = append(r.Src, int64(e.Source))
		r.Dst = append(r.Dst, int64(e.Target))
		r.Pos = append(r.Pos, int64(e.Position))
	}

	for _, n := range g.Nodes {
		h.Text = append(h.Text, n.Text)
		h.FullText = append(h.FullText, n.EffectiveFullText())
	}

	if v != nil {
		h.VocabIDs = make([]int64, 0, len(g.Nodes))
		for _, n := range g.Nodes {
			h.VocabIDs = append(h.VocabIDs, v.ID(n.Text))
		}
	}

	return h
}

// HeteroAll converts a sequence of graphs to heterogeneous tensor graphs.
// Results are yielded lazily in input order; see [batch.Map] for the
// executor and chunking semantics.
func HeteroAll(graphs iter.Seq[*program.Graph], v vocab.Vocabulary, ex batch.Executor, chunk int) iter.Seq2[*HeteroGraph, error] {
	return batch.Map(func(g *program.Graph) (*HeteroGraph, error) {
		return Hetero(g, v), nil
	}, graphs, ex, chunk)
}
