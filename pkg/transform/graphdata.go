package transform

import (
	"context"
	"iter"

	"github.com/lkraemer/flowgraph/pkg/batch"
	"github.com/lkraemer/flowgraph/pkg/program"
)

// GraphData is the graph object handed to deep-learning data loaders. It
// wraps the generic multigraph one-to-one and adds no structure of its own.
type GraphData struct {
	Graph *Multigraph
}

// NewGraphData wraps a multigraph as a GraphData object.
func NewGraphData(m *Multigraph) *GraphData {
	return &GraphData{Graph: m}
}

// GraphData converts one graph to a deep-learning graph object.
func (c *Converter) GraphData(ctx context.Context, g *program.Graph) (*GraphData, error) {
	m, err := c.Multigraph(ctx, g)
	if err != nil {
		return nil, err
	}
	return NewGraphData(m), nil
}

// GraphDataAll converts a sequence of graphs to deep-learning graph
// objects. Results are yielded lazily in input order; see [batch.Map] for
// the executor and chunking semantics.
func (c *Converter) GraphDataAll(ctx context.Context, graphs iter.Seq[*program.Graph], ex batch.Executor, chunk int) iter.Seq2[*GraphData, error] {
	return batch.Map(func(g *program.Graph) (*GraphData, error) {
		return c.GraphData(ctx, g)
	}, graphs, ex, chunk)
}
