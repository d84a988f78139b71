package transform

import (
	"context"
	"iter"

	"github.com/lkraemer/flowgraph/pkg/batch"
	"github.com/lkraemer/flowgraph/pkg/program"
)

// DOT converts one graph to DOT graph description text by invoking the
// graph2dot tool. The tool's output is returned verbatim; there is no round
// trip back to the canonical graph.
func (c *Converter) DOT(ctx context.Context, g *program.Graph) (string, error) {
	out, err := c.run(ctx, c.cfg.Graph2DOT, g)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DOTAll converts a sequence of graphs to DOT text. Results are yielded
// lazily in input order; see [batch.Map] for the executor and chunking
// semantics.
func (c *Converter) DOTAll(ctx context.Context, graphs iter.Seq[*program.Graph], ex batch.Executor, chunk int) iter.Seq2[string, error] {
	return batch.Map(func(g *program.Graph) (string, error) {
		return c.DOT(ctx, g)
	}, graphs, ex, chunk)
}
