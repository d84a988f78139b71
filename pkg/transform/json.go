package transform

import (
	"context"
	"iter"

	"github.com/lkraemer/flowgraph/pkg/batch"
	"github.com/lkraemer/flowgraph/pkg/errors"
	"github.com/lkraemer/flowgraph/pkg/program"
)

// JSON converts one graph to its node-link intermediate by invoking the
// graph2json tool. Malformed tool output is reported as TRANSFORM_FAILED,
// the same kind used for tool failures, so callers see one error surface
// regardless of where the conversion broke.
func (c *Converter) JSON(ctx context.Context, g *program.Graph) (*program.NodeLink, error) {
	out, err := c.run(ctx, c.cfg.Graph2JSON, g)
	if err != nil {
		return nil, err
	}
	nl, err := program.DecodeNodeLink(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransform, err, "graph2json output")
	}
	return nl, nil
}

// JSONAll converts a sequence of graphs to node-link intermediates. Results
// are yielded lazily in input order; see [batch.Map] for the executor and
// chunking semantics.
func (c *Converter) JSONAll(ctx context.Context, graphs iter.Seq[*program.Graph], ex batch.Executor, chunk int) iter.Seq2[*program.NodeLink, error] {
	return batch.Map(func(g *program.Graph) (*program.NodeLink, error) {
		return c.JSON(ctx, g)
	}, graphs, ex, chunk)
}
