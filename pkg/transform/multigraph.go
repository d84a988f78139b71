package transform

import (
	"context"
	"encoding/json"
	"iter"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/lkraemer/flowgraph/pkg/batch"
	"github.com/lkraemer/flowgraph/pkg/errors"
	"github.com/lkraemer/flowgraph/pkg/program"
)

// MultiNode is a multigraph vertex carrying the node-link record's
// attributes verbatim.
type MultiNode struct {
	id    int64
	Attrs map[string]any
}

// ID implements gonum's graph.Node.
func (n *MultiNode) ID() int64 { return n.id }

// Text returns the node's "text" attribute, or "" when absent.
func (n *MultiNode) Text() string {
	if s, ok := n.Attrs["text"].(string); ok {
		return s
	}
	return ""
}

// MultiLine is one directed edge of the multigraph. Parallel edges between
// the same node pair are distinct MultiLines with distinct IDs.
type MultiLine struct {
	id       int64
	from, to gonumgraph.Node
	Attrs    map[string]any
}

// From implements gonum's graph.Line.
func (l *MultiLine) From() gonumgraph.Node { return l.from }

// To implements gonum's graph.Line.
func (l *MultiLine) To() gonumgraph.Node { return l.to }

// ID implements gonum's graph.Line.
func (l *MultiLine) ID() int64 { return l.id }

// ReversedLine implements gonum's graph.Line.
func (l *MultiLine) ReversedLine() gonumgraph.Line {
	return &MultiLine{id: l.id, from: l.to, to: l.from, Attrs: l.Attrs}
}

// Flow returns the line's flow discriminator attribute.
func (l *MultiLine) Flow() program.Flow {
	switch v := l.Attrs["flow"].(type) {
	case float64:
		return program.Flow(v)
	case int:
		return program.Flow(v)
	default:
		return 0
	}
}

// Multigraph is a generic directed multigraph built from the node-link
// intermediate. The gonum structure is available for graph algorithms via
// [Multigraph.Directed]; the Nodes and Lines slices retain the node-link
// record orderings, which gonum's set-based iteration does not.
type Multigraph struct {
	g     *multi.DirectedGraph
	nodes []*MultiNode
	lines []*MultiLine
}

// Directed returns the underlying gonum multigraph.
func (m *Multigraph) Directed() *multi.DirectedGraph { return m.g }

// Nodes returns the vertices in node-link record order.
func (m *Multigraph) Nodes() []*MultiNode { return m.nodes }

// Lines returns the edges in node-link record order, parallel edges
// included.
func (m *Multigraph) Lines() []*MultiLine { return m.lines }

// NodeCount returns the number of vertices.
func (m *Multigraph) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the number of edges, counting parallel edges
// separately.
func (m *Multigraph) EdgeCount() int { return len(m.lines) }

// MarshalJSON encodes the ordered node and line views. Record order matches
// [Multigraph.Nodes] and [Multigraph.Lines]; attributes are carried
// verbatim.
func (m *Multigraph) MarshalJSON() ([]byte, error) {
	type node struct {
		ID    int64          `json:"id"`
		Attrs map[string]any `json:"attrs,omitempty"`
	}
	type line struct {
		ID     int64          `json:"id"`
		Source int64          `json:"source"`
		Target int64          `json:"target"`
		Attrs  map[string]any `json:"attrs,omitempty"`
	}

	out := struct {
		Directed   bool   `json:"directed"`
		Multigraph bool   `json:"multigraph"`
		Nodes      []node `json:"nodes"`
		Links      []line `json:"links"`
	}{
		Directed:   true,
		Multigraph: true,
		Nodes:      make([]node, 0, len(m.nodes)),
		Links:      make([]line, 0, len(m.lines)),
	}
	for _, n := range m.nodes {
		out.Nodes = append(out.Nodes, node{ID: n.ID(), Attrs: n.Attrs})
	}
	for _, l := range m.lines {
		out.Links = append(out.Links, line{
			ID:     l.ID(),
			Source: l.From().ID(),
			Target: l.To().ID(),
			Attrs:  l.Attrs,
		})
	}
	return json.Marshal(out)
}

// NewMultigraph builds a directed multigraph from a node-link intermediate,
// preserving every node and link attribute unchanged and the multiplicity
// and ordering of the link list.
func NewMultigraph(nl *program.NodeLink) (*Multigraph, error) {
	m := &Multigraph{
		g:     multi.NewDirectedGraph(),
		nodes: make([]*MultiNode, 0, len(nl.Nodes)),
		lines: make([]*MultiLine, 0, len(nl.Links)),
	}

	byID := make(map[int]*MultiNode, len(nl.Nodes))
	for i, attrs := range nl.Nodes {
		id := i
		if v, ok := attrs["id"].(float64); ok {
			id = int(v)
		}
		if _, dup := byID[id]; dup {
			return nil, errors.New(errors.ErrCodeDecode, "duplicate node id %d", id)
		}
		n := &MultiNode{id: int64(id), Attrs: attrs}
		m.g.AddNode(n)
		m.nodes = append(m.nodes, n)
		byID[id] = n
	}

	for i, attrs := range nl.Links {
		from, ok := byID[nl.LinkSource(i)]
		if !ok {
			return nil, errors.New(errors.ErrCodeDecode, "link %d: unknown source %d", i, nl.LinkSource(i))
		}
		to, ok := byID[nl.LinkTarget(i)]
		if !ok {
			return nil, errors.New(errors.ErrCodeDecode, "link %d: unknown target %d", i, nl.LinkTarget(i))
		}
		l := &MultiLine{id: int64(i), from: from, to: to, Attrs: attrs}
		m.g.SetLine(l)
		m.lines = append(m.lines, l)
	}

	return m, nil
}

// Multigraph converts one graph to a generic directed multigraph by way of
// the node-link intermediate.
func (c *Converter) Multigraph(ctx context.Context, g *program.Graph) (*Multigraph, error) {
	nl, err := c.JSON(ctx, g)
	if err != nil {
		return nil, err
	}
	return NewMultigraph(nl)
}

// MultigraphAll converts a sequence of graphs to multigraphs. Results are
// yielded lazily in input order; see [batch.Map] for the executor and
// chunking semantics.
func (c *Converter) MultigraphAll(ctx context.Context, graphs iter.Seq[*program.Graph], ex batch.Executor, chunk int) iter.Seq2[*Multigraph, error] {
	return batch.Map(func(g *program.Graph) (*Multigraph, error) {
		return c.Multigraph(ctx, g)
	}, graphs, ex, chunk)
}
