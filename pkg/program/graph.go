package program

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node index outside the node list.
	ErrInvalidEdgeEndpoint = errors.New("edge endpoint out of range")

	// ErrUnknownFlow is returned by [Graph.Validate] when an edge carries a
	// flow value outside the four defined flow types.
	ErrUnknownFlow = errors.New("unknown edge flow")
)

// Flow classifies an edge as a control, data, call or type relation.
type Flow int32

// The four edge relations of a program graph. The numeric values are part of
// the wire format and must not be reordered.
const (
	FlowControl Flow = iota
	FlowData
	FlowCall
	FlowType

	// NumFlows is the number of distinct flow types. Per-flow accumulators
	// are indexed by Flow in [0, NumFlows).
	NumFlows = 4
)

// String returns the lowercase relation name, e.g. "control".
func (f Flow) String() string {
	switch f {
	case FlowControl:
		return "control"
	case FlowData:
		return "data"
	case FlowCall:
		return "call"
	case FlowType:
		return "type"
	default:
		return fmt.Sprintf("flow(%d)", int32(f))
	}
}

// NodeType distinguishes the kind of program construct a node stands for.
type NodeType int32

const (
	NodeInstruction NodeType = iota
	NodeVariable
	NodeConstant
	NodeTypeDecl
)

// Node is one vertex of a program graph. Text is the primary label (e.g. an
// instruction opcode). FullText optionally carries the unabridged source
// text; only the first value is consumed by downstream representations.
type Node struct {
	Type     NodeType
	Text     string
	FullText []string
}

// EffectiveFullText returns the first full_text value when the feature
// carries any values, otherwise the primary text. An empty-string first
// value counts as present and is returned as-is.
func (n Node) EffectiveFullText() string {
	if len(n.FullText) > 0 {
		return n.FullText[0]
	}
	return n.Text
}

// Edge is one directed edge of a program graph. Source and Target are dense
// zero-based indices into the owning graph's node list. Position orders
// edges within their source, e.g. call argument order.
type Edge struct {
	Flow     Flow
	Position int32
	Source   int32
	Target   int32
}

// Graph is the canonical program graph: an ordered node sequence and an
// ordered edge sequence. Node and edge order is significant and preserved by
// every conversion.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Validate checks the structural invariants: every edge endpoint must index
// an existing node, and every flow must be one of the four defined types.
func (g *Graph) Validate() error {
	n := int32(len(g.Nodes))
	for i, e := range g.Edges {
		if e.Source < 0 || e.Source >= n {
			return fmt.Errorf("edge %d: source %d: %w", i, e.Source, ErrInvalidEdgeEndpoint)
		}
		if e.Target < 0 || e.Target >= n {
			return fmt.Errorf("edge %d: target %d: %w", i, e.Target, ErrInvalidEdgeEndpoint)
		}
		if e.Flow < 0 || e.Flow >= NumFlows {
			return fmt.Errorf("edge %d: flow %d: %w", i, e.Flow, ErrUnknownFlow)
		}
	}
	return nil
}
