package program

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Binary wire form exchanged with external transform tools. The format is
// protobuf wire encoding with the following field numbers:
//
//	Graph: 1 = node (message, repeated), 2 = edge (message, repeated)
//	Node:  1 = type (varint), 2 = text (bytes), 3 = full_text (bytes, repeated)
//	Edge:  1 = flow (varint), 2 = position (varint), 3 = source (varint),
//	       4 = target (varint)
//
// Unknown fields are skipped on decode so tools may extend the schema.
const (
	fieldGraphNode = 1
	fieldGraphEdge = 2

	fieldNodeType     = 1
	fieldNodeText     = 2
	fieldNodeFullText = 3

	fieldEdgeFlow     = 1
	fieldEdgePosition = 2
	fieldEdgeSource   = 3
	fieldEdgeTarget   = 4
)

// MarshalWire encodes the graph to its binary wire form.
func (g *Graph) MarshalWire() []byte {
	var b []byte
	for _, n := range g.Nodes {
		b = protowire.AppendTag(b, fieldGraphNode, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalNode(n))
	}
	for _, e := range g.Edges {
		b = protowire.AppendTag(b, fieldGraphEdge, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalEdge(e))
	}
	return b
}

func marshalNode(n Node) []byte {
	var b []byte
	if n.Type != 0 {
		b = protowire.AppendTag(b, fieldNodeType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n.Type))
	}
	if n.Text != "" {
		b = protowire.AppendTag(b, fieldNodeText, protowire.BytesType)
		b = protowire.AppendString(b, n.Text)
	}
	for _, ft := range n.FullText {
		b = protowire.AppendTag(b, fieldNodeFullText, protowire.BytesType)
		b = protowire.AppendString(b, ft)
	}
	return b
}

func marshalEdge(e Edge) []byte {
	var b []byte
	if e.Flow != 0 {
		b = protowire.AppendTag(b, fieldEdgeFlow, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Flow))
	}
	if e.Position != 0 {
		b = protowire.AppendTag(b, fieldEdgePosition, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Position))
	}
	if e.Source != 0 {
		b = protowire.AppendTag(b, fieldEdgeSource, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Source))
	}
	if e.Target != 0 {
		b = protowire.AppendTag(b, fieldEdgeTarget, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Target))
	}
	return b
}

// UnmarshalWire decodes a graph from its binary wire form.
func UnmarshalWire(data []byte) (*Graph, error) {
	g := &Graph{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("graph: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldGraphNode && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("graph node: %w", protowire.ParseError(n))
			}
			data = data[n:]
			node, err := unmarshalNode(msg)
			if err != nil {
				return nil, err
			}
			g.Nodes = append(g.Nodes, node)
		case num == fieldGraphEdge && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("graph edge: %w", protowire.ParseError(n))
			}
			data = data[n:]
			edge, err := unmarshalEdge(msg)
			if err != nil {
				return nil, err
			}
			g.Edges = append(g.Edges, edge)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("graph field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return g, nil
}

func unmarshalNode(data []byte) (Node, error) {
	var node Node
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Node{}, fmt.Errorf("node: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldNodeType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return Node{}, fmt.Errorf("node type: %w", protowire.ParseError(n))
			}
			data = data[n:]
			node.Type = NodeType(v)
		case num == fieldNodeText && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return Node{}, fmt.Errorf("node text: %w", protowire.ParseError(n))
			}
			data = data[n:]
			node.Text = s
		case num == fieldNodeFullText && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return Node{}, fmt.Errorf("node full_text: %w", protowire.ParseError(n))
			}
			data = data[n:]
			node.FullText = append(node.FullText, s)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Node{}, fmt.Errorf("node field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return node, nil
}

func unmarshalEdge(data []byte) (Edge, error) {
	var edge Edge
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Edge{}, fmt.Errorf("edge: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Edge{}, fmt.Errorf("edge field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return Edge{}, fmt.Errorf("edge field %d: %w", num, protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldEdgeFlow:
			edge.Flow = Flow(v)
		case fieldEdgePosition:
			edge.Position = int32(v)
		case fieldEdgeSource:
			edge.Source = int32(v)
		case fieldEdgeTarget:
			edge.Target = int32(v)
		}
	}
	return edge, nil
}
