package transform

import (
	"encoding/json"
	"testing"

	"github.com/lkraemer/flowgraph/pkg/errors"
	"github.com/lkraemer/flowgraph/pkg/program"
)

func nodeLink(nodes, links []map[string]any) *program.NodeLink {
	return &program.NodeLink{
		Directed:   true,
		Multigraph: true,
		Graph:      map[string]any{},
		Nodes:      nodes,
		Links:      links,
	}
}

func TestNewMultigraph(t *testing.T) {
	nl := nodeLink(
		[]map[string]any{
			{"id": 0.0, "text": "alloca", "type": 0.0},
			{"id": 1.0, "text": "%a", "type": 1.0},
		},
		[]map[string]any{
			{"source": 0.0, "target": 1.0, "flow": 1.0, "position": 0.0},
		},
	)

	m, err := NewMultigraph(nl)
	if err != nil {
		t.Fatalf("NewMultigraph() error = %v", err)
	}

	if m.NodeCount() != 2 || m.EdgeCount() != 1 {
		t.Fatalf("got %d nodes / %d edges, want 2 / 1", m.NodeCount(), m.EdgeCount())
	}

	if got := m.Nodes()[0].Text(); got != "alloca" {
		t.Errorf("node 0 text = %q, want alloca", got)
	}

	l := m.Lines()[0]
	if l.From().ID() != 0 || l.To().ID() != 1 {
		t.Errorf("line endpoints = (%d,%d), want (0,1)", l.From().ID(), l.To().ID())
	}
	if got := l.Flow(); got != program.FlowData {
		t.Errorf("line flow = %v, want %v", got, program.FlowData)
	}

	// The gonum view agrees with the ordered view.
	if got := m.Directed().Nodes().Len(); got != 2 {
		t.Errorf("gonum node count = %d, want 2", got)
	}
}

func TestNewMultigraphParallelEdgesAndSelfLoops(t *testing.T) {
	nl := nodeLink(
		[]map[string]any{
			{"id": 0.0, "text": "a"},
			{"id": 1.0, "text": "b"},
		},
		[]map[string]any{
			{"source": 0.0, "target": 1.0, "flow": 0.0},
			{"source": 0.0, "target": 1.0, "flow": 1.0},
			{"source": 1.0, "target": 1.0, "flow": 1.0},
		},
	)

	m, err := NewMultigraph(nl)
	if err != nil {
		t.Fatalf("NewMultigraph() error = %v", err)
	}
	if m.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want 3 (parallel edges and self loop kept)", m.EdgeCount())
	}

	// Order and attributes of the link list are preserved.
	flows := []program.Flow{program.FlowControl, program.FlowData, program.FlowData}
	for i, l := range m.Lines() {
		if l.Flow() != flows[i] {
			t.Errorf("line %d flow = %v, want %v", i, l.Flow(), flows[i])
		}
	}
}

func TestNewMultigraphAttributePreservation(t *testing.T) {
	nl := nodeLink(
		[]map[string]any{
			{"id": 0.0, "text": "store", "features": map[string]any{"full_text": []any{"store i32 0"}}},
		},
		nil,
	)

	m, err := NewMultigraph(nl)
	if err != nil {
		t.Fatalf("NewMultigraph() error = %v", err)
	}

	attrs := m.Nodes()[0].Attrs
	feats, ok := attrs["features"].(map[string]any)
	if !ok {
		t.Fatalf("features attribute dropped: %+v", attrs)
	}
	if _, ok := feats["full_text"]; !ok {
		t.Errorf("full_text feature dropped: %+v", feats)
	}
}

func TestNewMultigraphErrors(t *testing.T) {
	tests := []struct {
		name string
		nl   *program.NodeLink
	}{
		{
			name: "duplicate node id",
			nl: nodeLink(
				[]map[string]any{{"id": 0.0}, {"id": 0.0}},
				nil,
			),
		},
		{
			name: "unknown link source",
			nl: nodeLink(
				[]map[string]any{{"id": 0.0}},
				[]map[string]any{{"source": 5.0, "target": 0.0}},
			),
		},
		{
			name: "unknown link target",
			nl: nodeLink(
				[]map[string]any{{"id": 0.0}},
				[]map[string]any{{"source": 0.0, "target": 5.0}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMultigraph(tt.nl)
			if err == nil {
				t.Fatal("NewMultigraph() = nil error, want error")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeDecode {
				t.Errorf("error code = %v, want %v", code, errors.ErrCodeDecode)
			}
		})
	}
}

func TestMultigraphMarshalJSON(t *testing.T) {
	nl := nodeLink(
		[]map[string]any{
			{"id": 0.0, "text": "alloca"},
			{"id": 1.0, "text": "%a"},
		},
		[]map[string]any{
			{"source": 0.0, "target": 1.0, "flow": 0.0},
			{"source": 0.0, "target": 1.0, "flow": 1.0},
		},
	)

	m, err := NewMultigraph(nl)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out struct {
		Directed   bool `json:"directed"`
		Multigraph bool `json:"multigraph"`
		Nodes      []struct {
			ID    int64          `json:"id"`
			Attrs map[string]any `json:"attrs"`
		} `json:"nodes"`
		Links []struct {
			ID     int64          `json:"id"`
			Source int64          `json:"source"`
			Target int64          `json:"target"`
			Attrs  map[string]any `json:"attrs"`
		} `json:"links"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !out.Directed || !out.Multigraph {
		t.Errorf("directed = %v, multigraph = %v, want both true", out.Directed, out.Multigraph)
	}
	if len(out.Nodes) != 2 || len(out.Links) != 2 {
		t.Fatalf("got %d nodes / %d links, want 2 / 2", len(out.Nodes), len(out.Links))
	}
	if out.Nodes[0].Attrs["text"] != "alloca" {
		t.Errorf("node 0 attrs = %+v, want text alloca", out.Nodes[0].Attrs)
	}
	for i, l := range out.Links {
		if l.ID != int64(i) || l.Source != 0 || l.Target != 1 {
			t.Errorf("link %d = %+v, want id %d from 0 to 1", i, l, i)
		}
	}
	if out.Links[0].Attrs["flow"] != 0.0 || out.Links[1].Attrs["flow"] != 1.0 {
		t.Error("parallel link attrs lost their order")
	}
}

func TestGraphDataWrapsMultigraph(t *testing.T) {
	nl := nodeLink([]map[string]any{{"id": 0.0, "text": "ret"}}, nil)
	m, err := NewMultigraph(nl)
	if err != nil {
		t.Fatal(err)
	}

	gd := NewGraphData(m)
	if gd.Graph != m {
		t.Error("GraphData does not wrap the multigraph it was built from")
	}
	if gd.Graph.NodeCount() != 1 {
		t.Errorf("wrapped node count = %d, want 1", gd.Graph.NodeCount())
	}
}
