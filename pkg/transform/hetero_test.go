package transform

import (
	"reflect"
	"testing"

	"github.com/lkraemer/flowgraph/pkg/program"
	"github.com/lkraemer/flowgraph/pkg/vocab"
)

func TestHeteroPartitionsByFlow(t *testing.T) {
	g := &program.Graph{
		Nodes: []program.Node{{Text: "a"}, {Text: "b"}, {Text: "c"}},
		Edges: []program.Edge{
			{Flow: program.FlowControl, Source: 0, Target: 1},
			{Flow: program.FlowData, Position: 1, Source: 1, Target: 2},
			{Flow: program.FlowControl, Source: 1, Target: 2},
			{Flow: program.FlowCall, Source: 2, Target: 0},
		},
	}

	h := Hetero(g, nil)

	control := h.Relation(program.FlowControl)
	if !reflect.DeepEqual(control.Src, []int64{0, 1}) ||
		!reflect.DeepEqual(control.Dst, []int64{1, 2}) {
		t.Errorf("control relation = %+v, want edges (0,1) and (1,2)", control)
	}

	data := h.Relation(program.FlowData)
	if data.Len() != 1 || data.Src[0] != 1 || data.Dst[0] != 2 || data.Pos[0] != 1 {
		t.Errorf("data relation = %+v, want single edge (1,2) pos 1", data)
	}

	if got := h.Relation(program.FlowCall).Len(); got != 1 {
		t.Errorf("call relation has %d edges, want 1", got)
	}

	total := 0
	for f := range program.NumFlows {
		total += h.Relations[f].Len()
	}
	if total != g.EdgeCount() {
		t.Errorf("relations hold %d edges, want %d", total, g.EdgeCount())
	}
}

func TestHeteroEmptyRelationsAreWellShaped(t *testing.T) {
	h := Hetero(&program.Graph{Nodes: []program.Node{{Text: "a"}}}, nil)

	for f := range program.NumFlows {
		r := h.Relation(program.Flow(f))
		if r.Src == nil || r.Dst == nil || r.Pos == nil {
			t.Errorf("relation %v has nil arrays", program.Flow(f))
		}
		if r.Len() != 0 {
			t.Errorf("relation %v has %d edges, want 0", program.Flow(f), r.Len())
		}
	}
}

func TestHeteroParallelEdges(t *testing.T) {
	g := &program.Graph{
		Nodes: []program.Node{{Text: "a"}, {Text: "b"}},
		Edges: []program.Edge{
			{Flow: program.FlowData, Source: 0, Target: 1},
			{Flow: program.FlowData, Position: 1, Source: 0, Target: 1},
		},
	}

	h := Hetero(g, nil)
	data := h.Relation(program.FlowData)
	if data.Len() != 2 {
		t.Fatalf("data relation has %d edges, want 2 parallel edges", data.Len())
	}
	if data.Pos[0] != 0 || data.Pos[1] != 1 {
		t.Errorf("positions = %v, want [0 1]", data.Pos)
	}
}

func TestHeteroTextFeatures(t *testing.T) {
	g := &program.Graph{
		Nodes: []program.Node{
			{Text: "add", FullText: []string{"%3 = add i32 %1, %2"}},
			{Text: "%1"},
			{Text: "br", FullText: []string{""}},
		},
	}

	h := Hetero(g, nil)

	if want := []string{"add", "%1", "br"}; !reflect.DeepEqual(h.Text, want) {
		t.Errorf("Text = %v, want %v", h.Text, want)
	}
	// The empty-string full_text value on the third node is carried, not
	// replaced by the primary text.
	if want := []string{"%3 = add i32 %1, %2", "%1", ""}; !reflect.DeepEqual(h.FullText, want) {
		t.Errorf("FullText = %v, want %v", h.FullText, want)
	}
	if h.VocabIDs != nil {
		t.Errorf("VocabIDs = %v, want nil without a vocabulary", h.VocabIDs)
	}
}

func TestHeteroVocabIDs(t *testing.T) {
	v := vocab.Vocabulary{"a": 0, "b": 1}
	g := &program.Graph{
		Nodes: []program.Node{{Text: "a"}, {Text: "c"}, {Text: "b"}},
	}

	h := Hetero(g, v)
	if want := []int64{0, 2, 1}; !reflect.DeepEqual(h.VocabIDs, want) {
		t.Errorf("VocabIDs = %v, want %v (out-of-vocabulary maps to %d)", h.VocabIDs, want, v.Sentinel())
	}
}

func TestHeteroEmptyGraph(t *testing.T) {
	h := Hetero(&program.Graph{}, vocab.Vocabulary{})

	if len(h.Text) != 0 || len(h.FullText) != 0 {
		t.Errorf("got %d texts / %d full texts, want 0 / 0", len(h.Text), len(h.FullText))
	}
	if h.VocabIDs == nil || len(h.VocabIDs) != 0 {
		t.Errorf("VocabIDs = %v, want empty non-nil with a vocabulary", h.VocabIDs)
	}
}
