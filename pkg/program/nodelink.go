package program

import (
	"encoding/json"

	"github.com/lkraemer/flowgraph/pkg/errors"
)

// NodeLink is the decoded intermediate produced by the graph2json tool: a
// node-link representation with one record per node and one per edge.
// Records keep every attribute the tool emitted, so higher-level
// representations can preserve them verbatim. Both record lists retain the
// tool's ordering.
type NodeLink struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Graph      map[string]any   `json:"graph"`
	Nodes      []map[string]any `json:"nodes"`
	Links      []map[string]any `json:"links"`
}

// DecodeNodeLink parses node-link JSON. Malformed input yields a
// DECODE_FAILED error wrapping the parse diagnostic; a partially populated
// structure is never returned.
func DecodeNodeLink(data []byte) (*NodeLink, error) {
	var nl NodeLink
	if err := json.Unmarshal(data, &nl); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode node-link data")
	}
	return &nl, nil
}

// LinkSource returns the source index of link record i.
func (nl *NodeLink) LinkSource(i int) int { return intAttr(nl.Links[i], "source") }

// LinkTarget returns the target index of link record i.
func (nl *NodeLink) LinkTarget(i int) int { return intAttr(nl.Links[i], "target") }

// LinkFlow returns the flow discriminator of link record i.
func (nl *NodeLink) LinkFlow(i int) Flow { return Flow(intAttr(nl.Links[i], "flow")) }

// LinkPosition returns the position ordinal of link record i.
func (nl *NodeLink) LinkPosition(i int) int { return intAttr(nl.Links[i], "position") }

// intAttr reads a numeric attribute. JSON numbers decode as float64.
func intAttr(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
