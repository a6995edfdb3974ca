package wfgraph

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
)

// wireNode is the JSON shape of a WorkflowNode on the wire: a node object
// with `{id, node_type, position_x, position_y, config, label?, disabled}`.
// Unrecognised keys are kept in WorkflowNode.extra so a round-trip through
// ToJSON/FromJSON preserves fields this version of the core does not know
// about.
type wireNode struct {
	ID        string                 `json:"id"`
	NodeType  string                 `json:"node_type"`
	PositionX float64                `json:"position_x"`
	PositionY float64                `json:"position_y"`
	Config    map[string]interface{} `json:"config"`
	Label     string                 `json:"label,omitempty"`
	Disabled  bool                   `json:"disabled"`
}

func (n WorkflowNode) toWire() wireNode {
	return wireNode{
		ID:        n.ID,
		NodeType:  n.NodeType,
		PositionX: n.Position.X,
		PositionY: n.Position.Y,
		Config:    n.Config,
		Label:     n.Label,
		Disabled:  n.Disabled,
	}
}

func (w wireNode) toNode() WorkflowNode {
	return WorkflowNode{
		ID:       w.ID,
		NodeType: w.NodeType,
		Position: Position{X: w.PositionX, Y: w.PositionY},
		Config:   w.Config,
		Label:    w.Label,
		Disabled: w.Disabled,
	}
}

// MarshalJSON implements the graph wire format: flat position_x/position_y,
// snake_case keys, and unknown-field preservation via extra.
func (n WorkflowNode) MarshalJSON() ([]byte, error) {
	base := n.toWire()
	merged := make(map[string]interface{}, len(n.extra)+6)
	for k, v := range n.extra {
		var decoded interface{}
		if err := json.Unmarshal(v, &decoded); err == nil {
			merged[k] = decoded
		}
	}
	merged["id"] = base.ID
	merged["node_type"] = base.NodeType
	merged["position_x"] = base.PositionX
	merged["position_y"] = base.PositionY
	merged["config"] = base.Config
	merged["disabled"] = base.Disabled
	if base.Label != "" {
		merged["label"] = base.Label
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the graph wire format, stashing any field this
// struct does not model in extra so a later MarshalJSON preserves it.
func (n *WorkflowNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = w.toNode()

	known := map[string]bool{
		"id": true, "node_type": true, "position_x": true, "position_y": true,
		"config": true, "label": true, "disabled": true,
	}
	n.extra = make(map[string]json.RawMessage)
	for k, v := range raw {
		if !known[k] {
			n.extra[k] = v
		}
	}
	return nil
}

// wireEdge is the JSON shape of a WorkflowEdge on the wire.
type wireEdge struct {
	ID           string `json:"id"`
	SourceNodeID string `json:"source_node_id"`
	SourcePort   string `json:"source_port"`
	TargetNodeID string `json:"target_node_id"`
	TargetPort   string `json:"target_port"`
	Disabled     bool   `json:"disabled"`
}

func (e WorkflowEdge) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEdge{
		ID: e.ID, SourceNodeID: e.SourceNodeID, SourcePort: e.SourcePort,
		TargetNodeID: e.TargetNodeID, TargetPort: e.TargetPort, Disabled: e.Disabled,
	})
}

func (e *WorkflowEdge) UnmarshalJSON(data []byte) error {
	var w wireEdge
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = WorkflowEdge{
		ID: w.ID, SourceNodeID: w.SourceNodeID, SourcePort: w.SourcePort,
		TargetNodeID: w.TargetNodeID, TargetPort: w.TargetPort, Disabled: w.Disabled,
	}
	return nil
}

// wireGraph is the JSON shape of a WorkflowGraph on the wire. Metadata's
// timestamps use time.Time's default JSON encoding, which gives ISO-8601
// strings in UTC for the UTC times the graph stores.
type wireGraph struct {
	ID        string                 `json:"id"`
	Metadata  Metadata               `json:"metadata"`
	Nodes     []WorkflowNode         `json:"nodes"`
	Edges     []WorkflowEdge         `json:"edges"`
	Variables map[string]interface{} `json:"variables"`
}

// ToJSON serialises the graph to its wire format.
func (g *WorkflowGraph) ToJSON() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	w := wireGraph{
		ID:        g.ID,
		Metadata:  g.Metadata,
		Nodes:     make([]WorkflowNode, 0, len(g.Nodes)),
		Edges:     make([]WorkflowEdge, 0, len(g.Edges)),
		Variables: g.Variables,
	}
	for _, n := range g.Nodes {
		w.Nodes = append(w.Nodes, *n)
	}
	for _, e := range g.Edges {
		w.Edges = append(w.Edges, *e)
	}
	return json.Marshal(w)
}

// FromJSON parses the wire format into a new WorkflowGraph, validating
// every node and edge against registry as it is added. Nodes and edges are
// added in wire order; an invalid node or edge aborts with that error.
func FromJSON(data []byte, registry *noderegistry.Registry) (*WorkflowGraph, error) {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	g := &WorkflowGraph{
		ID:        w.ID,
		Metadata:  w.Metadata,
		Nodes:     make(map[string]*WorkflowNode),
		Edges:     make(map[string]*WorkflowEdge),
		Variables: w.Variables,
		registry:  registry,
	}
	if g.Variables == nil {
		g.Variables = make(map[string]interface{})
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	for _, n := range w.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range w.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}
