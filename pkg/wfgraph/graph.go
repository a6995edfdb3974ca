package wfgraph

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// Metadata carries a workflow's descriptive fields.
type Metadata struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkflowNode is a single node placed in a graph.
type WorkflowNode struct {
	ID       string                 `json:"id"`
	NodeType string                 `json:"node_type"`
	Position Position               `json:"-"`
	Config   map[string]interface{} `json:"config"`
	Label    string                 `json:"label,omitempty"`
	Disabled bool                   `json:"disabled"`

	// extra holds wire-format fields this version of the core does not
	// model, so a decode-then-encode round-trip preserves them.
	extra map[string]json.RawMessage
}

// Position is the node's canvas placement, serialised as flat
// position_x/position_y fields on the wire.
type Position struct {
	X float64
	Y float64
}

// WorkflowEdge connects an output port of one node to an input port of
// another.
type WorkflowEdge struct {
	ID             string `json:"id"`
	SourceNodeID   string `json:"source_node_id"`
	SourcePort     string `json:"source_port"`
	TargetNodeID   string `json:"target_node_id"`
	TargetPort     string `json:"target_port"`
	Disabled       bool   `json:"disabled"`
}

// WorkflowGraph is an immutable-after-validation DAG of nodes and edges.
// Mutation methods are guarded by a mutex so concurrent readers (the HTTP
// surface, the planner, the engine) observe a consistent snapshot.
type WorkflowGraph struct {
	mu sync.RWMutex

	ID        string
	Metadata  Metadata
	Nodes     map[string]*WorkflowNode
	Edges     map[string]*WorkflowEdge
	Variables map[string]interface{}

	registry *noderegistry.Registry
}

// New creates an empty WorkflowGraph. registry is consulted by AddNode and
// AddEdge to validate node types, config, and port references; pass
// noderegistry.Default to use the process-wide registry.
func New(name string, registry *noderegistry.Registry) *WorkflowGraph {
	now := time.Now().UTC()
	return &WorkflowGraph{
		ID: uuid.NewString(),
		Metadata: Metadata{
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Nodes:     make(map[string]*WorkflowNode),
		Edges:     make(map[string]*WorkflowEdge),
		Variables: make(map[string]interface{}),
		registry:  registry,
	}
}

func (g *WorkflowGraph) touch() {
	g.Metadata.UpdatedAt = time.Now().UTC()
}

// AddNode adds a node to the graph. Fails if a node with the same ID is
// already present, the node type is unregistered, or the node's config
// fails its schema's ConfigSchema validation.
func (g *WorkflowGraph) AddNode(n WorkflowNode) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, exists := g.Nodes[n.ID]; exists {
		return &DuplicateNodeError{NodeID: n.ID}
	}

	schema, _, err := g.registry.GetRequired(n.NodeType)
	if err != nil {
		return err
	}
	if err := schema.ValidateConfig(n.Config); err != nil {
		return err
	}

	node := n
	g.Nodes[node.ID] = &node
	g.touch()
	return nil
}

// RemoveNode removes a node and every edge incident to it. Idempotent.
func (g *WorkflowGraph) RemoveNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.Nodes[id]; !ok {
		return
	}
	delete(g.Nodes, id)
	for eid, e := range g.Edges {
		if e.SourceNodeID == id || e.TargetNodeID == id {
			delete(g.Edges, eid)
		}
	}
	g.touch()
}

// AddEdge validates endpoints exist, that sourcePort/targetPort are
// declared on the respective node types with compatible dataTypes, that
// targetPort is not already bound by another edge, and that adding the
// edge keeps the graph acyclic.
func (g *WorkflowGraph) AddEdge(e WorkflowEdge) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	source, ok := g.Nodes[e.SourceNodeID]
	if !ok {
		return &DanglingEdgeError{EdgeID: e.ID, NodeID: e.SourceNodeID}
	}
	target, ok := g.Nodes[e.TargetNodeID]
	if !ok {
		return &DanglingEdgeError{EdgeID: e.ID, NodeID: e.TargetNodeID}
	}

	sourceSchema, _, err := g.registry.GetRequired(source.NodeType)
	if err != nil {
		return err
	}
	targetSchema, _, err := g.registry.GetRequired(target.NodeType)
	if err != nil {
		return err
	}

	outPort, ok := sourceSchema.OutputPort(e.SourcePort)
	if !ok {
		return &UnknownPortError{NodeID: e.SourceNodeID, Port: e.SourcePort}
	}
	inPort, ok := targetSchema.InputPort(e.TargetPort)
	if !ok {
		return &UnknownPortError{NodeID: e.TargetNodeID, Port: e.TargetPort}
	}
	if !portschema.Compatible(outPort.DataType, inPort.DataType) {
		return &IncompatiblePortTypesError{
			SourceNodeID: e.SourceNodeID, SourcePort: e.SourcePort, SourceType: outPort.DataType,
			TargetNodeID: e.TargetNodeID, TargetPort: e.TargetPort, TargetType: inPort.DataType,
		}
	}

	for _, existing := range g.Edges {
		if existing.TargetNodeID == e.TargetNodeID && existing.TargetPort == e.TargetPort {
			return &DuplicateTargetPortError{NodeID: e.TargetNodeID, Port: e.TargetPort}
		}
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	if g.wouldCreateCycleLocked(e.SourceNodeID, e.TargetNodeID) {
		return &CycleError{}
	}

	edge := e
	g.Edges[edge.ID] = &edge
	g.touch()
	return nil
}

// RemoveEdge removes an edge by ID. Idempotent.
func (g *WorkflowGraph) RemoveEdge(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.Edges[id]; !ok {
		return
	}
	delete(g.Edges, id)
	g.touch()
}

// IncomingEdges returns every edge whose target is nodeID, disabled edges
// included.
func (g *WorkflowGraph) IncomingEdges(nodeID string) []*WorkflowEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*WorkflowEdge
	for _, e := range g.Edges {
		if e.TargetNodeID == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// OutgoingEdges returns every edge whose source is nodeID.
func (g *WorkflowGraph) OutgoingEdges(nodeID string) []*WorkflowEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []*WorkflowEdge
	for _, e := range g.Edges {
		if e.SourceNodeID == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// wouldCreateCycleLocked reports whether adding an edge from→to would
// create a cycle, given the edges already present. Caller holds g.mu.
func (g *WorkflowGraph) wouldCreateCycleLocked(from, to string) bool {
	// A new edge from→to creates a cycle iff `from` is already reachable
	// from `to` via existing edges.
	visited := make(map[string]bool)
	var dfs func(n string) bool
	dfs = func(n string) bool {
		if n == from {
			return true
		}
		if visited[n] {
			return false
		}
		visited[n] = true
		for _, e := range g.Edges {
			if e.SourceNodeID == n && dfs(e.TargetNodeID) {
				return true
			}
		}
		return false
	}
	return dfs(to)
}

// Registry returns the node registry this graph validates against.
func (g *WorkflowGraph) Registry() *noderegistry.Registry {
	return g.registry
}
