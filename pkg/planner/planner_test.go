package planner

import (
	"testing"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

func newTestGraph(t *testing.T) *wfgraph.WorkflowGraph {
	t.Helper()
	r := noderegistry.New()
	r.Register("n", portschema.NodeSchema{
		NodeType: "n",
		Inputs:   []portschema.Port{{Name: "in", DataType: portschema.DataTypeAny}},
		Outputs:  []portschema.Port{{Name: "out", DataType: portschema.DataTypeAny}},
	}, func(id string, cfg map[string]interface{}) (node.Node, error) { return nil, nil })
	return wfgraph.New("test", r)
}

func TestExecutionOrder_FanOutSingleLayer(t *testing.T) {
	g := newTestGraph(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := g.AddNode(wfgraph.WorkflowNode{ID: id, NodeType: "n"}); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, target := range []string{"b", "c", "d"} {
		if err := g.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "a", SourcePort: "out", TargetNodeID: target, TargetPort: "in"}); err != nil {
			t.Fatalf("AddEdge(a->%s): %v", target, err)
		}
	}

	layers, err := ExecutionOrder(g)
	if err != nil {
		t.Fatalf("ExecutionOrder() unexpected error: %v", err)
	}
	if len(layers) != 2 {
		t.Fatalf("ExecutionOrder() returned %d layers, want 2", len(layers))
	}
	if len(layers[0]) != 1 || layers[0][0] != "a" {
		t.Errorf("layer 0 = %v, want [a]", layers[0])
	}
	if len(layers[1]) != 3 {
		t.Errorf("layer 1 = %v, want 3 nodes", layers[1])
	}
}

func TestExecutionOrder_DisabledNodeExcluded(t *testing.T) {
	g := newTestGraph(t)
	mustAdd(t, g, "a")
	mustAdd(t, g, "b")
	g.Nodes["b"].Disabled = true

	if err := g.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "a", SourcePort: "out", TargetNodeID: "b", TargetPort: "in"}); err != nil {
		t.Fatalf("AddEdge(): %v", err)
	}

	layers, err := ExecutionOrder(g)
	if err != nil {
		t.Fatalf("ExecutionOrder() unexpected error: %v", err)
	}
	for _, layer := range layers {
		for _, id := range layer {
			if id == "b" {
				t.Fatalf("disabled node %q appeared in a layer", id)
			}
		}
	}
}

func TestExecutionOrder_DetectsCycle(t *testing.T) {
	g := newTestGraph(t)
	mustAdd(t, g, "a")
	mustAdd(t, g, "b")
	if err := g.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "a", SourcePort: "out", TargetNodeID: "b", TargetPort: "in"}); err != nil {
		t.Fatalf("AddEdge(a->b): %v", err)
	}
	// Force a cycle directly into the map, bypassing AddEdge's own rejection,
	// to exercise the planner's independent cycle detection.
	g.Edges["force-cycle"] = &wfgraph.WorkflowEdge{ID: "force-cycle", SourceNodeID: "b", SourcePort: "out", TargetNodeID: "a", TargetPort: "in"}

	_, err := ExecutionOrder(g)
	if err == nil {
		t.Fatalf("ExecutionOrder() expected cycle error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Errorf("error type = %T, want *CycleError", err)
	}
}

func mustAdd(t *testing.T, g *wfgraph.WorkflowGraph, id string) {
	t.Helper()
	if err := g.AddNode(wfgraph.WorkflowNode{ID: id, NodeType: "n"}); err != nil {
		t.Fatalf("AddNode(%q): %v", id, err)
	}
}
