package wfengine_test

import (
	"context"
	"testing"

	"github.com/rtpro256/workflow-engine-core/pkg/statestore"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

func TestSnapshot_SaveAndRestoreRoundTrip(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("snap", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "A", NodeType: "data_source", Config: map[string]interface{}{"value": 7}}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	eng := wfengine.NewWithConfig(wfengine.DefaultConfig(), r)
	state, err := eng.Execute(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}

	snap, err := wfengine.SaveSnapshot(g, state)
	if err != nil {
		t.Fatalf("SaveSnapshot(): %v", err)
	}
	if snap.ExecutionID != state.ExecutionID {
		t.Errorf("snapshot ExecutionID = %q, want %q", snap.ExecutionID, state.ExecutionID)
	}

	restoredGraph, restoredState, err := wfengine.RestoreSnapshot(snap, func(data []byte) (*wfgraph.WorkflowGraph, error) {
		return wfgraph.FromJSON(data, r)
	})
	if err != nil {
		t.Fatalf("RestoreSnapshot(): %v", err)
	}
	if len(restoredGraph.Nodes) != len(g.Nodes) {
		t.Errorf("restored graph has %d nodes, want %d", len(restoredGraph.Nodes), len(g.Nodes))
	}
	if restoredState.GetStatus() != statestore.ExecutionStatusCompleted {
		t.Errorf("restored status = %v, want completed", restoredState.GetStatus())
	}
	ns, ok := restoredState.GetNodeState("A")
	if !ok || ns.Outputs["out"] != 7 {
		t.Errorf("restored node A outputs = %v (ok=%v), want out:7", ns.Outputs, ok)
	}
}
