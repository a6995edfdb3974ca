package wfengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
	"github.com/rtpro256/workflow-engine-core/pkg/statestore"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

type dataSourceNode struct{ value interface{} }

func (n *dataSourceNode) Schema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType: "data_source",
		Outputs:  []portschema.Port{{Name: "out", DataType: portschema.DataTypeAny}},
	}
}
func (n *dataSourceNode) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"out": n.value}}
}

type identityNode struct{}

func (n *identityNode) Schema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType: "identity",
		Inputs:   []portschema.Port{{Name: "in", Required: true, DataType: portschema.DataTypeAny}},
		Outputs:  []portschema.Port{{Name: "out", DataType: portschema.DataTypeAny}},
	}
}
func (n *identityNode) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"out": inputs["in"]}}
}

type sleepyNode struct{ sleep time.Duration }

func (n *sleepyNode) Schema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType: "sleepy",
		Inputs:   []portschema.Port{{Name: "in", DataType: portschema.DataTypeAny}},
		Outputs:  []portschema.Port{{Name: "out", DataType: portschema.DataTypeAny}},
	}
}
func (n *sleepyNode) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	select {
	case <-time.After(n.sleep):
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"out": true}}
	case <-ctx.Context.Done():
		return node.ExecutionResult{Success: false, Error: "cancelled"}
	}
}

func testRegistry() *noderegistry.Registry {
	r := noderegistry.New()
	r.Register("data_source", (&dataSourceNode{}).Schema(), func(id string, cfg map[string]interface{}) (node.Node, error) {
		return &dataSourceNode{value: cfg["value"]}, nil
	})
	r.Register("identity", (&identityNode{}).Schema(), func(id string, cfg map[string]interface{}) (node.Node, error) {
		return &identityNode{}, nil
	})
	r.Register("sleepy", (&sleepyNode{}).Schema(), func(id string, cfg map[string]interface{}) (node.Node, error) {
		ms, _ := cfg["sleep_ms"].(int)
		return &sleepyNode{sleep: time.Duration(ms) * time.Millisecond}, nil
	})
	return r
}

// S1 — linear pipeline, happy path.
func TestEngine_S1_LinearPipeline(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s1", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "A", NodeType: "data_source", Config: map[string]interface{}{"value": 7}}); err != nil {
		t.Fatalf("AddNode(A): %v", err)
	}
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "B", NodeType: "identity"}); err != nil {
		t.Fatalf("AddNode(B): %v", err)
	}
	if err := g.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "A", SourcePort: "out", TargetNodeID: "B", TargetPort: "in"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	eng := wfengine.NewWithConfig(wfengine.DefaultConfig(), r)
	state, err := eng.Execute(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	if state.GetStatus() != statestore.ExecutionStatusCompleted {
		t.Fatalf("status = %v, want completed", state.GetStatus())
	}
	ns, _ := state.GetNodeState("B")
	if ns.Outputs["out"] != 7 {
		t.Errorf("B.outputs.out = %v, want 7", ns.Outputs["out"])
	}
}

// S3 — cycle rejection: execute fails fast, no node ever reaches running.
func TestEngine_S3_CycleRejectedFastWithoutRunningNodes(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s3", r)
	for _, id := range []string{"A", "B", "C"} {
		if err := g.AddNode(wfgraph.WorkflowNode{ID: id, NodeType: "identity"}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	// Build A->B->C acyclically via AddEdge, then force the closing C->A
	// edge directly into the map, bypassing AddEdge's own cycle check, to
	// exercise the engine's independent fail-fast behaviour.
	mustEdge(t, g, "A", "B")
	mustEdge(t, g, "B", "C")
	g.Edges["force-cycle"] = &wfgraph.WorkflowEdge{ID: "force-cycle", SourceNodeID: "C", SourcePort: "out", TargetNodeID: "A", TargetPort: "in"}

	eng := wfengine.NewWithConfig(wfengine.DefaultConfig(), r)
	executionID, events, err := eng.ExecuteStream(context.Background(), g, nil)
	if err == nil {
		t.Fatalf("ExecuteStream() expected error for cyclic graph")
	}
	engErr, ok := err.(*wfengine.Error)
	if !ok || engErr.Kind != wfengine.KindInvalidWorkflow {
		t.Fatalf("error = %v, want *wfengine.Error{Kind: InvalidWorkflow}", err)
	}
	if events != nil {
		t.Errorf("events channel = %v, want nil (no execution ever started)", events)
	}
	if executionID != "" {
		t.Errorf("executionID = %q, want empty", executionID)
	}
}

// S4 — node timeout.
func TestEngine_S4_NodeTimeout(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s4", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "N", NodeType: "sleepy", Config: map[string]interface{}{"sleep_ms": 500}}); err != nil {
		t.Fatalf("AddNode(N): %v", err)
	}

	cfg := wfengine.DefaultConfig()
	cfg.DefaultTimeoutSeconds = 50 * time.Millisecond
	cfg.RetryFailedNodes = false
	eng := wfengine.NewWithConfig(cfg, r)

	state, err := eng.Execute(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	if state.GetStatus() != statestore.ExecutionStatusFailed {
		t.Fatalf("status = %v, want failed", state.GetStatus())
	}
	ns, _ := state.GetNodeState("N")
	if ns.Status != statestore.NodeStatusFailed {
		t.Errorf("N.status = %v, want failed", ns.Status)
	}
}

// S5 — cancellation mid-flight: downstream node never starts; cancel is
// idempotent.
func TestEngine_S5_CancellationMidFlight(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s5", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "A", NodeType: "sleepy", Config: map[string]interface{}{"sleep_ms": 200}}); err != nil {
		t.Fatalf("AddNode(A): %v", err)
	}
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "B", NodeType: "sleepy", Config: map[string]interface{}{"sleep_ms": 200}}); err != nil {
		t.Fatalf("AddNode(B): %v", err)
	}
	if err := g.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "A", SourcePort: "out", TargetNodeID: "B", TargetPort: "in"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	eng := wfengine.NewWithConfig(wfengine.DefaultConfig(), r)
	executionID, events, err := eng.ExecuteStream(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("ExecuteStream(): %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if !eng.Cancel(executionID) {
		t.Fatalf("Cancel() = false, want true")
	}
	second := eng.Cancel(executionID)
	if !second {
		t.Errorf("second Cancel() = false, want true (idempotent: an execution is still registered until the run loop exits)")
	}

	for range events {
		// Drain until the stream closes at a terminal state.
	}

	state, ok := eng.GetState(executionID)
	if !ok {
		t.Fatalf("GetState() not found")
	}
	if state.GetStatus() != statestore.ExecutionStatusCancelled {
		t.Fatalf("status = %v, want cancelled", state.GetStatus())
	}
	ns, _ := state.GetNodeState("B")
	if ns.Status != statestore.NodeStatusCancelled {
		t.Errorf("B.status = %v, want cancelled (never started)", ns.Status)
	}
}

// S6 — disabled nodes are marked skipped rather than left pending.
func TestEngine_S6_DisabledNodeIsSkipped(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s6", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "A", NodeType: "data_source", Config: map[string]interface{}{"value": 1}}); err != nil {
		t.Fatalf("AddNode(A): %v", err)
	}
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "B", NodeType: "identity", Disabled: true}); err != nil {
		t.Fatalf("AddNode(B): %v", err)
	}

	eng := wfengine.NewWithConfig(wfengine.DefaultConfig(), r)
	state, err := eng.Execute(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	ns, _ := state.GetNodeState("B")
	if ns.Status != statestore.NodeStatusSkipped {
		t.Errorf("B.status = %v, want skipped", ns.Status)
	}
}

// S7 — caller-supplied execution id is honoured verbatim.
func TestEngine_S7_CallerSuppliedExecutionID(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s7", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "A", NodeType: "data_source", Config: map[string]interface{}{"value": 1}}); err != nil {
		t.Fatalf("AddNode(A): %v", err)
	}

	eng := wfengine.NewWithConfig(wfengine.DefaultConfig(), r)
	executionID, events, err := eng.ExecuteStream(context.Background(), g, nil, "fixed-id-123")
	if err != nil {
		t.Fatalf("ExecuteStream(): %v", err)
	}
	if executionID != "fixed-id-123" {
		t.Fatalf("executionID = %q, want %q", executionID, "fixed-id-123")
	}
	for range events {
	}
}

// S8 — a node-level timeout_seconds override wins over the engine default.
func TestEngine_S8_PerNodeTimeoutOverride(t *testing.T) {
	r := testRegistry()
	g := wfgraph.New("s8", r)
	if err := g.AddNode(wfgraph.WorkflowNode{ID: "N", NodeType: "sleepy", Config: map[string]interface{}{"sleep_ms": 500, "timeout_seconds": 0.05}}); err != nil {
		t.Fatalf("AddNode(N): %v", err)
	}

	cfg := wfengine.DefaultConfig()
	cfg.RetryFailedNodes = false
	eng := wfengine.NewWithConfig(cfg, r)

	state, err := eng.Execute(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	if state.GetStatus() != statestore.ExecutionStatusFailed {
		t.Fatalf("status = %v, want failed", state.GetStatus())
	}
	ns, _ := state.GetNodeState("N")
	if ns.Status != statestore.NodeStatusFailed {
		t.Errorf("N.status = %v, want failed", ns.Status)
	}
}

func mustEdge(t *testing.T, g *wfgraph.WorkflowGraph, from, to string) {
	t.Helper()
	if err := g.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: from, SourcePort: "out", TargetNodeID: to, TargetPort: "in"}); err != nil {
		t.Fatalf("AddEdge(%s->%s): %v", from, to, err)
	}
}
