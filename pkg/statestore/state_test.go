package statestore

import "testing"

func TestWorkflowState_CompleteNodePublishesOutputs(t *testing.T) {
	s := NewWorkflowState("wf1", "exec1", nil, []string{"a"})
	s.StartNode("a", map[string]interface{}{"x": 1})
	s.CompleteNode("a", map[string]interface{}{"out": 7})

	ns, ok := s.GetNodeState("a")
	if !ok {
		t.Fatalf("GetNodeState() node not found")
	}
	if ns.Status != NodeStatusCompleted {
		t.Errorf("Status = %v, want completed", ns.Status)
	}
	if ns.Outputs["out"] != 7 {
		t.Errorf("Outputs[out] = %v, want 7", ns.Outputs["out"])
	}
}

func TestWorkflowState_CancelExecutionIdempotent(t *testing.T) {
	s := NewWorkflowState("wf1", "exec1", nil, nil)
	s.StartExecution()
	s.CancelExecution()
	if s.GetStatus() != ExecutionStatusCancelled {
		t.Fatalf("GetStatus() = %v, want cancelled", s.GetStatus())
	}

	s.CancelExecution() // repeated call must not change the final status
	if s.GetStatus() != ExecutionStatusCancelled {
		t.Errorf("second CancelExecution() changed status to %v", s.GetStatus())
	}
}

func TestWorkflowState_CancelExecutionAfterTerminalIsNoOp(t *testing.T) {
	s := NewWorkflowState("wf1", "exec1", nil, nil)
	s.StartExecution()
	s.CompleteExecution()

	s.CancelExecution()
	if s.GetStatus() != ExecutionStatusCompleted {
		t.Errorf("CancelExecution() after completion changed status to %v, want completed", s.GetStatus())
	}
}

func TestWorkflowState_RetryResetsToPendingPreservingAttempts(t *testing.T) {
	s := NewWorkflowState("wf1", "exec1", nil, []string{"a"})
	s.StartNode("a", nil)
	s.FailNode("a", "boom", "")
	s.ResetNodeForRetry("a")

	ns, _ := s.GetNodeState("a")
	if ns.Status != NodeStatusPending {
		t.Errorf("Status after retry reset = %v, want pending", ns.Status)
	}
	if ns.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1 preserved across reset", ns.Attempts)
	}
}

func TestStore_SaveGetRemove(t *testing.T) {
	store := New()
	s := NewWorkflowState("wf1", "exec1", nil, nil)
	store.Save(s)

	got, ok := store.Get("exec1")
	if !ok || got != s {
		t.Fatalf("Get() = (%v, %v), want (%v, true)", got, ok, s)
	}

	store.Remove("exec1")
	if _, ok := store.Get("exec1"); ok {
		t.Errorf("Get() after Remove() still found state")
	}
}
