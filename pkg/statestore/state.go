package statestore

import (
	"sync"
	"time"
)

// NodeStatus is a node's position in its per-node state machine.
type NodeStatus string

const (
	NodeStatusPending   NodeStatus = "pending"
	NodeStatusRunning   NodeStatus = "running"
	NodeStatusCompleted NodeStatus = "completed"
	NodeStatusFailed    NodeStatus = "failed"
	NodeStatusSkipped   NodeStatus = "skipped"
	NodeStatusCancelled NodeStatus = "cancelled"
)

// ExecutionStatus is an execution's position in its state machine.
type ExecutionStatus string

const (
	ExecutionStatusPending   ExecutionStatus = "pending"
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusCancelled ExecutionStatus = "cancelled"
)

// NodeExecutionState is the per-node record within a WorkflowState.
// Transitions happen only via the engine's state-mutating methods below.
type NodeExecutionState struct {
	NodeID         string
	Status         NodeStatus
	Inputs         map[string]interface{}
	Outputs        map[string]interface{}
	Error          string
	ErrorTraceback string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Attempts       int
}

// WorkflowState is the mutable record of one execution. Fields are read
// under RLock via accessor methods; mutation methods take the write lock.
type WorkflowState struct {
	mu sync.RWMutex

	WorkflowID  string
	ExecutionID string
	Status      ExecutionStatus
	Variables   map[string]interface{}
	NodeStates  map[string]*NodeExecutionState
	TotalLayers int
	CurrentLayer int
	StartedAt   *time.Time
	CompletedAt *time.Time
	Error       string
}

// NewWorkflowState creates a pending WorkflowState with every nodeID
// initialised to pending.
func NewWorkflowState(workflowID, executionID string, variables map[string]interface{}, nodeIDs []string) *WorkflowState {
	states := make(map[string]*NodeExecutionState, len(nodeIDs))
	for _, id := range nodeIDs {
		states[id] = &NodeExecutionState{NodeID: id, Status: NodeStatusPending}
	}
	return &WorkflowState{
		WorkflowID:  workflowID,
		ExecutionID: executionID,
		Status:      ExecutionStatusPending,
		Variables:   variables,
		NodeStates:  states,
	}
}

// GetNodeState returns a snapshot copy of a node's state, safe to read
// without holding any lock afterwards.
func (s *WorkflowState) GetNodeState(nodeID string) (NodeExecutionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.NodeStates[nodeID]
	if !ok {
		return NodeExecutionState{}, false
	}
	return *ns, true
}

// GetStatus returns the execution's current status.
func (s *WorkflowState) GetStatus() ExecutionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// StartExecution transitions pending -> running and records startedAt.
func (s *WorkflowState) StartExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.Status = ExecutionStatusRunning
	s.StartedAt = &now
}

// CompleteExecution transitions running -> completed.
func (s *WorkflowState) CompleteExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.Status = ExecutionStatusCompleted
	s.CompletedAt = &now
}

// FailExecution transitions -> failed, recording the reason.
func (s *WorkflowState) FailExecution(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.Status = ExecutionStatusFailed
	s.Error = reason
	s.CompletedAt = &now
}

// CancelExecution transitions -> cancelled. Idempotent: calling it again
// after a terminal status is a no-op.
func (s *WorkflowState) CancelExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isTerminal(s.Status) {
		return
	}
	now := time.Now().UTC()
	s.Status = ExecutionStatusCancelled
	s.CompletedAt = &now
}

func isTerminal(status ExecutionStatus) bool {
	switch status {
	case ExecutionStatusCompleted, ExecutionStatusFailed, ExecutionStatusCancelled:
		return true
	default:
		return false
	}
}

// IsSuccessful reports whether the execution ended in completed status.
func (s *WorkflowState) IsSuccessful() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status == ExecutionStatusCompleted
}

// DurationMs returns the elapsed time between StartedAt and CompletedAt (or
// now, if still running), in milliseconds. 0 if not yet started.
func (s *WorkflowState) DurationMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.StartedAt == nil {
		return 0
	}
	end := time.Now().UTC()
	if s.CompletedAt != nil {
		end = *s.CompletedAt
	}
	return end.Sub(*s.StartedAt).Milliseconds()
}

// SetCurrentLayer records the index of the layer presently executing.
func (s *WorkflowState) SetCurrentLayer(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentLayer = i
}

// StartNode transitions a node pending -> running and records its inputs.
func (s *WorkflowState) StartNode(nodeID string, inputs map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nodeLocked(nodeID)
	now := time.Now().UTC()
	ns.Status = NodeStatusRunning
	ns.Inputs = inputs
	ns.StartedAt = &now
	ns.Attempts++
}

// CompleteNode transitions a node running -> completed, publishing its
// outputs. Readers of the state store observe the outputs no earlier than
// this call returns.
func (s *WorkflowState) CompleteNode(nodeID string, outputs map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nodeLocked(nodeID)
	now := time.Now().UTC()
	ns.Status = NodeStatusCompleted
	ns.Outputs = outputs
	ns.CompletedAt = &now
}

// FailNode transitions a node -> failed, recording the error and optional
// traceback.
func (s *WorkflowState) FailNode(nodeID, reason, traceback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nodeLocked(nodeID)
	now := time.Now().UTC()
	ns.Status = NodeStatusFailed
	ns.Error = reason
	ns.ErrorTraceback = traceback
	ns.CompletedAt = &now
}

// ResetNodeForRetry transitions a failed node back to pending, preserving
// its attempt counter, for the engine's retry loop.
func (s *WorkflowState) ResetNodeForRetry(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nodeLocked(nodeID)
	ns.Status = NodeStatusPending
	ns.Error = ""
	ns.ErrorTraceback = ""
	ns.CompletedAt = nil
}

// SkipNode transitions a node -> skipped (used for disabled nodes).
func (s *WorkflowState) SkipNode(nodeID, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nodeLocked(nodeID)
	now := time.Now().UTC()
	ns.Status = NodeStatusSkipped
	ns.Error = reason
	ns.CompletedAt = &now
}

// CancelNode transitions a node -> cancelled.
func (s *WorkflowState) CancelNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := s.nodeLocked(nodeID)
	now := time.Now().UTC()
	ns.Status = NodeStatusCancelled
	ns.CompletedAt = &now
}

// nodeLocked returns (creating if absent) the node state for nodeID.
// Caller must hold s.mu for writing.
func (s *WorkflowState) nodeLocked(nodeID string) *NodeExecutionState {
	ns, ok := s.NodeStates[nodeID]
	if !ok {
		ns = &NodeExecutionState{NodeID: nodeID}
		s.NodeStates[nodeID] = ns
	}
	return ns
}
