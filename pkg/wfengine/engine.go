package wfengine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rtpro256/workflow-engine-core/pkg/eventbus"
	"github.com/rtpro256/workflow-engine-core/pkg/logging"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/planner"
	"github.com/rtpro256/workflow-engine-core/pkg/statestore"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

// Engine schedules and runs WorkflowGraphs. One Engine can run many
// executions concurrently; each execution owns one scheduler loop.
type Engine struct {
	config   Config
	registry *noderegistry.Registry
	logger   *logging.Logger
	states   *statestore.Store

	cancelMu sync.Mutex
	cancels  map[string]context.CancelFunc
}

// New creates an Engine with DefaultConfig, the package-level default
// node registry, and a default logger.
func New() *Engine {
	return NewWithConfig(DefaultConfig(), noderegistry.Default)
}

// NewWithConfig creates an Engine with explicit config and registry.
func NewWithConfig(cfg Config, registry *noderegistry.Registry) *Engine {
	if cfg.MaxConcurrentNodes < 1 {
		cfg.MaxConcurrentNodes = DefaultConfig().MaxConcurrentNodes
	}
	return &Engine{
		config:   cfg,
		registry: registry,
		logger:   logging.New(logging.DefaultConfig()),
		states:   statestore.New(),
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Execute runs graph to completion (or failure/cancellation) and returns
// its final state. It blocks until the execution reaches a terminal
// status. executionID is optional: pass one to reuse a caller-supplied id
// (e.g. for resuming/correlating a run), or omit it to have the engine
// generate one.
func (e *Engine) Execute(ctx context.Context, graph *wfgraph.WorkflowGraph, variables map[string]interface{}, executionID ...string) (*statestore.WorkflowState, error) {
	id, events, err := e.ExecuteStream(ctx, graph, variables, executionID...)
	if err != nil {
		return nil, err
	}
	for range events {
		// Drain; Execute's caller wants only the final state.
	}
	state, _ := e.GetState(id)
	return state, nil
}

// ExecuteStream starts graph executing in the background and returns its
// executionId plus a channel of ExecutionEvents, closed once the
// execution reaches a terminal status. The caller is not required to
// drain the channel promptly: a slow reader degrades via eventbus.Stream's
// drop-oldest policy rather than blocking the scheduler. executionID is
// optional: the first non-empty value supplied is reused verbatim,
// otherwise one is generated.
func (e *Engine) ExecuteStream(ctx context.Context, graph *wfgraph.WorkflowGraph, variables map[string]interface{}, executionIDOpt ...string) (string, <-chan eventbus.ExecutionEvent, error) {
	layers, err := planner.ExecutionOrder(graph)
	if err != nil {
		return "", nil, newError(KindInvalidWorkflow, "", "graph contains a cycle", err)
	}
	if errs := graph.Validate(); len(errs) > 0 {
		return "", nil, newError(KindInvalidWorkflow, "", errs[0].Error(), errs[0])
	}

	executionID := firstNonEmpty(executionIDOpt)
	if executionID == "" {
		executionID = uuid.NewString()
	}
	nodeIDs := make([]string, 0, len(graph.Nodes))
	for id := range graph.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	state := statestore.NewWorkflowState(graph.ID, executionID, variables, nodeIDs)
	state.TotalLayers = len(layers)
	e.states.Save(state)

	runCtx, cancel := context.WithCancel(ctx)
	e.cancelMu.Lock()
	e.cancels[executionID] = cancel
	e.cancelMu.Unlock()

	stream := eventbus.NewStream(256)
	bus := eventbus.New(e.logger)
	bus.Subscribe(stream.Handler())

	go e.run(runCtx, cancel, executionID, graph, layers, state, bus, stream)

	return executionID, stream.Events(), nil
}

// GetState returns the current (possibly still-running) state for an
// executionId.
func (e *Engine) GetState(executionID string) (*statestore.WorkflowState, bool) {
	return e.states.Get(executionID)
}

// IsRunning reports whether executionId has not yet reached a terminal
// status.
func (e *Engine) IsRunning(executionID string) bool {
	state, ok := e.states.Get(executionID)
	if !ok {
		return false
	}
	switch state.GetStatus() {
	case statestore.ExecutionStatusPending, statestore.ExecutionStatusRunning:
		return true
	default:
		return false
	}
}

// Cancel requests cooperative cancellation of executionId. Idempotent:
// cancelling an execution that is already terminal, or an unknown
// executionId, is a no-op returning false.
func (e *Engine) Cancel(executionID string) bool {
	e.cancelMu.Lock()
	cancel, ok := e.cancels[executionID]
	e.cancelMu.Unlock()
	if !ok {
		return false
	}
	cancel()
	return true
}

// Shutdown cancels every in-flight execution and waits up to
// min(DefaultTimeoutSeconds, 30s) for them to reach a terminal status.
func (e *Engine) Shutdown() {
	e.cancelMu.Lock()
	ids := make([]string, 0, len(e.cancels))
	for id, cancel := range e.cancels {
		cancel()
		ids = append(ids, id)
	}
	e.cancelMu.Unlock()

	grace := e.config.DefaultTimeoutSeconds
	if grace <= 0 || grace > 30*time.Second {
		grace = 30 * time.Second
	}
	deadline := time.Now().Add(grace)
	for _, id := range ids {
		for e.IsRunning(id) && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (e *Engine) releaseCancel(executionID string) {
	e.cancelMu.Lock()
	delete(e.cancels, executionID)
	e.cancelMu.Unlock()
}

// firstNonEmpty returns the first non-empty string in ids, or "".
func firstNonEmpty(ids []string) string {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}
