package wfengine

import (
	"context"
	"sync"
	"time"

	"github.com/rtpro256/workflow-engine-core/pkg/eventbus"
	"github.com/rtpro256/workflow-engine-core/pkg/statestore"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

// run is the per-execution scheduler loop: prepare -> emit workflow_started
// -> for each layer, emit layer_started -> execute its nodes concurrently
// -> emit layer_completed -> emit workflow_completed/failed/error.
func (e *Engine) run(ctx context.Context, cancel context.CancelFunc, executionID string, graph *wfgraph.WorkflowGraph, layers [][]string, state *statestore.WorkflowState, bus *eventbus.Bus, stream *eventbus.Stream) {
	defer cancel()
	defer stream.Close()
	defer e.releaseCancel(executionID)

	workflowID := graph.ID
	state.StartExecution()
	bus.Emit(eventbus.ExecutionEvent{
		Type: eventbus.EventWorkflowStarted, WorkflowID: workflowID, ExecutionID: executionID,
		Timestamp: time.Now().UTC(),
	})

	var workflowErr error
	for layerIndex, layer := range layers {
		if ctx.Err() != nil {
			workflowErr = newError(KindCancelled, "", "execution cancelled", ctx.Err())
			break
		}

		state.SetCurrentLayer(layerIndex)
		bus.Emit(eventbus.ExecutionEvent{
			Type: eventbus.EventLayerStarted, WorkflowID: workflowID, ExecutionID: executionID,
			Layer: layerIndex, Timestamp: time.Now().UTC(),
		})

		if err := e.executeLayer(ctx, executionID, graph, layer, state, bus); err != nil {
			workflowErr = err
		}

		bus.Emit(eventbus.ExecutionEvent{
			Type: eventbus.EventLayerCompleted, WorkflowID: workflowID, ExecutionID: executionID,
			Layer: layerIndex, Timestamp: time.Now().UTC(),
		})

		if workflowErr != nil && !e.config.ContinueOnError {
			break
		}
	}

	if isCancelErr(workflowErr) {
		for id := range graph.Nodes {
			if ns, ok := state.GetNodeState(id); ok && ns.Status == statestore.NodeStatusPending {
				state.CancelNode(id)
			}
		}
	}

	e.finish(workflowID, executionID, state, bus, workflowErr)
}

func (e *Engine) finish(workflowID, executionID string, state *statestore.WorkflowState, bus *eventbus.Bus, workflowErr error) {
	now := time.Now().UTC()
	switch {
	case workflowErr == nil:
		state.CompleteExecution()
		bus.Emit(eventbus.ExecutionEvent{Type: eventbus.EventWorkflowCompleted, WorkflowID: workflowID, ExecutionID: executionID, Timestamp: now})
	case isCancelErr(workflowErr):
		state.CancelExecution()
		bus.Emit(eventbus.ExecutionEvent{Type: eventbus.EventWorkflowFailed, WorkflowID: workflowID, ExecutionID: executionID, Timestamp: now, Error: workflowErr.Error()})
	default:
		state.FailExecution(workflowErr.Error())
		bus.Emit(eventbus.ExecutionEvent{Type: eventbus.EventWorkflowError, WorkflowID: workflowID, ExecutionID: executionID, Timestamp: now, Error: workflowErr.Error()})
	}
}

func isCancelErr(err error) bool {
	engErr, ok := err.(*Error)
	return ok && engErr.Kind == KindCancelled
}

// executeLayer runs every node in layer concurrently, bounded by
// MaxConcurrentNodes, and waits for all to reach a terminal state before
// returning. The first node error encountered is returned once every
// goroutine has finished; siblings already in flight are allowed to
// finish their own Execute call rather than being forcibly killed.
func (e *Engine) executeLayer(ctx context.Context, executionID string, graph *wfgraph.WorkflowGraph, layer []string, state *statestore.WorkflowState, bus *eventbus.Bus) error {
	sem := make(chan struct{}, e.config.MaxConcurrentNodes)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, nodeID := range layer {
		if wn, ok := graph.Nodes[nodeID]; ok && wn.Disabled {
			state.SkipNode(nodeID, "node disabled")
			continue
		}

		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				if firstErr == nil {
					firstErr = newError(KindCancelled, id, "execution cancelled before node started", ctx.Err())
				}
				mu.Unlock()
				state.CancelNode(id)
				return
			}

			if err := e.executeNode(ctx, executionID, graph, id, state, bus); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(nodeID)
	}
	wg.Wait()
	return firstErr
}
