package wfengine

import (
	"context"
	"fmt"
	"time"

	"github.com/rtpro256/workflow-engine-core/pkg/eventbus"
	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/statestore"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

// executeNode runs one node through gather-inputs -> validate -> execute
// (with timeout) -> outcome handling -> retry.
func (e *Engine) executeNode(ctx context.Context, executionID string, graph *wfgraph.WorkflowGraph, nodeID string, state *statestore.WorkflowState, bus *eventbus.Bus) error {
	wn, ok := graph.Nodes[nodeID]
	if !ok {
		reason := "node not found in graph"
		state.FailNode(nodeID, reason, "")
		return newError(KindEngineError, nodeID, reason, nil)
	}

	schema, constructor, err := graph.Registry().GetRequired(wn.NodeType)
	if err != nil {
		state.FailNode(nodeID, err.Error(), "")
		e.emitNodeError(bus, graph.ID, executionID, nodeID, err.Error())
		return newError(KindUnknownNodeType, nodeID, err.Error(), err)
	}

	inputs := gatherInputs(graph, nodeID, state)
	if verr := schema.ValidateInputs(inputs); verr != nil {
		state.FailNode(nodeID, verr.Error(), "")
		e.emitNodeError(bus, graph.ID, executionID, nodeID, verr.Error())
		return newError(KindValidationError, nodeID, verr.Error(), verr)
	}

	n, err := constructor(nodeID, wn.Config)
	if err != nil {
		state.FailNode(nodeID, err.Error(), "")
		e.emitNodeError(bus, graph.ID, executionID, nodeID, err.Error())
		return newError(KindNodeException, nodeID, err.Error(), err)
	}

	timeout := e.config.DefaultTimeoutSeconds
	if timeout <= 0 {
		timeout = DefaultConfig().DefaultTimeoutSeconds
	}
	if override, ok := nodeTimeoutOverride(wn.Config); ok {
		timeout = override
	}

	maxAttempts := 1
	if e.config.RetryFailedNodes {
		maxAttempts = 1 + e.config.MaxRetries
	}
	backoff := e.config.RetryInitialBackoff

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		state.StartNode(nodeID, inputs)
		bus.Emit(eventbus.ExecutionEvent{
			Type: eventbus.EventNodeStarted, WorkflowID: graph.ID, ExecutionID: executionID,
			NodeID: nodeID, Timestamp: time.Now().UTC(),
		})

		result, runErr := e.runWithTimeout(ctx, n, inputs, graph.ID, executionID, nodeID, state.Variables, timeout)

		switch {
		case runErr == errNodeTimeout:
			reason := fmt.Sprintf("timeout after %s", timeout)
			state.FailNode(nodeID, reason, "")
			bus.Emit(eventbus.ExecutionEvent{Type: eventbus.EventNodeTimeout, WorkflowID: graph.ID, ExecutionID: executionID, NodeID: nodeID, Timestamp: time.Now().UTC(), Error: reason})
			return newError(KindTimeout, nodeID, reason, nil)

		case isCancelErr(runErr): // parent context cancelled, not a node timeout
			state.CancelNode(nodeID)
			return runErr

		case runErr != nil: // uncaught exception, recovered from panic
			state.FailNode(nodeID, runErr.Error(), "")
			e.emitNodeError(bus, graph.ID, executionID, nodeID, runErr.Error())
			lastErr = newError(KindNodeException, nodeID, runErr.Error(), runErr)
			return lastErr // panics are not retried: no declared-transient metadata to consult

		case result.Success:
			state.CompleteNode(nodeID, result.Outputs)
			bus.Emit(eventbus.ExecutionEvent{
				Type: eventbus.EventNodeCompleted, WorkflowID: graph.ID, ExecutionID: executionID, NodeID: nodeID,
				Timestamp: time.Now().UTC(),
				Data:      map[string]interface{}{"outputs": result.Outputs, "durationMs": result.DurationMs},
			})
			return nil

		default: // node-reported failure
			state.FailNode(nodeID, result.Error, result.ErrorTraceback)
			e.emitNodeError(bus, graph.ID, executionID, nodeID, result.Error)
			lastErr = newError(KindNodeReportedError, nodeID, result.Error, nil)

			if e.config.RetryFailedNodes && result.Metadata.Retryable && attempt < maxAttempts-1 {
				state.ResetNodeForRetry(nodeID)
				time.Sleep(backoff)
				backoff = nextBackoff(backoff, e.config.RetryBackoffFactor, e.config.RetryMaxBackoff)
				continue
			}
			return lastErr
		}
	}
	return lastErr
}

func (e *Engine) emitNodeError(bus *eventbus.Bus, workflowID, executionID, nodeID, message string) {
	bus.Emit(eventbus.ExecutionEvent{
		Type: eventbus.EventNodeError, WorkflowID: workflowID, ExecutionID: executionID,
		NodeID: nodeID, Timestamp: time.Now().UTC(), Error: message,
	})
}

func nextBackoff(current time.Duration, factor float64, cap time.Duration) time.Duration {
	next := time.Duration(float64(current) * factor)
	if cap > 0 && next > cap {
		return cap
	}
	return next
}

var errNodeTimeout = fmt.Errorf("node execution timed out")

// nodeTimeoutOverride reads a node's own timeout_seconds config value, if
// set. A numeric value wins over the engine's default timeout; a value
// of any other type is ignored.
func nodeTimeoutOverride(cfg map[string]interface{}) (time.Duration, bool) {
	raw, ok := cfg["timeout_seconds"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return time.Duration(v * float64(time.Second)), true
	case int:
		return time.Duration(v) * time.Second, true
	case int64:
		return time.Duration(v) * time.Second, true
	default:
		return 0, false
	}
}

// runWithTimeout invokes n.Execute under timeout, racing the node's own
// goroutine against the timeout context, and recovers a panic as an
// uncaught-exception error rather than crashing the engine.
func (e *Engine) runWithTimeout(ctx context.Context, n node.Node, inputs map[string]interface{}, workflowID, executionID, nodeID string, variables map[string]interface{}, timeout time.Duration) (node.ExecutionResult, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		result node.ExecutionResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		execCtx := node.ExecutionContext{
			WorkflowID: workflowID, ExecutionID: executionID, NodeID: nodeID,
			Variables: variables, Context: timeoutCtx,
		}
		result := n.Execute(inputs, execCtx)
		done <- outcome{result: result}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-timeoutCtx.Done():
		if ctx.Err() != nil {
			return node.ExecutionResult{}, newError(KindCancelled, nodeID, "execution cancelled", ctx.Err())
		}
		return node.ExecutionResult{}, errNodeTimeout
	}
}
