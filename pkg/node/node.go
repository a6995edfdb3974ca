package node

import (
	"context"
	"time"

	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// ExecutionContext is exposed to a node's Execute call. Additional fields
// may be added over time; node implementations must not assume any beyond
// these.
type ExecutionContext struct {
	WorkflowID  string
	ExecutionID string
	NodeID      string

	// Variables is a read-only snapshot of the execution's variables at the
	// time the node started. Mutating it has no effect on the execution.
	Variables map[string]interface{}

	// Context carries cancellation. Node implementations should select on
	// Context.Done() at any internal suspension point.
	Context context.Context
}

// ResultMetadata carries hints the engine uses to decide retry behaviour.
type ResultMetadata struct {
	// Retryable marks a reported failure as transient. Absent (false) means
	// non-retryable.
	Retryable bool
}

// ExecutionResult is what a node's Execute call returns.
type ExecutionResult struct {
	Success        bool
	Outputs        map[string]interface{}
	Error          string
	ErrorTraceback string
	DurationMs     int64
	Metadata       ResultMetadata
}

// Node is the contract a node type implementation satisfies. A node type
// has no identity beyond its schema and its Execute function — there is no
// base class to inherit from.
type Node interface {
	Schema() portschema.NodeSchema
	Execute(inputs map[string]interface{}, ctx ExecutionContext) ExecutionResult
}

// Constructor builds a Node instance for a given graph node's id and
// config. Constructors are registered once per node type and invoked once
// per graph node per execution.
type Constructor func(nodeID string, config map[string]interface{}) (Node, error)

// Timed runs fn and returns an ExecutionResult with DurationMs populated,
// wrapping the common "measure wall time around a node body" pattern every
// built-in node uses.
func Timed(fn func() ExecutionResult) ExecutionResult {
	start := time.Now()
	result := fn()
	result.DurationMs = time.Since(start).Milliseconds()
	return result
}
