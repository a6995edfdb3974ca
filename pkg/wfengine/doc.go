// Package wfengine schedules and executes a wfgraph.WorkflowGraph: it
// plans execution layers, runs each layer's nodes concurrently under a
// bounded semaphore, enforces per-node timeouts, retries transient node
// failures with backoff, tracks per-execution state, and streams
// ExecutionEvents describing progress. Its control flow mirrors the
// prepare/stream-events/layer-loop/node-loop/gather-inputs shape of the
// Python workflow engine this module distills, translated to goroutines,
// channels, and context.Context.
package wfengine
