// Package statestore holds per-execution WorkflowState records: node
// states, outputs, timestamps, and status. It is the authoritative source
// of truth the engine writes to and any reader (HTTP status endpoint,
// downstream gatherInputs) reads from.
package statestore
