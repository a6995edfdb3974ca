package planner

// CycleError is returned by ExecutionOrder when the graph's enabled nodes
// and edges contain a cycle.
type CycleError struct{}

func (e *CycleError) Error() string {
	return "cannot compute execution order: graph contains a cycle"
}
