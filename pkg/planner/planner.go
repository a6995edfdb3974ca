package planner

import (
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

// ExecutionOrder computes the graph's layers via Kahn's algorithm: layer 0
// is every non-disabled node with zero in-degree over enabled edges; each
// subsequent layer is the new zero in-degree frontier once the previous
// layer's nodes are removed. Disabled nodes are excluded from every layer
// entirely — the engine treats them as immediately skipped.
//
// If nodes remain unplaced once the frontier is exhausted, the graph
// contains a cycle and ExecutionOrder fails.
func ExecutionOrder(g *wfgraph.WorkflowGraph) ([][]string, error) {
	inDegree := make(map[string]int)
	adjacency := make(map[string][]string)

	for id, n := range g.Nodes {
		if n.Disabled {
			continue
		}
		inDegree[id] = 0
	}

	for _, e := range g.Edges {
		if e.Disabled {
			continue
		}
		source, sOK := g.Nodes[e.SourceNodeID]
		target, tOK := g.Nodes[e.TargetNodeID]
		if !sOK || !tOK || source.Disabled || target.Disabled {
			continue
		}
		adjacency[e.SourceNodeID] = append(adjacency[e.SourceNodeID], e.TargetNodeID)
		inDegree[e.TargetNodeID]++
	}

	remaining := len(inDegree)
	var layers [][]string

	for remaining > 0 {
		var frontier []string
		for id, degree := range inDegree {
			if degree == 0 {
				frontier = append(frontier, id)
			}
		}
		if len(frontier) == 0 {
			return nil, &CycleError{}
		}

		layers = append(layers, frontier)
		for _, id := range frontier {
			delete(inDegree, id)
			remaining--
			for _, next := range adjacency[id] {
				if _, stillPending := inDegree[next]; stillPending {
					inDegree[next]--
				}
			}
		}
	}

	return layers, nil
}
