package wfengine

import (
	"github.com/rtpro256/workflow-engine-core/pkg/statestore"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

// gatherInputs pulls values for nodeID's input ports from completed
// upstream producers only: an edge whose source has not reached
// NodeStatusCompleted contributes no value, so a node_started event is
// never emitted until every upstream producer it consumes from has
// completed.
func gatherInputs(graph *wfgraph.WorkflowGraph, nodeID string, state *statestore.WorkflowState) map[string]interface{} {
	inputs := make(map[string]interface{})
	for _, edge := range graph.IncomingEdges(nodeID) {
		if edge.Disabled {
			continue
		}
		srcState, ok := state.GetNodeState(edge.SourceNodeID)
		if !ok || srcState.Status != statestore.NodeStatusCompleted {
			continue
		}
		if v, ok := srcState.Outputs[edge.SourcePort]; ok {
			inputs[edge.TargetPort] = v
		}
	}
	return inputs
}

// missingRequiredInputs reports which required input port names have no
// value in inputs.
func missingRequiredInputs(requiredPorts []string, inputs map[string]interface{}) []string {
	var missing []string
	for _, name := range requiredPorts {
		if _, ok := inputs[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
