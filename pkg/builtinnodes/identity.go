package builtinnodes

import (
	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// Identity forwards its "in" input to its "out" output unchanged. Useful as
// a join point or a placeholder while a graph is under construction.
type Identity struct{}

func identitySchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "identity",
		DisplayName: "Passthrough",
		Category:    "utility",
		Version:     "1.0.0",
		Inputs:      []portschema.Port{{Name: "in", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny, Required: true}},
		Outputs:     []portschema.Port{{Name: "out", Direction: portschema.DirectionOut, DataType: portschema.DataTypeAny}},
	}
}

func newIdentity(nodeID string, config map[string]interface{}) (node.Node, error) {
	return &Identity{}, nil
}

func (i *Identity) Schema() portschema.NodeSchema { return identitySchema() }

func (i *Identity) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"out": inputs["in"]}}
	})
}
