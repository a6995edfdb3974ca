package builtinnodes

import (
	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// DataSource emits config["value"] on its "out" port, unchanged, every
// execution. It has no inputs: it is the graph's entry point for literal
// or test data.
type DataSource struct {
	value interface{}
}

func dataSourceSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "data_source",
		DisplayName: "Data Source",
		Category:    "source",
		Version:     "1.0.0",
		Outputs:     []portschema.Port{{Name: "out", Direction: portschema.DirectionOut, DataType: portschema.DataTypeAny}},
	}
}

func newDataSource(nodeID string, config map[string]interface{}) (node.Node, error) {
	return &DataSource{value: config["value"]}, nil
}

func (d *DataSource) Schema() portschema.NodeSchema { return dataSourceSchema() }

func (d *DataSource) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"out": d.value}}
	})
}
