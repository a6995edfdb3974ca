package builtinnodes

import (
	"fmt"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// validChartModes mirrors the small fixed set of rendering modes
// pkg/executor's visualization node accepts.
var validChartModes = map[string]bool{"bar": true, "line": true, "pie": true, "table": true, "raw": true}

// ChartRender packages its "in" input together with a configured display
// mode for a downstream viewer to consume; it performs no rendering
// itself, matching the teacher's visualization node which only tags data
// with a mode for a UI layer to pick up.
type ChartRender struct {
	mode string
}

func chartRenderSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "chart_render",
		DisplayName: "Chart Render",
		Category:    "output",
		Version:     "1.0.0",
		Inputs:      []portschema.Port{{Name: "in", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny, Required: true}},
		Outputs: []portschema.Port{
			{Name: "mode", Direction: portschema.DirectionOut, DataType: portschema.DataTypeString},
			{Name: "value", Direction: portschema.DirectionOut, DataType: portschema.DataTypeAny},
		},
	}
}

func newChartRender(nodeID string, config map[string]interface{}) (node.Node, error) {
	mode, _ := config["mode"].(string)
	if mode == "" {
		mode = "raw"
	}
	if !validChartModes[mode] {
		return nil, fmt.Errorf("chart_render node: invalid mode %q (must be one of bar, line, pie, table, raw)", mode)
	}
	return &ChartRender{mode: mode}, nil
}

func (c *ChartRender) Schema() portschema.NodeSchema { return chartRenderSchema() }

func (c *ChartRender) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{
			"mode": c.mode, "value": inputs["in"],
		}}
	})
}
