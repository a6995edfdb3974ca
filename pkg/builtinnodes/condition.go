package builtinnodes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// Condition evaluates a boolean expr-lang expression against its "in"
// input and reports which of two downstream paths the graph should treat
// as live. The engine itself doesn't prune edges on condition_met — a
// conditional edge consumer is expected to check the companion "path"
// output and skip itself when it doesn't match, matching spec's note that
// branch pruning is a node concern, not a scheduler concern.
type Condition struct {
	expression string
	program    *vm.Program
}

func conditionSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "condition",
		DisplayName: "Condition",
		Category:    "control",
		Version:     "1.0.0",
		Inputs:      []portschema.Port{{Name: "in", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny}},
		Outputs: []portschema.Port{
			{Name: "value", Direction: portschema.DirectionOut, DataType: portschema.DataTypeAny},
			{Name: "condition_met", Direction: portschema.DirectionOut, DataType: portschema.DataTypeBoolean},
			{Name: "path", Direction: portschema.DirectionOut, DataType: portschema.DataTypeString},
		},
	}
}

func newCondition(nodeID string, config map[string]interface{}) (node.Node, error) {
	expression, err := requireString(config, "condition")
	if err != nil {
		return nil, err
	}
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("condition node: failed to compile expression: %w", err)
	}
	return &Condition{expression: expression, program: program}, nil
}

func (c *Condition) Schema() portschema.NodeSchema { return conditionSchema() }

func (c *Condition) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		env := buildExprEnv(inputs["in"], ctx)
		output, err := expr.Run(c.program, env)
		if err != nil {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("condition evaluation failed: %v", err)}
		}
		met, ok := output.(bool)
		if !ok {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("condition %q did not evaluate to a boolean", c.expression)}
		}
		path := "false_path"
		if met {
			path = "true_path"
		}
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{
			"value": inputs["in"], "condition_met": met, "path": path,
		}}
	})
}
