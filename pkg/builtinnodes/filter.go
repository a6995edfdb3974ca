package builtinnodes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// arrayKeys lists the map keys Filter tries, in order, to find an array to
// iterate when its "in" input isn't already a []interface{}.
var arrayKeys = []string{"range", "array", "items", "data", "values"}

// Filter keeps elements of its "in" array for which the configured
// condition evaluates true, per element under "item".
type Filter struct {
	condition string
	program   *vm.Program
}

func filterSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "filter",
		DisplayName: "Filter",
		Category:    "control",
		Version:     "1.0.0",
		Inputs:      []portschema.Port{{Name: "in", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny, Required: true}},
		Outputs: []portschema.Port{
			{Name: "value", Direction: portschema.DirectionOut, DataType: portschema.DataTypeArray},
			{Name: "count", Direction: portschema.DirectionOut, DataType: portschema.DataTypeInteger},
		},
	}
}

func newFilter(nodeID string, config map[string]interface{}) (node.Node, error) {
	condition, err := requireString(config, "condition")
	if err != nil {
		return nil, err
	}
	program, err := expr.Compile(condition, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter node: failed to compile condition: %w", err)
	}
	return &Filter{condition: condition, program: program}, nil
}

func (f *Filter) Schema() portschema.NodeSchema { return filterSchema() }

func (f *Filter) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		arr, ok := inputs["in"].([]interface{})
		if !ok {
			arr, ok = extractArray(inputs["in"])
			if !ok {
				return node.ExecutionResult{Success: false, Error: fmt.Sprintf("filter node: input is not an array and has no extractable array field (tried %v)", arrayKeys)}
			}
		}

		out := make([]interface{}, 0, len(arr))
		for i, item := range arr {
			env := buildExprEnv(item, ctx)
			env["index"] = i
			result, err := expr.Run(f.program, env)
			if err != nil {
				return node.ExecutionResult{Success: false, Error: fmt.Sprintf("filter node: condition failed at index %d: %v", i, err)}
			}
			if keep, _ := result.(bool); keep {
				out = append(out, item)
			}
		}
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"value": out, "count": len(out)}}
	})
}

func extractArray(v interface{}) ([]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	for _, key := range arrayKeys {
		if arr, ok := m[key].([]interface{}); ok {
			return arr, true
		}
	}
	return nil, false
}
