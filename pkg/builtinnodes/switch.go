package builtinnodes

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

type switchCase struct {
	when      string
	program   *vm.Program
	isDefault bool
}

// Switch evaluates each configured case's "when" expression in order and
// reports the first match. A case marked is_default matches as soon as it
// is reached, so a default placed last catches every input no earlier case
// matched (control_switch.go's last-default-always-matches rule); cases
// after a default are never evaluated.
type Switch struct {
	cases []switchCase
}

func switchSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "switch",
		DisplayName: "Switch",
		Category:    "control",
		Version:     "1.0.0",
		Inputs:      []portschema.Port{{Name: "in", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny}},
		Outputs: []portschema.Port{
			{Name: "value", Direction: portschema.DirectionOut, DataType: portschema.DataTypeAny},
			{Name: "matched", Direction: portschema.DirectionOut, DataType: portschema.DataTypeBoolean},
			{Name: "output_path", Direction: portschema.DirectionOut, DataType: portschema.DataTypeString},
			{Name: "case_index", Direction: portschema.DirectionOut, DataType: portschema.DataTypeInteger},
		},
	}
}

func newSwitch(nodeID string, config map[string]interface{}) (node.Node, error) {
	raw, ok := config["cases"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("switch node: config field \"cases\" must be a non-empty array")
	}

	cases := make([]switchCase, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("switch node: cases[%d] must be an object", i)
		}
		isDefault, _ := m["is_default"].(bool)
		sc := switchCase{isDefault: isDefault}
		if when, _ := m["when"].(string); when != "" {
			program, err := expr.Compile(when, expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("switch node: cases[%d]: failed to compile \"when\": %w", i, err)
			}
			sc.when = when
			sc.program = program
		} else if !isDefault {
			return nil, fmt.Errorf("switch node: cases[%d] has no \"when\" and is not is_default", i)
		}
		cases = append(cases, sc)
	}
	return &Switch{cases: cases}, nil
}

func (s *Switch) Schema() portschema.NodeSchema { return switchSchema() }

func (s *Switch) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		env := buildExprEnv(inputs["in"], ctx)
		for i, sc := range s.cases {
			if sc.isDefault {
				return s.matchResult(inputs, i)
			}
			output, err := expr.Run(sc.program, env)
			if err != nil {
				return node.ExecutionResult{Success: false, Error: fmt.Sprintf("switch case %d evaluation failed: %v", i, err)}
			}
			if met, _ := output.(bool); met {
				return s.matchResult(inputs, i)
			}
		}
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{
			"value": inputs["in"], "matched": false, "output_path": "", "case_index": -1,
		}}
	})
}

func (s *Switch) matchResult(inputs map[string]interface{}, index int) node.ExecutionResult {
	return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{
		"value":       inputs["in"],
		"matched":     true,
		"output_path": fmt.Sprintf("case_%d", index),
		"case_index":  index,
	}}
}
