package builtinnodes_test

import (
	"context"
	"testing"

	"github.com/rtpro256/workflow-engine-core/pkg/builtinnodes"
	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
)

func newCtx() node.ExecutionContext {
	return node.ExecutionContext{WorkflowID: "wf", ExecutionID: "exec", NodeID: "n", Context: context.Background()}
}

func build(t *testing.T, r *noderegistry.Registry, nodeType string, config map[string]interface{}) node.Node {
	t.Helper()
	_, ctor, err := r.GetRequired(nodeType)
	if err != nil {
		t.Fatalf("GetRequired(%s): %v", nodeType, err)
	}
	n, err := ctor("n", config)
	if err != nil {
		t.Fatalf("constructor(%s): %v", nodeType, err)
	}
	return n
}

func registry(t *testing.T) *noderegistry.Registry {
	r := noderegistry.New()
	builtinnodes.RegisterAll(r)
	return r
}

func TestDataSource_EmitsConfiguredValue(t *testing.T) {
	r := registry(t)
	n := build(t, r, "data_source", map[string]interface{}{"value": 42})
	result := n.Execute(nil, newCtx())
	if !result.Success || result.Outputs["out"] != 42 {
		t.Fatalf("result = %+v, want out:42", result)
	}
}

func TestIdentity_ForwardsInput(t *testing.T) {
	r := registry(t)
	n := build(t, r, "identity", nil)
	result := n.Execute(map[string]interface{}{"in": "hello"}, newCtx())
	if !result.Success || result.Outputs["out"] != "hello" {
		t.Fatalf("result = %+v, want out:hello", result)
	}
}

func TestCondition_TrueAndFalsePaths(t *testing.T) {
	r := registry(t)
	n := build(t, r, "condition", map[string]interface{}{"condition": "item > 10"})

	result := n.Execute(map[string]interface{}{"in": 20}, newCtx())
	if !result.Success || result.Outputs["path"] != "true_path" || result.Outputs["condition_met"] != true {
		t.Fatalf("result = %+v, want path:true_path condition_met:true", result)
	}

	result = n.Execute(map[string]interface{}{"in": 5}, newCtx())
	if !result.Success || result.Outputs["path"] != "false_path" || result.Outputs["condition_met"] != false {
		t.Fatalf("result = %+v, want path:false_path condition_met:false", result)
	}
}

func TestCondition_InvalidExpressionFailsAtConstruction(t *testing.T) {
	r := registry(t)
	_, ctor, err := r.GetRequired("condition")
	if err != nil {
		t.Fatalf("GetRequired: %v", err)
	}
	if _, err := ctor("n", map[string]interface{}{"condition": "this is not valid expr ((("}); err == nil {
		t.Fatalf("expected compile error for invalid expression")
	}
}

func TestSwitch_MatchesFirstTrueCase(t *testing.T) {
	r := registry(t)
	cases := []interface{}{
		map[string]interface{}{"when": "item == \"a\""},
		map[string]interface{}{"when": "item == \"b\""},
		map[string]interface{}{"is_default": true},
	}
	n := build(t, r, "switch", map[string]interface{}{"cases": cases})

	result := n.Execute(map[string]interface{}{"in": "b"}, newCtx())
	if !result.Success || result.Outputs["case_index"] != 1 || result.Outputs["matched"] != true {
		t.Fatalf("result = %+v, want case_index:1 matched:true", result)
	}

	result = n.Execute(map[string]interface{}{"in": "z"}, newCtx())
	if !result.Success || result.Outputs["case_index"] != 2 {
		t.Fatalf("result = %+v, want default case_index:2", result)
	}
}

func TestFilter_KeepsMatchingElements(t *testing.T) {
	r := registry(t)
	n := build(t, r, "filter", map[string]interface{}{"condition": "item > 2"})

	result := n.Execute(map[string]interface{}{"in": []interface{}{1, 2, 3, 4}}, newCtx())
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	out := result.Outputs["value"].([]interface{})
	if len(out) != 2 || out[0] != 3 || out[1] != 4 {
		t.Errorf("filtered = %v, want [3 4]", out)
	}
	if result.Outputs["count"] != 2 {
		t.Errorf("count = %v, want 2", result.Outputs["count"])
	}
}

func TestFilter_ExtractsArrayFromWrapperMap(t *testing.T) {
	r := registry(t)
	n := build(t, r, "filter", map[string]interface{}{"condition": "item > 2"})

	result := n.Execute(map[string]interface{}{"in": map[string]interface{}{"items": []interface{}{1, 5}}}, newCtx())
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	out := result.Outputs["value"].([]interface{})
	if len(out) != 1 || out[0] != 5 {
		t.Errorf("filtered = %v, want [5]", out)
	}
}

func TestJSONReformat_JSONOutput(t *testing.T) {
	r := registry(t)
	n := build(t, r, "json_reformat", map[string]interface{}{"output_type": "json"})
	result := n.Execute(map[string]interface{}{"in": map[string]interface{}{"a": 1}}, newCtx())
	if !result.Success || result.Outputs["out"] != `{"a":1}` {
		t.Fatalf("result = %+v, want out: {\"a\":1}", result)
	}
}

func TestJSONReformat_CSVOutput(t *testing.T) {
	r := registry(t)
	n := build(t, r, "json_reformat", map[string]interface{}{"output_type": "csv"})
	rows := []interface{}{
		map[string]interface{}{"a": 1, "b": "x"},
		map[string]interface{}{"a": 2, "b": "y"},
	}
	result := n.Execute(map[string]interface{}{"in": rows}, newCtx())
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	want := "a,b\n1,x\n2,y\n"
	if result.Outputs["out"] != want {
		t.Errorf("out = %q, want %q", result.Outputs["out"], want)
	}
}

func TestChartRender_DefaultsToRawMode(t *testing.T) {
	r := registry(t)
	n := build(t, r, "chart_render", nil)
	result := n.Execute(map[string]interface{}{"in": 7}, newCtx())
	if !result.Success || result.Outputs["mode"] != "raw" || result.Outputs["value"] != 7 {
		t.Fatalf("result = %+v, want mode:raw value:7", result)
	}
}

func TestChartRender_RejectsUnknownMode(t *testing.T) {
	r := registry(t)
	_, ctor, _ := r.GetRequired("chart_render")
	if _, err := ctor("n", map[string]interface{}{"mode": "scatter3d"}); err == nil {
		t.Fatalf("expected error for unsupported mode")
	}
}

func TestToolInvoke_MergesConfigAndInputArgsInputWins(t *testing.T) {
	builtinnodes.RegisterTool("echo_args", func(args map[string]interface{}) (interface{}, error) {
		return args, nil
	})
	r := registry(t)
	n := build(t, r, "tool_invoke", map[string]interface{}{
		"toolName": "echo_args",
		"toolArgs": map[string]interface{}{"a": "config", "b": "config"},
	})
	result := n.Execute(map[string]interface{}{"args": map[string]interface{}{"b": "input"}}, newCtx())
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	got := result.Outputs["result"].(map[string]interface{})
	if got["a"] != "config" || got["b"] != "input" {
		t.Errorf("merged args = %v, want a:config b:input", got)
	}
}

func TestToolInvoke_UnknownToolFails(t *testing.T) {
	r := registry(t)
	n := build(t, r, "tool_invoke", map[string]interface{}{"toolName": "does_not_exist"})
	result := n.Execute(nil, newCtx())
	if result.Success {
		t.Fatalf("expected failure for unknown tool")
	}
}

func TestToolInvoke_MissingToolNameFailsAtConstruction(t *testing.T) {
	r := registry(t)
	_, ctor, _ := r.GetRequired("tool_invoke")
	if _, err := ctor("n", map[string]interface{}{}); err == nil {
		t.Fatalf("expected error for missing toolName")
	}
}

func TestRegisterAll_RegistersEveryBuiltinType(t *testing.T) {
	r := registry(t)
	want := []string{"data_source", "identity", "condition", "switch", "filter", "http_request", "json_reformat", "chart_render", "tool_invoke"}
	for _, nt := range want {
		if _, _, err := r.GetRequired(nt); err != nil {
			t.Errorf("node type %q not registered: %v", nt, err)
		}
	}
}
