package builtinnodes

import (
	"fmt"
	"sync"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// ToolFunc is a callable tool an agent platform exposes to workflows. It
// receives the merged argument map and returns a result or an error.
type ToolFunc func(args map[string]interface{}) (interface{}, error)

// tools is the process-wide registry of invocable tools, populated through
// RegisterTool by whatever embeds the engine before any graph using a
// tool_invoke node runs. It is deliberately separate from noderegistry: a
// node type is registered once per process, while a tool is looked up by
// name each time a tool_invoke node executes.
var (
	toolsMu sync.RWMutex
	tools   = map[string]ToolFunc{}
)

// RegisterTool adds or replaces a tool under name.
func RegisterTool(name string, fn ToolFunc) {
	toolsMu.Lock()
	defer toolsMu.Unlock()
	tools[name] = fn
}

func lookupTool(name string) (ToolFunc, bool) {
	toolsMu.RLock()
	defer toolsMu.RUnlock()
	fn, ok := tools[name]
	return fn, ok
}

// ToolInvoke calls a named tool with arguments merged from its config and
// its "args" input (input wins on key collision), per test_tool_node.py's
// execute semantics.
type ToolInvoke struct {
	toolName string
	toolArgs map[string]interface{}
}

func toolInvokeSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "tool_invoke",
		DisplayName: "Tool",
		Category:    "action",
		Version:     "1.0.0",
		Inputs: []portschema.Port{
			{Name: "args", Direction: portschema.DirectionIn, DataType: portschema.DataTypeObject},
			{Name: "input", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny},
		},
		Outputs: []portschema.Port{
			{Name: "result", Direction: portschema.DirectionOut, DataType: portschema.DataTypeAny},
			{Name: "success", Direction: portschema.DirectionOut, DataType: portschema.DataTypeBoolean},
		},
	}
}

func newToolInvoke(nodeID string, config map[string]interface{}) (node.Node, error) {
	toolName, _ := config["toolName"].(string)
	if toolName == "" {
		return nil, fmt.Errorf("toolName is required")
	}
	toolArgs, _ := config["toolArgs"].(map[string]interface{})
	return &ToolInvoke{toolName: toolName, toolArgs: toolArgs}, nil
}

func (t *ToolInvoke) Schema() portschema.NodeSchema { return toolInvokeSchema() }

func (t *ToolInvoke) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		fn, ok := lookupTool(t.toolName)
		if !ok {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("tool %q not found", t.toolName)}
		}

		args := make(map[string]interface{}, len(t.toolArgs))
		for k, v := range t.toolArgs {
			args[k] = v
		}
		if fromInput, ok := inputs["args"].(map[string]interface{}); ok {
			for k, v := range fromInput {
				args[k] = v
			}
		}
		if input, ok := inputs["input"]; ok && input != nil {
			args["input"] = input
		}

		result, err := fn(args)
		if err != nil {
			return node.ExecutionResult{Success: false, Error: err.Error(), Metadata: node.ResultMetadata{Retryable: true}}
		}
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"result": result, "success": true}}
	})
}
