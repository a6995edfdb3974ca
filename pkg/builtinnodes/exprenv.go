package builtinnodes

import (
	"fmt"
	"strings"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
)

// buildExprEnv assembles the expr-lang evaluation environment shared by
// condition, switch and filter: the node's own input value under "item"
// and "input", the execution's variables under "variables" (and spread
// into the top level for convenience), plus a handful of string helpers.
func buildExprEnv(item interface{}, ctx node.ExecutionContext) map[string]interface{} {
	env := make(map[string]interface{})

	env["contains"] = func(s, substr string) bool { return strings.Contains(s, substr) }
	env["startsWith"] = func(s, prefix string) bool { return strings.HasPrefix(s, prefix) }
	env["endsWith"] = func(s, suffix string) bool { return strings.HasSuffix(s, suffix) }
	env["upper"] = strings.ToUpper
	env["lower"] = strings.ToLower
	env["trim"] = strings.TrimSpace

	if ctx.Variables != nil {
		env["variables"] = ctx.Variables
		for k, v := range ctx.Variables {
			if k != "item" && k != "input" && k != "variables" {
				env[k] = v
			}
		}
	}

	if item != nil {
		env["item"] = item
		env["input"] = item
	}

	return env
}

func requireString(config map[string]interface{}, key string) (string, error) {
	v, ok := config[key]
	if !ok {
		return "", fmt.Errorf("missing required config field %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("config field %q must be a non-empty string", key)
	}
	return s, nil
}
