// Command demo-conditional-execution walks through a few small graphs that
// use the condition and switch node types to route data, printing which
// path each run took. It exists to exercise pkg/builtinnodes's control-flow
// nodes end to end against a real engine run rather than just unit tests.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rtpro256/workflow-engine-core/pkg/builtinnodes"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

func main() {
	fmt.Println("=================================================")
	fmt.Println("Conditional Execution Demo")
	fmt.Println("=================================================")
	fmt.Println()

	demoAgeBasedRouting()
	demoSwitchRouting()
	demoNestedConditions()
}

// demoAgeBasedRouting routes a number through a condition node: age >= 18
// goes to an "adult" identity node, age < 18 goes to a "minor" one. The
// engine runs both identity nodes every time (branch pruning is a
// downstream concern, not the scheduler's); what changes per run is the
// condition node's "path" output.
func demoAgeBasedRouting() {
	fmt.Println("DEMO 1: Age-Based Routing")
	fmt.Println("----------------------------------")
	fmt.Println("Scenario: a condition node reports whether age >= 18")
	fmt.Println()

	for _, age := range []float64{25, 15} {
		fmt.Printf("age = %.0f:\n", age)

		registry := noderegistry.New()
		builtinnodes.RegisterAll(registry)

		graph := wfgraph.New("age-based-routing", registry)
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "user_age", NodeType: "data_source", Config: map[string]interface{}{"value": age}}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "age_check", NodeType: "condition", Config: map[string]interface{}{"condition": "input >= 18"}}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "adult_path", NodeType: "identity"}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "minor_path", NodeType: "identity"}))
		must(graph.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "user_age", SourcePort: "out", TargetNodeID: "age_check", TargetPort: "in"}))
		must(graph.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "age_check", SourcePort: "value", TargetNodeID: "adult_path", TargetPort: "in"}))
		must(graph.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "age_check", SourcePort: "value", TargetNodeID: "minor_path", TargetPort: "in"}))

		state := run(graph)
		printPath(state, "age_check", "path")
	}
	fmt.Println()
}

// demoSwitchRouting routes an HTTP-style status code through a switch
// node with three explicit cases and a default.
func demoSwitchRouting() {
	fmt.Println("DEMO 2: HTTP Status Code Routing with Switch")
	fmt.Println("------------------------------------------------")
	fmt.Println("Scenario: route on status_code via a switch node's cases")
	fmt.Println()

	for _, code := range []float64{200, 404, 503, 302} {
		fmt.Printf("status_code = %.0f:\n", code)

		registry := noderegistry.New()
		builtinnodes.RegisterAll(registry)

		cases := []interface{}{
			map[string]interface{}{"when": "input == 200"},
			map[string]interface{}{"when": "input == 404"},
			map[string]interface{}{"when": "input >= 500"},
			map[string]interface{}{"is_default": true},
		}

		graph := wfgraph.New("switch-routing", registry)
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "status_code", NodeType: "data_source", Config: map[string]interface{}{"value": code}}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "router", NodeType: "switch", Config: map[string]interface{}{"cases": cases}}))
		must(graph.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "status_code", SourcePort: "out", TargetNodeID: "router", TargetPort: "in"}))

		state := run(graph)
		printPath(state, "router", "output_path")
	}
	fmt.Println()
}

// demoNestedConditions evaluates two condition nodes side by side, one on
// age >= 18 and one on country == "US", and prints both paths. The two
// nodes are not connected: the graph does not gate the country check on
// the age check, so the combined outcome is read from the two outputs.
func demoNestedConditions() {
	fmt.Println("DEMO 3: Nested Conditional Logic")
	fmt.Println("------------------------------------")
	fmt.Println("Scenario: age >= 18 AND country == 'US' -> special offer")
	fmt.Println()

	type testCase struct {
		age     float64
		country string
	}
	for _, tc := range []testCase{{25, "US"}, {25, "UK"}, {15, "US"}} {
		fmt.Printf("age = %.0f, country = %s:\n", tc.age, tc.country)

		registry := noderegistry.New()
		builtinnodes.RegisterAll(registry)

		graph := wfgraph.New("nested-conditions", registry)
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "user_age", NodeType: "data_source", Config: map[string]interface{}{"value": tc.age}}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "user_country", NodeType: "data_source", Config: map[string]interface{}{"value": tc.country}}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "age_check", NodeType: "condition", Config: map[string]interface{}{"condition": "input >= 18"}}))
		must(graph.AddNode(wfgraph.WorkflowNode{ID: "country_check", NodeType: "condition", Config: map[string]interface{}{"condition": "input == \"US\""}}))
		must(graph.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "user_age", SourcePort: "out", TargetNodeID: "age_check", TargetPort: "in"}))
		must(graph.AddEdge(wfgraph.WorkflowEdge{SourceNodeID: "user_country", SourcePort: "out", TargetNodeID: "country_check", TargetPort: "in"}))

		state := run(graph)
		printPath(state, "age_check", "path")
		printPath(state, "country_check", "path")
	}
}

func run(graph *wfgraph.WorkflowGraph) *wfengine.Snapshot {
	engine := wfengine.New()
	result, err := engine.Execute(context.Background(), graph, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "execution error: %v\n", err)
		os.Exit(1)
	}
	snapshot, err := wfengine.SaveSnapshot(graph, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot error: %v\n", err)
		os.Exit(1)
	}
	return snapshot
}

func printPath(snapshot *wfengine.Snapshot, nodeID, outputKey string) {
	nodeState, ok := snapshot.NodeStates[nodeID]
	if !ok {
		fmt.Printf("  %s: did not execute\n", nodeID)
		return
	}
	fmt.Printf("  %s -> %v\n", nodeID, nodeState.Outputs[outputKey])
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "graph build error: %v\n", err)
		os.Exit(1)
	}
}
