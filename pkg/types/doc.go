// Package types provides shared type definitions for the Thaiyyal workflow engine.
//
// # Overview
//
// This package contains all core data structures and type definitions used across
// the workflow engine. It serves as the foundation for avoiding circular dependencies
// between other packages while providing a consistent type system.
//
// # Key Components
//
// Node Types: Define the various types of workflow nodes (operation, control flow,
// error handling, etc.)
//
// Workflow Structure: Core data structures for workflows, nodes, edges, and execution state
//
// Execution Context: Context keys and helpers for passing execution metadata
//
// Data Types: Type system for runtime values (string, number, boolean, array, object, null)
//
// # Node Categories
//
// The workflow engine supports several categories of nodes:
//
//   - Basic I/O: Number, TextInput, Visualization
//   - Operations: Math operations, text manipulation, data transformation
//   - HTTP: HTTP request execution
//   - Control Flow: Condition, ForEach, WhileLoop, Switch
//   - Parallel Processing: Parallel, Join, Split
//   - State Management: Variable, Accumulator, Counter, Cache
//   - Array Processing: Filter, Map, Reduce, Sort, Slice, etc.
//   - Error Handling: Retry, TryCatch, Timeout
//   - Context: ContextVariable, ContextConstant
//
// # Usage Example
//
//	value, op := 42.0, "add"
//	payload := types.Payload{
//	    Nodes: []types.Node{
//	        {ID: "1", Type: types.NodeTypeNumber, Data: &types.NumberData{Value: &value}},
//	        {ID: "2", Type: types.NodeTypeOperation, Data: &types.OperationData{Op: &op}},
//	    },
//	    Edges: []types.Edge{
//	        {ID: "e1", Source: "1", Target: "2"},
//	    },
//	}
//
// # Design Principles
//
//   - Minimal dependencies: the only workflow package types imports is config, for the Config alias
//   - Immutability: Core types are designed to be immutable where possible
//   - Extensibility: Easy to add new node types without breaking changes
//   - Type safety: Strong typing for workflow components and runtime values
//
// # Thread Safety
//
// The types defined in this package are generally not thread-safe for mutation.
// Concurrent access should be coordinated by the caller using appropriate synchronization.
//
// # Backward Compatibility
//
// This package maintains backward compatibility. Breaking changes are avoided, and
// deprecation warnings are provided when types are phased out.
package types
