// Package logging provides structured logging capabilities for the workflow engine.
//
// # Overview
//
// The logging package implements a structured logging system on top of
// log/slog, with support for two output formats, log levels and contextual
// fields.
//
// # Features
//
//   - Structured logging: JSON (default) and text formats
//   - Log levels: DEBUG, INFO, WARN, ERROR
//   - Context fields: Execution ID, workflow ID, node ID, node type
//   - Level filtering: messages below Config.Level are dropped
//   - Thread-safe: Safe for concurrent use
//   - Flexible output: Write to any io.Writer
//
// # Log Levels
//
// The package supports standard log levels:
//
//   - DEBUG: Detailed diagnostic information
//   - INFO: General informational messages
//   - WARN: Warning messages for potential issues
//   - ERROR: Error messages for failures
//
// # Basic Usage
//
//	import "github.com/rtpro256/workflow-engine-core/pkg/logging"
//
//	// Create logger
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	})
//
//	// Log messages
//	logger.WithFields(map[string]interface{}{
//	    "workflow_id": "wf-123",
//	    "node_count": 42,
//	}).Info("Workflow started")
//
//	logger.WithNodeID("node-5").WithError(err).Error("Execution failed")
//
// # Context Integration
//
// WithContext stores the logger in a context and FromContext retrieves it,
// returning a new default logger when the context holds none:
//
//	ctx = logger.WithContext(ctx)
//	logging.FromContext(ctx).WithNodeType(types.NodeTypeHTTP).Info("Node executing")
//
// # Structured Fields
//
// Fields are attached with the With* methods, each of which returns a new
// Logger:
//
//	logger.WithFields(map[string]interface{}{
//	    "method": "GET",
//	    "url": "https://api.example.com",
//	    "status": 200,
//	    "duration_ms": 145,
//	}).Info("HTTP request completed")
//
// # Output Formats
//
// JSON Format (default):
//
//	{"time":"2024-01-15T10:30:00.000Z","level":"INFO","msg":"Workflow started","workflow_id":"wf-123","execution_id":"exec-456"}
//
// Text Format (Config.Pretty set):
//
//	time=2024-01-15T10:30:00.000Z level=INFO msg="Workflow started" workflow_id=wf-123 execution_id=exec-456
//
// # Configuration
//
// Logger configuration options:
//
//	config := logging.Config{
//	    Level:         "debug",   // Minimum level: debug, info, warn (or warning), error; anything else means info
//	    Output:        os.Stdout, // Where to write logs (nil means os.Stdout)
//	    Pretty:        false,     // true selects the text format instead of JSON
//	    IncludeCaller: true,      // Include file:line
//	}
//
// Fatal and Fatalf log at ERROR level and then exit the process with status 1.
//
// # Common Logging Patterns
//
// Workflow execution:
//
//	logger.WithWorkflowID(workflow.ID).
//	    WithField("node_count", len(workflow.Nodes)).
//	    Info("Workflow execution started")
//
// Node execution:
//
//	logger.WithNodeID(node.ID).
//	    WithNodeType(node.Type).
//	    WithField("inputs", inputs).
//	    Debug("Node executing")
//
// Error logging:
//
//	logger.WithNodeID(node.ID).
//	    WithError(err).
//	    WithField("retry_count", retries).
//	    Error("Node execution failed")
//
// Performance metrics:
//
//	logger.WithWorkflowID(workflow.ID).WithFields(map[string]interface{}{
//	    "duration_ms": elapsed.Milliseconds(),
//	    "nodes_executed": count,
//	}).Info("Workflow completed")
//
// # Best Practices
//
//   - Use structured fields instead of string formatting
//   - Include execution context (workflow_id, node_id, etc.)
//   - Log at appropriate levels (avoid debug in production)
//   - Add timing information for performance analysis
//   - Include error context (not just error message)
//   - Use consistent field names across the codebase
//
// # Thread Safety
//
// All logger operations are thread-safe and can be used concurrently
// from multiple goroutines without additional synchronization.
//
// # Testing
//
// For testing, use a logger with a buffer:
//
//	buf := &bytes.Buffer{}
//	logger := logging.New(logging.Config{
//	    Output: buf,
//	})
//
//	// Execute code
//	// Verify log output
//	assert.Contains(t, buf.String(), "expected message")
package logging
