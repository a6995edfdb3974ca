package wfgraph

import "fmt"

// DuplicateNodeError is returned by AddNode when the node ID already
// exists in the graph.
type DuplicateNodeError struct {
	NodeID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node already exists: %q", e.NodeID)
}

// DanglingEdgeError is returned when an edge references a node that is not
// present in the graph.
type DanglingEdgeError struct {
	EdgeID string
	NodeID string
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("edge %q references missing node %q", e.EdgeID, e.NodeID)
}

// UnknownPortError is returned when an edge references a port not declared
// on its node's schema.
type UnknownPortError struct {
	NodeID string
	Port   string
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("node %q has no port %q", e.NodeID, e.Port)
}

// IncompatiblePortTypesError is returned when an edge's source and target
// port dataTypes are neither equal nor `any`.
type IncompatiblePortTypesError struct {
	SourceNodeID, SourcePort string
	SourceType               interface{}
	TargetNodeID, TargetPort string
	TargetType               interface{}
}

func (e *IncompatiblePortTypesError) Error() string {
	return fmt.Sprintf("incompatible port types: %s.%s (%v) -> %s.%s (%v)",
		e.SourceNodeID, e.SourcePort, e.SourceType, e.TargetNodeID, e.TargetPort, e.TargetType)
}

// DuplicateTargetPortError is returned when a second edge targets a port
// that is already bound by another edge.
type DuplicateTargetPortError struct {
	NodeID string
	Port   string
}

func (e *DuplicateTargetPortError) Error() string {
	return fmt.Sprintf("target port already bound: %s.%s", e.NodeID, e.Port)
}

// CycleError is returned when an edge would create, or has created, a
// cycle in the graph.
type CycleError struct{}

func (e *CycleError) Error() string {
	return "graph contains a cycle"
}

// MissingRequiredInputError is returned by Validate when a non-disabled
// node's required input port has neither a connected edge nor a default.
type MissingRequiredInputError struct {
	NodeID string
	Port   string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("node %q missing required input %q", e.NodeID, e.Port)
}
