package noderegistry

import "fmt"

// UnknownNodeTypeError is returned by GetRequired when a node type tag has
// no registered binding.
type UnknownNodeTypeError struct {
	NodeType string
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown node type: %q", e.NodeType)
}
