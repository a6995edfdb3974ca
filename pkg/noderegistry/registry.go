package noderegistry

import (
	"sync"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// binding pairs a node type's schema with the constructor that builds
// instances of it.
type binding struct {
	schema      portschema.NodeSchema
	constructor node.Constructor
}

// Registry is a process-wide mapping from nodeType to (schema,
// constructor). Writes are guarded by a mutex; reads use the same RWMutex
// so a registration in flight is never observed half-applied.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]binding
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{bindings: make(map[string]binding)}
}

// Register binds nodeType to schema and constructor. Registration is
// idempotent: registering the same nodeType again replaces the binding.
func (r *Registry) Register(nodeType string, schema portschema.NodeSchema, constructor node.Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[nodeType] = binding{schema: schema, constructor: constructor}
}

// Get looks up a nodeType's binding without failing if absent.
func (r *Registry) Get(nodeType string) (portschema.NodeSchema, node.Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[nodeType]
	if !ok {
		return portschema.NodeSchema{}, nil, false
	}
	return b.schema, b.constructor, true
}

// GetRequired looks up a nodeType's binding, failing with an
// *UnknownNodeTypeError if the type was never registered.
func (r *Registry) GetRequired(nodeType string) (portschema.NodeSchema, node.Constructor, error) {
	schema, ctor, ok := r.Get(nodeType)
	if !ok {
		return portschema.NodeSchema{}, nil, &UnknownNodeTypeError{NodeType: nodeType}
	}
	return schema, ctor, nil
}

// AllSchemas returns every registered NodeSchema, in no particular order.
func (r *Registry) AllSchemas() []portschema.NodeSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]portschema.NodeSchema, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b.schema)
	}
	return out
}

// Default is the process-wide registry used by the HTTP server and by
// built-in node self-registration via init(). Tests that need isolation
// should construct their own Registry with New() instead.
var Default = New()
