// Package portschema describes a node type's declarative input/output ports
// and the JSON schema its config map must satisfy. It replaces a class
// hierarchy with a capability set: a node type is data (a NodeSchema), not a
// base class an implementation inherits from.
package portschema
