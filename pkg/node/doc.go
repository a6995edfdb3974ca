// Package node defines the contract a node type implements: a declarative
// schema plus an execute function. It is the capability-set replacement for
// a class hierarchy — the registry stores schemas and constructors, never
// base classes.
package node
