// Package builtinnodes implements the node types that ship with the
// engine out of the box: static data sources, passthrough, HTTP calls,
// data reformatting, chart rendering, tool invocation, and the control-flow
// trio (condition, switch, filter). Each type self-registers into
// noderegistry.Default via RegisterAll, called once from the package's
// init; cmd/server imports the package for that side effect.
package builtinnodes
