// Package planner computes the execution order of a workflow graph as a
// sequence of layers — maximal sets of nodes with no dependency between
// them — via Kahn's algorithm, generalised from a flat order into layers.
package planner
