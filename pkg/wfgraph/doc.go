// Package wfgraph models an immutable-after-validation DAG of workflow
// nodes and typed edges, with the JSON wire format the engine and HTTP
// surface exchange it in.
package wfgraph
