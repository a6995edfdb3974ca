package wfgraph

// Validate returns the set of invariant violations found in the graph:
// cycles, edges referencing missing nodes, unregistered node types,
// duplicate target-port bindings, and missing required inputs on
// non-disabled nodes. It does not check that an edge's ports exist or that
// their data types are compatible; AddEdge checks those when an edge is
// added. An empty result means no violation of the kinds above was found.
func (g *WorkflowGraph) Validate() []error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error

	targetBindings := make(map[string]string) // "nodeID:port" -> edgeID, detects duplicates missed by AddEdge
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.SourceNodeID]; !ok {
			errs = append(errs, &DanglingEdgeError{EdgeID: e.ID, NodeID: e.SourceNodeID})
			continue
		}
		if _, ok := g.Nodes[e.TargetNodeID]; !ok {
			errs = append(errs, &DanglingEdgeError{EdgeID: e.ID, NodeID: e.TargetNodeID})
			continue
		}
		if e.Disabled {
			continue
		}
		key := e.TargetNodeID + ":" + e.TargetPort
		if prior, exists := targetBindings[key]; exists && prior != e.ID {
			errs = append(errs, &DuplicateTargetPortError{NodeID: e.TargetNodeID, Port: e.TargetPort})
		}
		targetBindings[key] = e.ID
	}

	if g.hasCycleLocked() {
		errs = append(errs, &CycleError{})
	}

	for _, n := range g.Nodes {
		if n.Disabled {
			continue
		}
		schema, _, err := g.registry.GetRequired(n.NodeType)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		bound := make(map[string]bool)
		for _, e := range g.Edges {
			if !e.Disabled && e.TargetNodeID == n.ID {
				bound[e.TargetPort] = true
			}
		}
		for _, p := range schema.Inputs {
			if p.Required && p.Default == nil && !bound[p.Name] {
				errs = append(errs, &MissingRequiredInputError{NodeID: n.ID, Port: p.Name})
			}
		}
	}

	return errs
}

// hasCycleLocked runs a DFS with three-colour vertex marking over the
// whole graph. Caller holds g.mu (read or write).
func (g *WorkflowGraph) hasCycleLocked() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.Nodes))
	for id := range g.Nodes {
		color[id] = white
	}

	adjacency := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if e.Disabled {
			continue
		}
		adjacency[e.SourceNodeID] = append(adjacency[e.SourceNodeID], e.TargetNodeID)
	}

	var visit func(n string) bool
	visit = func(n string) bool {
		color[n] = gray
		for _, next := range adjacency[n] {
			switch color[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[n] = black
		return false
	}

	for id, c := range color {
		if c == white {
			if visit(id) {
				return true
			}
		}
	}
	return false
}
