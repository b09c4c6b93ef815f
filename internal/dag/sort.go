package dag

// TopologicalSort returns every node ID ordered so that each node comes after
// all of its dependencies. Among nodes that are ready at the same time, the
// one inserted first wins, so a graph built from an already valid sequence
// sorts back to that sequence.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if err := g.detectCycles(); err != nil {
		return nil, err
	}

	pending := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		pending[id] = len(n.deps)
	}

	done := make(map[string]bool, len(g.nodes))
	sorted := make([]string, 0, len(g.nodes))
	for len(sorted) < len(g.order) {
		// The cycle check above guarantees at least one ready node per pass.
		for _, id := range g.order {
			if done[id] || pending[id] > 0 {
				continue
			}
			done[id] = true
			sorted = append(sorted, id)
			for dependent := range g.nodes[id].dependents {
				pending[dependent]--
			}
			break
		}
	}

	return sorted, nil
}
