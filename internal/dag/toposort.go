package dag

import (
	"fmt"
	"sort"
)

// TopologicalOrder returns a valid execution order for the graph using
// Kahn's algorithm. The frontier of ready nodes is kept sorted, so among
// equally-ready nodes the order is lexicographic and therefore stable
// across runs. An error is returned when a cycle prevents completion.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	pending := make(map[string]int, len(g.nodes))
	var ready []string
	for id, n := range g.nodes {
		pending[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		released := false
		for _, depID := range sortedIDs(g.nodes[id].dependents) {
			pending[depID]--
			if pending[depID] == 0 {
				ready = append(ready, depID)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("graph contains a cycle; no topological order exists")
	}

	return order, nil
}
