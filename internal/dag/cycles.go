package dag

// FindCycle checks the graph for cycles. When one exists it returns the
// cycle as a closed walk of node IDs, e.g. [a b c a]; otherwise it
// returns nil. Detection is deterministic: nodes and edges are visited
// in sorted order.
func (g *Graph) FindCycle() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with two marker sets:
	// permanent: fully explored nodes known not to be on a cycle.
	// temporary: nodes on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var stack []string
	var cycle []string

	var visit func(n *node) bool
	visit = func(n *node) bool {
		if permanent[n.id] {
			return false
		}
		if temporary[n.id] {
			// The node is already on our recursion stack: unwind the
			// stack from its first occurrence and close the walk.
			start := 0
			for i, id := range stack {
				if id == n.id {
					start = i
					break
				}
			}
			cycle = append(append([]string{}, stack[start:]...), n.id)
			return true
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, id := range sortedIDs(n.dependents) {
			if visit(n.dependents[id]) {
				return true
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true
		return false
	}

	for _, id := range sortedIDs(g.nodes) {
		if !permanent[id] {
			if visit(g.nodes[id]) {
				return cycle
			}
		}
	}

	return nil
}
