package dag

import "sync"

// Graph is a directed acyclic graph of string-identified nodes. All
// methods are safe for concurrent use.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

// node is a single vertex with both edge directions indexed for O(1)
// traversal either way.
type node struct {
	id         string
	deps       map[string]*node
	dependents map[string]*node
}
