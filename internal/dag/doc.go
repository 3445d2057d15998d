// Package dag provides the dependency graph used to order module
// execution: nodes keyed by module name, directed edges from producers
// to consumers, cycle detection, and a deterministic topological order.
package dag
