// Package module defines the contract every computation module
// satisfies: declared required inputs, declared output parameters, and a
// Run function that reads the registry and returns a flat map of output
// paths to values.
//
// The contract is deliberately strict in one place only: a module
// consumes its declared inputs through the failing registry accessors,
// while undeclared optional paths may be read through GetOr as an
// explicit escape hatch. Soft reads never create dependency edges.
package module
