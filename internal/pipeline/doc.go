// Package pipeline is the sequential driver: it builds a dependency
// graph from each module's declared inputs and outputs, orders the
// modules topologically, executes them one at a time against a shared
// registry, and collects a per-module pass/fail report.
//
// One module's failure never aborts the batch. Independent modules still
// run; only dependents of the failed module are skipped.
package pipeline
