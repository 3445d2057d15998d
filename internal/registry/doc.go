// Package registry implements the shared parameter registry: a typed
// key-value store mapping dot-namespaced paths (e.g. "topology.b3") to
// values with source/status provenance.
//
// Computation modules read seed values and upstream outputs from the
// registry; the pipeline writes each module's outputs back so downstream
// modules can consume them. The registry itself enforces nothing beyond
// presence: status and source tags are recorded verbatim for export and
// narrative, never consulted for control flow.
package registry
