package module

import "context"

// Reader is the read-only registry surface a module sees during Run.
// *registry.Registry satisfies it; writing outputs back is the driver's
// job, never the module's.
type Reader interface {
	Get(path string) (any, error)
	GetOr(path string, fallback any) any
	Has(path string) bool
	Float64(path string) (float64, error)
	Int(path string) (int, error)
}

// Module is one self-contained computation with declared dependencies.
// Run must be a pure function of the registry's observable state: no
// hidden globals, no randomness, no ordering effects beyond the
// parameters it declares.
type Module interface {
	// Name identifies the module; it doubles as its node ID in the
	// dependency graph, so it must be unique within a catalog.
	Name() string

	// Description is a one-line human summary for listings.
	Description() string

	// RequiredInputs lists the paths that must be present in the
	// registry before Run is invoked, in declaration order.
	RequiredInputs() []string

	// OutputParams lists the paths Run may return. Returned keys are
	// checked against this list after every invocation; a subset is
	// fine, an undeclared key is a contract violation.
	OutputParams() []string

	// Run computes the module's outputs from the registry's current
	// state and returns them as a flat path-to-value map.
	Run(ctx context.Context, r Reader) (map[string]any, error)
}

// StatusTagger is optionally implemented by modules that want their
// outputs stored under a status tag other than the pipeline default.
type StatusTagger interface {
	StatusTag() string
}
