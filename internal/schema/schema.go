// Package schema holds the HCL-tagged structs a theory program file
// decodes into. Translation into the format-agnostic config model lives
// in internal/hcl.
package schema

import "github.com/hashicorp/hcl/v2"

// Seed represents a `seed "path" { ... }` block: one pinned parameter.
// Value stays an expression so the loader can report non-constant values
// with a proper diagnostic instead of a decode failure.
type Seed struct {
	Path     string         `hcl:"path,label"`
	Value    hcl.Expression `hcl:"value"`
	Source   string         `hcl:"source,optional"`
	Status   string         `hcl:"status,optional"`
	Metadata hcl.Expression `hcl:"metadata,optional"`
}

// Derive represents a `derive "path" { ... }` block: a formula-defined
// parameter whose inputs are inferred from the formula's traversals.
type Derive struct {
	Path        string         `hcl:"path,label"`
	Formula     hcl.Expression `hcl:"formula"`
	Description string         `hcl:"description,optional"`
	Status      string         `hcl:"status,optional"`
}

// Run represents the optional `run { ... }` block selecting which
// catalog modules execute.
type Run struct {
	Modules []string `hcl:"modules,optional"`
}

// Export represents the optional `export { ... }` block.
type Export struct {
	Path   string `hcl:"path"`
	Pretty bool   `hcl:"pretty,optional"`
}

// Program is the top-level structure of one program file.
type Program struct {
	Seeds   []*Seed   `hcl:"seed,block"`
	Derives []*Derive `hcl:"derive,block"`
	Run     *Run      `hcl:"run,block"`
	Export  *Export   `hcl:"export,block"`
}
