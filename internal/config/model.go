package config

import "github.com/hashicorp/hcl/v2"

// Model is the unified representation of one theory program.
type Model struct {
	Seeds   []*Seed
	Derives []*Derive
	Run     *Run
	Export  *Export
}

// Seed pins one parameter to a literal value before any module runs.
type Seed struct {
	Path     string
	Value    any
	Source   string
	Status   string
	Metadata map[string]any
}

// Derive is a formula-defined computation producing a single parameter.
// The formula stays an hcl.Expression so it can be evaluated lazily
// against the registry state at run time.
type Derive struct {
	Path        string
	Formula     hcl.Expression
	Description string
	Status      string

	// Inputs are the parameter paths the formula references, sorted and
	// deduplicated. They become the derive module's required inputs.
	Inputs []string
}

// Run selects which catalog modules execute. A nil Run means all of
// them.
type Run struct {
	Modules []string
}

// Export names the file the final registry state is written to. The
// extension selects the format: .yaml/.yml for YAML, anything else JSON.
type Export struct {
	Path   string
	Pretty bool
}
