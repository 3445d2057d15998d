package pipeline

import (
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/registry"
)

// Options tunes how module outputs are written back to the registry.
type Options struct {
	// DefaultStatus is the status tag for outputs of modules that do not
	// implement module.StatusTagger. Defaults to "DERIVED".
	DefaultStatus string

	// SourcePrefix prefixes the provenance string recorded for every
	// written output, as in "module:topology". Defaults to "module".
	SourcePrefix string
}

// Pipeline executes a fixed set of modules against one registry.
type Pipeline struct {
	reg     *registry.Registry
	modules []module.Module
	opts    Options
}

// New creates a Pipeline over the given registry and modules. Zero-value
// option fields are filled with their defaults.
func New(reg *registry.Registry, modules []module.Module, opts Options) *Pipeline {
	if opts.DefaultStatus == "" {
		opts.DefaultStatus = "DERIVED"
	}
	if opts.SourcePrefix == "" {
		opts.SourcePrefix = "module"
	}

	return &Pipeline{
		reg:     reg,
		modules: modules,
		opts:    opts,
	}
}

// statusTag returns the tag a module's outputs are stored under.
func (p *Pipeline) statusTag(m module.Module) string {
	if tagger, ok := m.(module.StatusTagger); ok && tagger.StatusTag() != "" {
		return tagger.StatusTag()
	}
	return p.opts.DefaultStatus
}
