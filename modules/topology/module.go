// Package topology derives the basic manifold invariants that every
// other built-in module builds on: the chiral generation count, the
// orientation sum, and the effective Euler ratio.
package topology

import (
	"context"
	"fmt"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// Module computes manifold invariants from the seed topology constants.
type Module struct{}

// New returns the topology module.
func New() *Module {
	return &Module{}
}

// Name implements module.Module.
func (m *Module) Name() string { return "topology" }

// Description implements module.Module.
func (m *Module) Description() string {
	return "Manifold invariants derived from the seed topology constants."
}

// RequiredInputs implements module.Module.
func (m *Module) RequiredInputs() []string {
	return []string{"topology.b3", "topology.chi_eff"}
}

// OutputParams implements module.Module.
func (m *Module) OutputParams() []string {
	return []string{
		"particle.n_generations",
		"topology.orientation_sum",
		"topology.euler_ratio",
	}
}

// StatusTag implements module.StatusTagger.
func (m *Module) StatusTag() string { return "GEOMETRIC" }

// Run derives the invariants. Eight independent three-cycles share one
// chiral family, and half of the cycles carry orientation.
func (m *Module) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	b3, err := r.Int("topology.b3")
	if err != nil {
		return nil, err
	}
	chiEff, err := r.Float64("topology.chi_eff")
	if err != nil {
		return nil, err
	}

	if b3 == 0 {
		return nil, &module.ComputationError{
			Module: m.Name(),
			Path:   "topology.euler_ratio",
			Err:    fmt.Errorf("b3 is zero, the manifold is degenerate"),
		}
	}

	return map[string]any{
		"particle.n_generations":   b3 / 8,
		"topology.orientation_sum": b3 / 2,
		"topology.euler_ratio":     chiEff / float64(b3),
	}, nil
}
