// Package gauge computes the gauge-sector couplings from the topology
// constants: the geometric inverse fine-structure constant, the weak
// mixing angle, and the strong coupling at the Z mass.
package gauge

import (
	"context"
	"fmt"
	"math"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// Module computes the gauge couplings.
type Module struct{}

// New returns the gauge module.
func New() *Module {
	return &Module{}
}

// Name implements module.Module.
func (m *Module) Name() string { return "gauge" }

// Description implements module.Module.
func (m *Module) Description() string {
	return "Gauge couplings from the compactification topology."
}

// RequiredInputs implements module.Module.
func (m *Module) RequiredInputs() []string {
	return []string{"topology.b3", "topology.chi_eff"}
}

// OutputParams implements module.Module.
func (m *Module) OutputParams() []string {
	return []string{
		"gauge.alpha_inv_geometric",
		"gauge.sin2_theta_w",
		"gauge.alpha_s_mz",
	}
}

// Run evaluates the closed forms. The inverse fine-structure constant
// is purely geometric; the mixing angle and strong coupling follow from
// the cycle counts.
func (m *Module) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	b3, err := r.Float64("topology.b3")
	if err != nil {
		return nil, err
	}
	chiEff, err := r.Float64("topology.chi_eff")
	if err != nil {
		return nil, err
	}

	if chiEff <= 0 {
		return nil, &module.ComputationError{
			Module: m.Name(),
			Path:   "gauge.alpha_s_mz",
			Err:    fmt.Errorf("chi_eff must be positive, got %v", chiEff),
		}
	}

	pi := math.Pi
	return map[string]any{
		"gauge.alpha_inv_geometric": 4*pi*pi*pi + pi*pi + pi,
		"gauge.sin2_theta_w":        b3 / (b3 + chiEff/2),
		"gauge.alpha_s_mz":          1 / math.Sqrt(chiEff/2),
	}, nil
}
