// Package cosmology computes the expansion-sector predictions. It
// consumes the orientation sum produced by the topology module, so it
// always runs downstream of it.
package cosmology

import (
	"context"
	"math"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// Module computes the cosmological predictions.
type Module struct{}

// New returns the cosmology module.
func New() *Module {
	return &Module{}
}

// Name implements module.Module.
func (m *Module) Name() string { return "cosmology" }

// Description implements module.Module.
func (m *Module) Description() string {
	return "Dark energy density, expansion rate, and equation of state."
}

// RequiredInputs implements module.Module.
func (m *Module) RequiredInputs() []string {
	return []string{"topology.chi_eff", "topology.orientation_sum"}
}

// OutputParams implements module.Module.
func (m *Module) OutputParams() []string {
	return []string{
		"cosmology.omega_lambda",
		"cosmology.h0_geometric",
		"cosmology.w_dark_energy",
	}
}

// StatusTag implements module.StatusTagger.
func (m *Module) StatusTag() string { return "PREDICTED" }

// Run evaluates the closed forms over the chained topology outputs.
func (m *Module) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	chiEff, err := r.Float64("topology.chi_eff")
	if err != nil {
		return nil, err
	}
	orientationSum, err := r.Float64("topology.orientation_sum")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"cosmology.omega_lambda":  (chiEff - 2*orientationSum) / (chiEff + orientationSum),
		"cosmology.h0_geometric":  100 * orientationSum / (orientationSum + 2*math.Pi),
		"cosmology.w_dark_energy": -1 + 1/(chiEff/2),
	}, nil
}
