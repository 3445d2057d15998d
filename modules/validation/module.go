// Package validation audits the derived values against experimental
// references. References live under experimental.* and are read softly:
// a missing reference marks its gate UNTESTED instead of failing the
// run, so a program without experimental data still completes.
package validation

import (
	"context"
	"math"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// defaultTolerancePct is the pass threshold when the program does not
// seed validation.tolerance_pct.
const defaultTolerancePct = 1.0

// Module runs the gate audit over the derived gauge and cosmology
// values.
type Module struct{}

// New returns the validation module.
func New() *Module {
	return &Module{}
}

// Name implements module.Module.
func (m *Module) Name() string { return "validation" }

// Description implements module.Module.
func (m *Module) Description() string {
	return "Gate audit of derived values against experimental references."
}

// RequiredInputs implements module.Module.
func (m *Module) RequiredInputs() []string {
	return []string{
		"gauge.alpha_inv_geometric",
		"gauge.alpha_s_mz",
		"cosmology.h0_geometric",
		"cosmology.omega_lambda",
	}
}

// OutputParams implements module.Module.
func (m *Module) OutputParams() []string {
	return []string{
		"validation.alpha_inv.deviation_pct",
		"validation.alpha_s.deviation_pct",
		"validation.h0.deviation_pct",
		"validation.omega_lambda.deviation_pct",
		"validation.gates_passed",
		"validation.gates_total",
		"validation.gates",
	}
}

// StatusTag implements module.StatusTagger.
func (m *Module) StatusTag() string { return "VALIDATION" }

// gate pairs one derived parameter with its experimental reference.
type gate struct {
	name    string // short name used in the deviation output path
	derived string
	ref     string
}

var gates = []gate{
	{name: "alpha_inv", derived: "gauge.alpha_inv_geometric", ref: "experimental.alpha_inv"},
	{name: "alpha_s", derived: "gauge.alpha_s_mz", ref: "experimental.alpha_s_mz"},
	{name: "h0", derived: "cosmology.h0_geometric", ref: "experimental.h0"},
	{name: "omega_lambda", derived: "cosmology.omega_lambda", ref: "experimental.omega_lambda"},
}

// Run audits every gate. Deviation outputs are emitted only for gates
// whose reference is present; gates_total counts the testable gates and
// validation.gates carries one row per gate, UNTESTED rows included.
func (m *Module) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	tolerance := softFloat(r, "validation.tolerance_pct", defaultTolerancePct)

	outputs := make(map[string]any)
	rows := make([]map[string]any, 0, len(gates))
	passed, total := 0, 0

	for _, g := range gates {
		derived, err := r.Float64(g.derived)
		if err != nil {
			return nil, err
		}

		row := map[string]any{
			"parameter": g.derived,
			"derived":   derived,
			"reference": g.ref,
		}

		ref, ok := softLookup(r, g.ref)
		if !ok || ref == 0 {
			row["result"] = "UNTESTED"
			rows = append(rows, row)
			continue
		}

		total++
		deviation := math.Abs(derived-ref) / math.Abs(ref) * 100
		row["experimental"] = ref
		row["deviation_pct"] = deviation
		if deviation <= tolerance {
			row["result"] = "PASS"
			passed++
		} else {
			row["result"] = "FAIL"
		}
		rows = append(rows, row)

		outputs["validation."+g.name+".deviation_pct"] = deviation
	}

	outputs["validation.gates_passed"] = passed
	outputs["validation.gates_total"] = total
	outputs["validation.gates"] = rows
	return outputs, nil
}

// softLookup reads an optional numeric parameter without failing.
func softLookup(r module.Reader, path string) (float64, bool) {
	switch v := r.GetOr(path, nil).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// softFloat is softLookup with a fallback value.
func softFloat(r module.Reader, path string, fallback float64) float64 {
	if v, ok := softLookup(r, path); ok {
		return v
	}
	return fallback
}
