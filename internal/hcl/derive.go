package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/config"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/parampath"
)

// DeriveModule adapts a derive block to the module contract. Its name is
// the output path itself, its required inputs are the formula's variable
// references, and Run evaluates the formula against the registry's
// current state.
type DeriveModule struct {
	derive *config.Derive
}

// NewDeriveModule wraps a translated derive block as a Module.
func NewDeriveModule(d *config.Derive) *DeriveModule {
	return &DeriveModule{derive: d}
}

// Name implements module.Module.
func (m *DeriveModule) Name() string {
	return m.derive.Path
}

// Description implements module.Module.
func (m *DeriveModule) Description() string {
	if m.derive.Description != "" {
		return m.derive.Description
	}
	return fmt.Sprintf("Formula-derived parameter %s.", m.derive.Path)
}

// RequiredInputs implements module.Module.
func (m *DeriveModule) RequiredInputs() []string {
	return m.derive.Inputs
}

// OutputParams implements module.Module.
func (m *DeriveModule) OutputParams() []string {
	return []string{m.derive.Path}
}

// StatusTag implements module.StatusTagger.
func (m *DeriveModule) StatusTag() string {
	return m.derive.Status
}

// Run evaluates the formula. Only declared inputs are placed in scope,
// so a formula cannot quietly read parameters its dependency edges do
// not account for.
func (m *DeriveModule) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	vars, err := m.buildVariables(r)
	if err != nil {
		return nil, err
	}

	evalCtx := &hcl.EvalContext{
		Variables: vars,
		Functions: evalFunctions(),
	}

	val, diags := m.derive.Formula.Value(evalCtx)
	if diags.HasErrors() {
		return nil, &module.ComputationError{
			Module: m.Name(),
			Path:   m.derive.Path,
			Err:    diags,
		}
	}

	native, err := ctyToNative(val)
	if err != nil {
		return nil, &module.ComputationError{Module: m.Name(), Path: m.derive.Path, Err: err}
	}

	return map[string]any{m.derive.Path: native}, nil
}

// buildVariables assembles the nested variable objects the formula sees,
// e.g. inputs ["topology.b3", "topology.chi_eff"] become one "topology"
// object with attributes b3 and chi_eff. Declared inputs are read with
// the strict accessor; the pipeline has already validated presence.
func (m *DeriveModule) buildVariables(r module.Reader) (map[string]cty.Value, error) {
	tree := make(map[string]any)
	for _, path := range m.derive.Inputs {
		parsed, err := parampath.Parse(path)
		if err != nil {
			return nil, err
		}

		value, err := r.Get(path)
		if err != nil {
			return nil, err
		}

		node := tree
		for _, seg := range parsed.Segments[:len(parsed.Segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[parsed.Leaf()] = value
	}

	vars := make(map[string]cty.Value, len(tree))
	for root, sub := range tree {
		val, err := nativeToCty(sub)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", root, err)
		}
		vars[root] = val
	}
	return vars, nil
}
