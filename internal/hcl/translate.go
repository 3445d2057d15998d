package hcl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/config"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/parampath"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/schema"
)

// translateSeed converts an HCL seed block into the agnostic model. The
// value must be a constant expression: it is evaluated with no variables
// in scope, so any traversal fails here with a clear diagnostic.
func translateSeed(s *schema.Seed) (*config.Seed, error) {
	if _, err := parampath.Parse(s.Path); err != nil {
		return nil, fmt.Errorf("seed %q: %w", s.Path, err)
	}

	val, diags := s.Value.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("seed %q: value must be a constant expression: %w", s.Path, diags)
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", s.Path, err)
	}

	seed := &config.Seed{
		Path:   s.Path,
		Value:  native,
		Source: s.Source,
		Status: s.Status,
	}
	if seed.Source == "" {
		seed.Source = "seed"
	}
	if seed.Status == "" {
		seed.Status = "ESTABLISHED"
	}

	if s.Metadata != nil {
		mv, diags := s.Metadata.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("seed %q: metadata must be a constant object: %w", s.Path, diags)
		}
		nativeMeta, err := ctyToNative(mv)
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", s.Path, err)
		}
		meta, ok := nativeMeta.(map[string]any)
		if !ok && nativeMeta != nil {
			return nil, fmt.Errorf("seed %q: metadata must be an object, got %T", s.Path, nativeMeta)
		}
		seed.Metadata = meta
	}

	return seed, nil
}

// translateDerive converts an HCL derive block into the agnostic model,
// extracting the formula's variable traversals as the block's implicit
// required inputs (sorted, deduplicated).
func translateDerive(d *schema.Derive) (*config.Derive, error) {
	if _, err := parampath.Parse(d.Path); err != nil {
		return nil, fmt.Errorf("derive %q: %w", d.Path, err)
	}

	inputs, err := formulaInputs(d.Formula)
	if err != nil {
		return nil, fmt.Errorf("derive %q: %w", d.Path, err)
	}

	status := d.Status
	if status == "" {
		status = "DERIVED"
	}

	return &config.Derive{
		Path:        d.Path,
		Formula:     d.Formula,
		Description: d.Description,
		Status:      status,
		Inputs:      inputs,
	}, nil
}

// formulaInputs lists the parameter paths a formula references.
func formulaInputs(expr hcl.Expression) ([]string, error) {
	set := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		path, err := traversalPath(traversal)
		if err != nil {
			return nil, err
		}
		if _, err := parampath.Parse(path); err != nil {
			return nil, fmt.Errorf("formula references %q: %w", path, err)
		}
		set[path] = struct{}{}
	}

	inputs := make([]string, 0, len(set))
	for path := range set {
		inputs = append(inputs, path)
	}
	sort.Strings(inputs)
	return inputs, nil
}

// traversalPath renders a traversal like topology.b3 as its dotted
// parameter path. Index steps have no parameter equivalent and are
// rejected.
func traversalPath(t hcl.Traversal) (string, error) {
	segments := []string{t.RootName()}
	for _, step := range t[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			return "", fmt.Errorf("parameter reference %q cannot be indexed; only attribute access is allowed", t.RootName())
		}
		segments = append(segments, attr.Name)
	}
	return strings.Join(segments, "."), nil
}
