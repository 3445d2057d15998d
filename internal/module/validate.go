package module

import "sort"

// ValidateInputs checks that every path in the module's declared
// required inputs is present in the registry. It reports ALL missing
// paths at once, not just the first, so one pass is enough to repair a
// broken driver ordering.
func ValidateInputs(m Module, r Reader) error {
	var missing []string
	for _, path := range m.RequiredInputs() {
		if !r.Has(path) {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return &InputValidationError{Module: m.Name(), Missing: missing}
	}
	return nil
}

// CheckOutputs verifies that the keys of a Run result are a subset of
// the module's declared output parameters. Undeclared keys are a
// contract violation, reported sorted for stable messages.
func CheckOutputs(m Module, results map[string]any) error {
	declared := make(map[string]struct{}, len(m.OutputParams()))
	for _, path := range m.OutputParams() {
		declared[path] = struct{}{}
	}

	var undeclared []string
	for path := range results {
		if _, ok := declared[path]; !ok {
			undeclared = append(undeclared, path)
		}
	}

	if len(undeclared) > 0 {
		sort.Strings(undeclared)
		return &OutputContractError{Module: m.Name(), Undeclared: undeclared}
	}
	return nil
}
