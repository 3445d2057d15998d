package module

import (
	"fmt"
	"strings"
)

// InputValidationError reports that a module's declared required inputs
// are not all present. Missing holds every absent path in declaration
// order, so the caller can fix its driver ordering in one pass.
type InputValidationError struct {
	Module  string
	Missing []string
}

// Error implements the error interface.
func (e *InputValidationError) Error() string {
	return fmt.Sprintf("module %q is missing required inputs: %s",
		e.Module, strings.Join(e.Missing, ", "))
}

// OutputContractError reports that Run returned keys not covered by the
// module's declared output parameters.
type OutputContractError struct {
	Module     string
	Undeclared []string
}

// Error implements the error interface.
func (e *OutputContractError) Error() string {
	return fmt.Sprintf("module %q returned undeclared outputs: %s",
		e.Module, strings.Join(e.Undeclared, ", "))
}

// ComputationError wraps a failure inside a module's Run body, tagged
// with the module and, when known, the output path being computed.
type ComputationError struct {
	Module string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("module %q failed computing %q: %v", e.Module, e.Path, e.Err)
	}
	return fmt.Sprintf("module %q failed: %v", e.Module, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ComputationError) Unwrap() error {
	return e.Err
}
