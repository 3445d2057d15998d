package pipeline

import (
	"time"
)

// Status is the outcome of one module invocation.
type Status string

const (
	// StatusOK means the module ran and its outputs were written back.
	StatusOK Status = "ok"
	// StatusFailed means Run returned an error, panicked, or violated
	// its output contract.
	StatusFailed Status = "failed"
	// StatusInvalid means required inputs were missing and Run was
	// never invoked.
	StatusInvalid Status = "invalid"
	// StatusSkipped means an upstream dependency did not complete.
	StatusSkipped Status = "skipped"
)

// ModuleResult is one row of the run report.
type ModuleResult struct {
	Module  string
	Status  Status
	Err     error
	Outputs map[string]any
	Elapsed time.Duration
}

// Report is the gate-audit record of one pipeline run: one row per
// module, in execution order.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []ModuleResult
}

// OK reports whether every module completed successfully.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Failed returns the rows of every module that did not complete, in
// execution order.
func (r *Report) Failed() []ModuleResult {
	var failed []ModuleResult
	for _, res := range r.Results {
		if res.Status != StatusOK {
			failed = append(failed, res)
		}
	}
	return failed
}

// Result returns the row for the named module, if present.
func (r *Report) Result(name string) (ModuleResult, bool) {
	for _, res := range r.Results {
		if res.Module == name {
			return res, true
		}
	}
	return ModuleResult{}, false
}
