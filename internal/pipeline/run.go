package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/ctxlog"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/dag"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/google/uuid"
)

// Run executes every module in dependency order and returns the report.
// A non-nil error is returned only for pre-execution failures (duplicate
// producers, circular dependencies); per-module failures live in the
// report and never abort the batch.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	graph, links, err := p.buildGraph()
	if err != nil {
		return nil, err
	}

	if cycle := graph.FindCycle(); cycle != nil {
		path := links[edge{from: cycle[0], to: cycle[1]}]
		return nil, fmt.Errorf("circular dependency between modules %q and %q via parameter %q",
			cycle[0], cycle[1], path)
	}

	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	logger.Debug("Execution order resolved.", "order", order)

	byName := make(map[string]module.Module, len(p.modules))
	for _, m := range p.modules {
		byName[m.Name()] = m
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	completed := make(map[string]bool, len(order))

	logger.Info("Starting sequential execution.", "run_id", report.RunID, "modules", len(order))
	for _, name := range order {
		m := byName[name]
		result := p.runOne(ctx, graph, m, completed)
		if result.Status == StatusOK {
			completed[name] = true
		}
		report.Results = append(report.Results, result)
	}
	report.Finished = time.Now()

	if failed := report.Failed(); len(failed) > 0 {
		logger.Warn("Run finished with failures.", "failed", len(failed), "total", len(order))
	} else {
		logger.Info("Run finished.", "modules", len(order))
	}

	return report, nil
}

// runOne executes a single module invocation end to end: dependency
// check, input validation, the Run body, output contract check, and the
// write-back of outputs.
func (p *Pipeline) runOne(ctx context.Context, g *dag.Graph, m module.Module, completed map[string]bool) ModuleResult {
	logger := ctxlog.FromContext(ctx).With("module", m.Name())
	started := time.Now()

	result := ModuleResult{Module: m.Name()}

	deps, err := g.Dependencies(m.Name())
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	for _, dep := range deps {
		if !completed[dep] {
			logger.Warn("Skipping module due to upstream failure.", "dependency", dep)
			result.Status = StatusSkipped
			result.Err = fmt.Errorf("skipped due to upstream failure of '%s'", dep)
			result.Elapsed = time.Since(started)
			return result
		}
	}

	if err := module.ValidateInputs(m, p.reg); err != nil {
		logger.Error("Input validation failed.", "error", err)
		result.Status = StatusInvalid
		result.Err = err
		result.Elapsed = time.Since(started)
		return result
	}

	logger.Debug("Running module.")
	outputs, err := invoke(ctx, m, p.reg)
	if err != nil {
		logger.Error("Module execution failed.", "error", err)
		result.Status = StatusFailed
		result.Err = err
		result.Elapsed = time.Since(started)
		return result
	}

	if err := module.CheckOutputs(m, outputs); err != nil {
		logger.Error("Output contract violated.", "error", err)
		result.Status = StatusFailed
		result.Err = err
		result.Elapsed = time.Since(started)
		return result
	}

	tag := p.statusTag(m)
	for _, path := range sortedKeys(outputs) {
		p.reg.Set(path, outputs[path], p.opts.SourcePrefix+":"+m.Name(), tag)
	}
	logger.Debug("Module outputs written.", "count", len(outputs), "status", tag)

	result.Status = StatusOK
	result.Outputs = outputs
	result.Elapsed = time.Since(started)
	return result
}

// invoke calls Run with panic recovery, guaranteeing the batch survives
// a misbehaving module body. Any failure comes back as a
// *module.ComputationError tagged with the module name.
func invoke(ctx context.Context, m module.Module, r module.Reader) (outputs map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			outputs = nil
			err = &module.ComputationError{
				Module: m.Name(),
				Err:    fmt.Errorf("panic: %v", rec),
			}
		}
	}()

	outputs, err = m.Run(ctx, r)
	if err != nil {
		var comp *module.ComputationError
		if errors.As(err, &comp) {
			return nil, err
		}
		return nil, &module.ComputationError{Module: m.Name(), Err: err}
	}
	return outputs, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
