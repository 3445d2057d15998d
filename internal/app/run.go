package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/ctxlog"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/export"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/pipeline"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/registry"
)

// ErrModulesFailed is returned by Run when at least one module did not
// complete. The per-module detail lives in the report.
var ErrModulesFailed = errors.New("one or more modules failed")

// Run executes the loaded theory program: seed the registry, run the
// selected modules in dependency order, print the run report, and write
// the export file.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, seed := range a.program.Seeds {
		a.registry.SetEntry(registry.Entry{
			Path:     seed.Path,
			Value:    seed.Value,
			Source:   seed.Source,
			Status:   seed.Status,
			Metadata: seed.Metadata,
		})
	}
	a.logger.Debug("Registry seeded.", "count", len(a.program.Seeds))

	modules, err := a.selectModules()
	if err != nil {
		return err
	}

	if len(modules) == 0 {
		a.logger.Warn("No modules selected, execution not required.")
		return nil
	}

	a.logger.Info("🚀 Starting execution...", "modules", len(modules))
	pipe := pipeline.New(a.registry, modules, pipeline.Options{})
	report, err := pipe.Run(ctx)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.report = report
	a.logger.Info("🏁 Execution finished.")

	a.printReport(report)

	if err := a.export(report); err != nil {
		return err
	}

	if !report.OK() {
		return ErrModulesFailed
	}
	return nil
}

// selectModules resolves the run block against the catalog. A missing or
// empty run block selects every registered module.
func (a *App) selectModules() ([]module.Module, error) {
	if a.program.Run == nil || len(a.program.Run.Modules) == 0 {
		return a.catalog.All(), nil
	}

	var selected []module.Module
	var unknown []string
	for _, name := range a.program.Run.Modules {
		m, ok := a.catalog.Get(name)
		if !ok {
			unknown = append(unknown, fmt.Sprintf("'%s'", name))
			continue
		}
		selected = append(selected, m)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("run block references unknown modules: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

// printReport writes the aligned per-module run report to the app's
// output writer.
func (a *App) printReport(report *pipeline.Report) {
	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tSTATUS\tELAPSED\tDETAIL")
	for _, res := range report.Results {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.Module, res.Status, res.Elapsed.Round(time.Microsecond), detail)
	}
	w.Flush()
}

// export writes the final registry state and report to the export file.
// The --export flag overrides the program's export block; a dry run
// skips the write entirely.
func (a *App) export(report *pipeline.Report) error {
	path := a.config.ExportPath
	pretty := false
	if exp := a.program.Export; exp != nil {
		if path == "" {
			path = exp.Path
		}
		pretty = exp.Pretty
	}
	if path == "" {
		a.logger.Debug("No export path configured, skipping export.")
		return nil
	}
	if a.config.DryRun {
		a.logger.Info("Dry run, skipping export.", "path", path)
		return nil
	}

	snap := a.snapshot(report)
	if err := export.Write(path, snap, pretty); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}
	a.logger.Info("Results exported.", "path", path, "parameters", len(snap.Parameters))
	return nil
}

// snapshot assembles the export document from the final registry state
// and the run report.
func (a *App) snapshot(report *pipeline.Report) export.Snapshot {
	params := make(map[string]export.ParamOut)
	for path, entry := range a.registry.All() {
		params[path] = export.ParamOut{
			Value:    entry.Value,
			Source:   entry.Source,
			Status:   entry.Status,
			Metadata: entry.Metadata,
		}
	}

	rows := make([]export.ModuleRow, 0, len(report.Results))
	for _, res := range report.Results {
		row := export.ModuleRow{
			Module: res.Module,
			Status: string(res.Status),
		}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		for _, path := range sortedKeys(res.Outputs) {
			row.Outputs = append(row.Outputs, path)
		}
		rows = append(rows, row)
	}

	return export.Snapshot{
		Run: export.RunInfo{
			ID:       report.RunID,
			Started:  report.Started,
			Finished: report.Finished,
			Modules:  rows,
		},
		Parameters: params,
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
