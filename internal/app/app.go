package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/config"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/ctxlog"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/hcl"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/pipeline"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	program  *config.Model
	catalog  *module.Catalog
	registry *registry.Registry
	report   *pipeline.Report
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry,
// and module catalog. Passing modules replaces the built-in set; this is
// the test seam.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...module.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the theory program into the format-agnostic model first.
	program, err := loader.Load(ctx, appConfig.ProgramPath)
	if err != nil {
		// A failure to load the program is a fatal startup error.
		panic(fmt.Errorf("failed to load program: %w", err))
	}
	logger.Debug("Program loaded and translated into unified model.",
		"seeds", len(program.Seeds), "derives", len(program.Derives))

	// Populate the catalog with the compiled-in modules plus one derive
	// module per formula block.
	catalog := module.NewCatalog()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, m := range modules {
		catalog.Register(m)
	}
	for _, d := range program.Derives {
		catalog.Register(hcl.NewDeriveModule(d))
	}
	logger.Debug("All modules registered.", "count", catalog.Len())

	// Validate the integrity of the catalog. A mismatch between declared
	// inputs and outputs is a programmer error, so we panic.
	if err := catalog.Validate(); err != nil {
		panic(err)
	}
	logger.Debug("Catalog validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		program:  program,
		catalog:  catalog,
		registry: registry.New(),
	}
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Catalog returns the application's module catalog. This is primarily
// for testing.
func (a *App) Catalog() *module.Catalog {
	return a.catalog
}

// Report returns the report of the last Run, or nil before the first
// one. This is primarily for testing.
func (a *App) Report() *pipeline.Report {
	return a.report
}
