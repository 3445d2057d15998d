package module

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/parampath"
)

// Catalog holds the set of named modules available to a pipeline run.
type Catalog struct {
	modules map[string]Module
}

// NewCatalog creates and returns an initialized, empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the catalog. Registering two modules under
// the same name is a programmer error and panics.
func (c *Catalog) Register(m Module) {
	name := m.Name()
	if _, exists := c.modules[name]; exists {
		panic(fmt.Sprintf("module with name '%s' already registered", name))
	}
	slog.Debug("Registering module.", "name", name)
	c.modules[name] = m
}

// Get returns the module registered under name, if any.
func (c *Catalog) Get(name string) (Module, bool) {
	m, ok := c.modules[name]
	return m, ok
}

// Names returns every registered module name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.modules))
	for name := range c.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered modules ordered by name.
func (c *Catalog) All() []Module {
	mods := make([]Module, 0, len(c.modules))
	for _, name := range c.Names() {
		mods = append(mods, c.modules[name])
	}
	return mods
}

// Len returns the number of registered modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// Validate performs a cross-module coherence check: every declared path
// must parse as a parameter path, and no two modules may produce the
// same output path (the dependency graph needs producers to be unique).
// Every problem is reported, not just the first.
func (c *Catalog) Validate() error {
	var errs []string

	producers := make(map[string]string)
	for _, name := range c.Names() {
		m := c.modules[name]

		for _, path := range m.RequiredInputs() {
			if !parampath.Valid(path) {
				errs = append(errs, fmt.Sprintf("module '%s': invalid required input path %q", name, path))
			}
		}
		for _, path := range m.OutputParams() {
			if !parampath.Valid(path) {
				errs = append(errs, fmt.Sprintf("module '%s': invalid output path %q", name, path))
			}
			if other, taken := producers[path]; taken {
				errs = append(errs, fmt.Sprintf("modules '%s' and '%s' both declare output %q", other, name, path))
				continue
			}
			producers[path] = name
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
