package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/config"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/ctxlog"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/fsutil"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL program loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under the given paths (files or
// directories, recursed and sorted), decodes them, and merges them into
// one program model. Duplicate seed or derive labels across files are an
// error, as is more than one run or export block.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read program path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk program directory %s: %w", path, err)
		}
		if len(found) == 0 {
			logger.Warn("No .hcl program files found in path.", "path", path)
		}
		files = append(files, found...)
	}
	logger.Debug("Found program files to load.", "files", files)

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, filePath := range files {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var prog schema.Program
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &prog); diags.HasErrors() {
			return nil, fmt.Errorf("invalid program file %s: %w", filePath, diags)
		}

		if err := l.merge(model, &prog, filePath); err != nil {
			return nil, err
		}
		logger.Debug("Loaded program file.", "file", filePath)
	}

	if err := checkDuplicateLabels(model); err != nil {
		return nil, err
	}

	logger.Info("Program loaded.", "files", len(files),
		"seeds", len(model.Seeds), "derives", len(model.Derives))
	return model, nil
}

// merge translates one decoded file into the model, enforcing the
// at-most-one rule for run and export blocks across the whole program.
func (l *Loader) merge(model *config.Model, prog *schema.Program, filePath string) error {
	for _, s := range prog.Seeds {
		seed, err := translateSeed(s)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}
		model.Seeds = append(model.Seeds, seed)
	}

	for _, d := range prog.Derives {
		derive, err := translateDerive(d)
		if err != nil {
			return fmt.Errorf("%s: %w", filePath, err)
		}
		model.Derives = append(model.Derives, derive)
	}

	if prog.Run != nil {
		if model.Run != nil {
			return fmt.Errorf("%s: duplicate run block; a program declares at most one", filePath)
		}
		model.Run = &config.Run{Modules: prog.Run.Modules}
	}

	if prog.Export != nil {
		if model.Export != nil {
			return fmt.Errorf("%s: duplicate export block; a program declares at most one", filePath)
		}
		model.Export = &config.Export{Path: prog.Export.Path, Pretty: prog.Export.Pretty}
	}

	return nil
}

// checkDuplicateLabels rejects programs where two seed or derive blocks
// target the same parameter path, reporting every duplicate at once.
func checkDuplicateLabels(model *config.Model) error {
	var errs []string
	seen := make(map[string]string)

	claim := func(path, kind string) {
		if prev, ok := seen[path]; ok {
			errs = append(errs, fmt.Sprintf("parameter %q is declared by both a %s and a %s block", path, prev, kind))
			return
		}
		seen[path] = kind
	}

	for _, s := range model.Seeds {
		claim(s.Path, "seed")
	}
	for _, d := range model.Derives {
		claim(d.Path, "derive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("program validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
