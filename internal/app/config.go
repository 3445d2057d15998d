package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProgramPath string // a single .hcl file or a directory of .hcl files

	LogFormat string
	LogLevel  string

	// ExportPath overrides the program's export block when non-empty.
	ExportPath string

	// DryRun skips writing the export file.
	DryRun bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProgramPath == "" {
		return nil, errors.New("ProgramPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
