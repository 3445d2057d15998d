// Package export writes the final registry state and run report to a
// file. The extension selects the format: .yaml/.yml for YAML, anything
// else JSON. The export file is the boundary contract for downstream
// paper and reporting tooling.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ParamOut is one exported parameter with its provenance.
type ParamOut struct {
	Value    any            `json:"value" yaml:"value"`
	Source   string         `json:"source" yaml:"source"`
	Status   string         `json:"status" yaml:"status"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ModuleRow is one row of the run report: the gate-audit outcome of a
// single module.
type ModuleRow struct {
	Module  string   `json:"module" yaml:"module"`
	Status  string   `json:"status" yaml:"status"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// RunInfo describes the run that produced the snapshot.
type RunInfo struct {
	ID       string      `json:"id" yaml:"id"`
	Started  time.Time   `json:"started" yaml:"started"`
	Finished time.Time   `json:"finished" yaml:"finished"`
	Modules  []ModuleRow `json:"modules" yaml:"modules"`
}

// Snapshot is the full export document.
type Snapshot struct {
	Run        RunInfo             `json:"run" yaml:"run"`
	Parameters map[string]ParamOut `json:"parameters" yaml:"parameters"`
}

// Write marshals the snapshot to path. JSON map keys marshal sorted, so
// repeated runs of the same program produce byte-identical exports.
func Write(path string, snap Snapshot, pretty bool) error {
	data, err := Marshal(path, snap, pretty)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// Marshal renders the snapshot in the format path's extension selects.
func Marshal(path string, snap Snapshot, pretty bool) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, fmt.Errorf("failed to encode YAML export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize YAML export: %w", err)
		}
		return buf.Bytes(), nil

	default:
		if pretty {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode JSON export: %w", err)
			}
			return append(data, '\n'), nil
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON export: %w", err)
		}
		return append(data, '\n'), nil
	}
}
