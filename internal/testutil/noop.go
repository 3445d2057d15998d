package testutil

import (
	"context"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// NoopModule satisfies module.Module with no inputs, no outputs, and a
// Run that does nothing. Inject it when a test wants only the program's
// derive blocks to execute.
type NoopModule struct{}

func (m *NoopModule) Name() string             { return "noop" }
func (m *NoopModule) Description() string      { return "Does nothing." }
func (m *NoopModule) RequiredInputs() []string { return nil }
func (m *NoopModule) OutputParams() []string   { return nil }

func (m *NoopModule) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	return map[string]any{}, nil
}
