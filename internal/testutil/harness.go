// Package testutil provides the shared harness for program-level
// integration tests: write HCL files to a temp dir, run the app over
// them, and hand back the outcome for assertions.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/app"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/hcl"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunProgramTest writes the given HCL files to a temporary directory,
// runs the full app lifecycle over them with a default background
// context, and returns the result. Exports are suppressed via DryRun so
// tests assert on the registry and report instead of the filesystem.
func RunProgramTest(t *testing.T, files map[string]string, modules ...module.Module) *HarnessResult {
	t.Helper()
	return RunProgramTestWithContext(context.Background(), t, files, modules...)
}

// RunProgramTestWithContext is RunProgramTest with a caller-provided
// context.
func RunProgramTestWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...module.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig := &app.Config{
		ProgramPath: tmpDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		DryRun:      true,
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("PM_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
