package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/hcl"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing, backed by
// the HCL loader and a debug logger writing into the returned buffer.
func SetupAppTest(t *testing.T, appConfig *Config, modules ...module.Module) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)

	t.Cleanup(func() {
		if os.Getenv("PM_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
