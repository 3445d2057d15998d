package registry

import "sync"

var shared = sync.OnceValue(New)

// Shared returns the process-wide registry. It exists as a convenience
// for the CLI boundary only; library code takes a *Registry explicitly
// so tests never leak state through a hidden singleton.
func Shared() *Registry {
	return shared()
}
