package registry

import (
	"sort"
	"sync"
)

// Entry is one stored parameter: its current value plus provenance.
// Source and Status are informational only; nothing in the engine gates
// behavior on them.
type Entry struct {
	Path     string
	Value    any
	Source   string
	Status   string
	Metadata map[string]any
}

// Registry is the single point of truth for named parameters shared
// across computation modules. The driver is strictly sequential, but
// tests and embedders may not be, so the map is mutex-guarded.
type Registry struct {
	mutex   sync.RWMutex
	entries map[string]Entry
}

// New creates and returns an initialized, empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Set stores a value under path, silently overwriting any previous entry
// including its provenance. Last write wins. An empty path is a
// programmer error and panics.
func (r *Registry) Set(path string, value any, source, status string) {
	r.SetEntry(Entry{
		Path:   path,
		Value:  value,
		Source: source,
		Status: status,
	})
}

// SetEntry stores a full entry, metadata included. It is the write path
// Set delegates to and shares its last-write-wins semantics.
func (r *Registry) SetEntry(e Entry) {
	if e.Path == "" {
		panic("registry: cannot set a parameter with an empty path")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.entries[e.Path] = e
}

// Get returns the value stored under path. It fails with a
// *MissingParameterError when the path was never set; callers that can
// tolerate absence should use GetOr instead.
func (r *Registry) Get(path string) (any, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.entries[path]
	if !ok {
		return nil, &MissingParameterError{Path: path}
	}
	return e.Value, nil
}

// GetOr returns the value stored under path, or fallback when the path
// was never set. It never fails. This is the accessor for optional
// chaining between independently-executed modules.
func (r *Registry) GetOr(path string, fallback any) any {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.entries[path]
	if !ok {
		return fallback
	}
	return e.Value
}

// Has reports whether path currently holds a value. No side effects.
func (r *Registry) Has(path string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.entries[path]
	return ok
}

// Entry returns the full entry for path, provenance included. It fails
// like Get when the path is absent.
func (r *Registry) Entry(path string) (Entry, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.entries[path]
	if !ok {
		return Entry{}, &MissingParameterError{Path: path}
	}
	return copyEntry(e), nil
}

// All returns a copy of every entry keyed by path, suitable for export.
// Mutating the returned map or its metadata does not affect the registry.
func (r *Registry) All() map[string]Entry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make(map[string]Entry, len(r.entries))
	for path, e := range r.entries {
		out[path] = copyEntry(e)
	}
	return out
}

// Paths returns every stored path in sorted order.
func (r *Registry) Paths() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	paths := make([]string, 0, len(r.entries))
	for path := range r.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of stored parameters.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.entries)
}

func copyEntry(e Entry) Entry {
	if e.Metadata == nil {
		return e
	}
	meta := make(map[string]any, len(e.Metadata))
	for k, v := range e.Metadata {
		meta[k] = v
	}
	e.Metadata = meta
	return e
}
