package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Description is the registry's public snapshot of one engine, the shape
// GET /engines serves verbatim.
type Description struct {
	Name                string   `json:"name"`
	SupportedExtensions []string `json:"supported_extensions"`
	Description         string   `json:"description"`
	Available           bool     `json:"available"`
}

type entry struct {
	engine      Engine
	extensions  []string
	description string
}

// Registry is the table of engines a worker process knows about. Engines
// register themselves at worker startup; the dispatch layer and the API
// gateway's GET /engines both read from the same table.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds an engine under name, with the extensions it claims and a
// human-readable description. Registering the same name twice replaces
// the previous entry.
func (r *Registry) Register(name string, e Engine, extensions []string, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = entry{engine: e, extensions: extensions, description: description}
}

// Get returns the engine registered under name, or (nil, false) if none
// is registered.
func (r *Registry) Get(name string) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.engine, true
}

// IsAvailable reports whether the engine registered under name is both
// present and reports itself available. It returns false for a name that
// was never registered.
func (r *Registry) IsAvailable(name string) bool {
	e, ok := r.Get(name)
	if !ok {
		return false
	}
	return e.IsAvailable()
}

// Resolve looks up the engine for name, returning a structured error if
// it is unregistered or reports itself unavailable — the error message
// the dispatch layer surfaces to callers on a failed task.
func (r *Registry) Resolve(name string) (Engine, error) {
	e, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("engine %q is not available: not registered in this build", name)
	}
	if !e.IsAvailable() {
		return nil, fmt.Errorf("engine %q is not available: required dependencies are missing", name)
	}
	return e, nil
}

// Describe returns a snapshot of every registered engine, sorted by name.
func (r *Registry) Describe() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]Description, 0, len(r.entries))
	for name, e := range r.entries {
		ret = append(ret, Description{
			Name:                name,
			SupportedExtensions: e.extensions,
			Description:         e.description,
			Available:           e.engine.IsAvailable(),
		})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}
