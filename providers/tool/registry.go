package tool

import (
	"sort"
	"strings"
	"sync"
)

// Registry holds the fixed set of callable capabilities, keyed by name
// (case-insensitive). It is populated once at process start and read-only
// afterwards, so a single instance is safely shared by all concurrent
// queries.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a registry pre-populated with the given tools. Names
// are taken from each tool's Name() and stored in lowercase; registering two
// tools with the same name keeps the last one.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	r.Register(tools...)
	return r
}

// Register adds tools to the registry.
func (r *Registry) Register(tools ...Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tools {
		r.tools[strings.ToLower(t.Name())] = t
	}
}

// Get retrieves a tool by name (case-insensitive). Returns the tool and true
// if found, nil and false otherwise. An unmatched name is the caller's
// problem to surface, never a silent no-op.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Has reports whether a tool with the given name exists (case-insensitive).
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered tool names in sorted order, for corrective
// observations and prompt construction.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}

// Specs returns the static registry entries (name + description) for all
// registered tools, sorted by name. Used to build the system instructions.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]Spec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, Spec{Name: t.Name(), Description: t.Description()})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Size returns the number of registered tools.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
