package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe name-keyed table of providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. Re-registering a name overwrites the previous
// entry.
func (r *Registry) Register(p Provider) error {
	if p.Name() == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
	return nil
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}
	return p, nil
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// global is the process-wide registry populated by the providers packages.
var global = NewRegistry()

// Global returns the process-wide registry.
func Global() *Registry {
	return global
}

// Register adds a provider to the global registry.
func Register(p Provider) error {
	return global.Register(p)
}

// Get returns a provider from the global registry.
func Get(name string) (Provider, error) {
	return global.Get(name)
}

// List returns the global registry's provider names, sorted.
func List() []string {
	return global.List()
}
