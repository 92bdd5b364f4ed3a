package example

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs an Example from its dependencies.
type Factory func(deps Deps) (Example, error)

var (
	registryMu sync.Mutex
	registry   = make(map[string]Factory)
)

// Register makes an implementation available under name. It is called from
// package init functions and panics on duplicate names, the same way database
// drivers do.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("example: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("example: Register called twice for %q", name))
	}
	registry[name] = factory
}

// New resolves the implementation registered under name and constructs it.
// This runs exactly once at startup; an unknown name is a fatal configuration
// error for the caller.
func New(name string, deps Deps) (Example, error) {
	registryMu.Lock()
	factory, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no example registered under %q (available: %v)", name, Names())
	}

	ex, err := factory(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to construct example %q: %w", name, err)
	}
	return ex, nil
}

// Names returns the registered implementation names, sorted.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
