// SPDX-License-Identifier: Apache-2.0

// Package extension provides the class-reference registry the driver's
// loader resolves configured extensions against. Extension packages
// register their factories in init().
package extension

import (
	"fmt"
	"sync"

	"github.com/opensdn-io/neutron-driver/pkg/driver"
)

// Factory instantiates one extension. A failing factory aborts driver
// construction.
type Factory func() (driver.Extension, error)

var _ driver.Resolver = (*Registry)(nil)

// Registry maps implementation references to extension factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given class reference, replacing any
// previous registration.
func (r *Registry) Register(class string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[class] = factory
}

// Resolve implements driver.Resolver.
func (r *Registry) Resolve(class string) (func() (driver.Extension, error), error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[class]
	if !ok {
		return nil, fmt.Errorf("extension class %q is not registered", class)
	}
	return factory, nil
}

// Classes returns all registered class references.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]string, 0, len(r.factories))
	for class := range r.factories {
		classes = append(classes, class)
	}
	return classes
}

// Default is the process-wide registry used by extension packages'
// init() registration.
var Default = NewRegistry()

// Register adds a factory to the default registry.
func Register(class string, factory Factory) {
	Default.Register(class, factory)
}

// Resolve resolves a class reference against the default registry.
func Resolve(class string) (func() (driver.Extension, error), error) {
	return Default.Resolve(class)
}
