package provider

import (
	"fmt"

	"GridironDigest/internal/ports"
)

// Registry keeps a mapping from provider names to generator implementations.
// One provider is selected by name at process start; there is no dynamic
// dispatch beyond that construction-time choice.
type Registry struct {
	generators map[string]ports.Generator
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: map[string]ports.Generator{}}
}

// Register adds or replaces a generator implementation.
func (r *Registry) Register(generator ports.Generator) {
	if r.generators == nil {
		r.generators = map[string]ports.Generator{}
	}
	r.generators[generator.Name()] = generator
}

// Resolve returns a generator by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Generator, error) {
	if generator, ok := r.generators[name]; ok {
		return generator, nil
	}
	return nil, fmt.Errorf("ai provider %s is not registered", name)
}
