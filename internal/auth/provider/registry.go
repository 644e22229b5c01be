package provider

import "fmt"

// Registry holds all configured token providers and allows
// lookup by provider name. It performs no auth logic itself.
type Registry struct {
	providers map[string]TokenProvider
}

// NewRegistry registers the given token providers by name.
// Provider names must be unique.
func NewRegistry(list ...TokenProvider) *Registry {
	m := make(map[string]TokenProvider)
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the token provider by name or an error if not registered.
func (r *Registry) Get(name string) (TokenProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown token provider: %s", name)
	}
	return p, nil
}
