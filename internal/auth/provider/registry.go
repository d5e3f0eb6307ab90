package provider

import "fmt"

// Registry maps provider names to configured OAuth providers so the
// callback handler can route by URL parameter. It holds no auth logic.
type Registry struct {
	providers map[string]OAuthProvider
}

// NewRegistry registers the given providers by name. A duplicate name
// silently replaces the earlier registration.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider by name or an error if not registered.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown oauth provider: %s", name)
	}
	return p, nil
}
