package ai

import (
	"fmt"
	"sort"
)

// Registry indexes Profiles by ID.
//
// Invariant: each profile ID is registered at most once.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register validates and stores p.
//
// Precondition: p must not be nil.
// Postcondition: returns error on an invalid profile or ID collision.
func (r *Registry) Register(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.profiles[p.ID]; exists {
		return fmt.Errorf("ai.Registry: profile %q already registered", p.ID)
	}
	r.profiles[p.ID] = p
	return nil
}

// Get returns the profile for id, or false if not registered.
func (r *Registry) Get(id string) (*Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// All returns every profile sorted by ID.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
