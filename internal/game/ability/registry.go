package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry holds all known abilities keyed by ID.
type Registry struct {
	defs map[string]*Ability
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Ability)}
}

// Register adds a, rejecting duplicates.
//
// Precondition: a must not be nil.
// Postcondition: returns an error when a.ID is already registered.
func (r *Registry) Register(a *Ability) error {
	if _, ok := r.defs[a.ID]; ok {
		return fmt.Errorf("ability: duplicate id %q", a.ID)
	}
	r.defs[a.ID] = a
	return nil
}

// Get returns the ability for id.
func (r *Registry) Get(id string) (*Ability, bool) {
	a, ok := r.defs[id]
	return a, ok
}

// All returns every ability sorted by ID.
func (r *Registry) All() []*Ability {
	out := make([]*Ability, 0, len(r.defs))
	for _, a := range r.defs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir. Each file holds a YAML list
// of abilities.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a populated Registry, or an error naming the first bad file.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ability: reading dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("ability: reading %q: %w", path, err)
		}
		var list []*Ability
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("ability: parsing %q: %w", path, err)
		}
		for _, a := range list {
			if err := a.Validate(); err != nil {
				return nil, fmt.Errorf("ability: %q: %w", path, err)
			}
			if err := reg.Register(a); err != nil {
				return nil, fmt.Errorf("ability: %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
