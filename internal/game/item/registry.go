package item

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry holds item definitions keyed by ID.
type Registry struct {
	items map[string]*Item
}

// NewRegistry builds a Registry from items.
//
// Postcondition: returns an error on the first invalid or duplicate item.
func NewRegistry(items ...*Item) (*Registry, error) {
	r := &Registry{items: make(map[string]*Item, len(items))}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.items[it.ID]; dup {
			return nil, fmt.Errorf("item: duplicate id %q", it.ID)
		}
		r.items[it.ID] = it
	}
	return r, nil
}

// Get returns the item for id.
func (r *Registry) Get(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// All returns every item sorted by ID.
func (r *Registry) All() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory parses every *.yaml file in dir, each holding one item.
//
// Precondition: dir must be a readable directory.
func LoadDirectory(dir string) (*Registry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("item: globbing %q: %w", dir, err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("item: reading dir %q: %w", dir, err)
	}
	items := make([]*Item, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("item: opening %q: %w", path, err)
		}
		var it Item
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(&it)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("item: parsing %q: %w", path, err)
		}
		items = append(items, &it)
	}
	return NewRegistry(items...)
}
