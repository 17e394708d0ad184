package move

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry holds all known moves keyed by ID.
type Registry struct {
	moves map[string]*Move
}

// NewRegistry creates a Registry holding only Struggle.
func NewRegistry() *Registry {
	return &Registry{moves: map[string]*Move{Struggle.ID: Struggle}}
}

// Register validates and adds m.
//
// Precondition: m must not be nil.
// Postcondition: returns an error when m is invalid or m.ID is taken.
func (r *Registry) Register(m *Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, ok := r.moves[m.ID]; ok {
		return fmt.Errorf("move: duplicate id %q", m.ID)
	}
	r.moves[m.ID] = m
	return nil
}

// Get returns the move for id.
func (r *Registry) Get(id string) (*Move, bool) {
	m, ok := r.moves[id]
	return m, ok
}

// All returns every move sorted by ID.
func (r *Registry) All() []*Move {
	out := make([]*Move, 0, len(r.moves))
	for _, m := range r.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir as a list of moves.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a populated Registry, or an error naming the first bad file.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("move: reading dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("move: reading %q: %w", path, err)
		}
		var moves []*Move
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&moves); err != nil {
			return nil, fmt.Errorf("move: parsing %q: %w", path, err)
		}
		for _, m := range moves {
			if err := reg.Register(m); err != nil {
				return nil, fmt.Errorf("move: %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
