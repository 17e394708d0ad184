// Package content loads game definitions from YAML directories and checks
// that they reference each other consistently.
package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/creature-battle/internal/config"
	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/ai"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/item"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
)

// Library holds every loaded definition.
//
// Invariant: after Load, every ability and move a species names is present.
type Library struct {
	Moves     *move.Registry
	Abilities *ability.Registry
	Items     *item.Registry
	Profiles  *ai.Registry

	species map[string]*creature.Species
}

// Load reads every content directory named by cfg and cross-validates the
// result.
//
// Postcondition: Returns a consistent Library or an error naming the first
// directory that failed to load, or every dangling reference.
func Load(cfg config.ContentConfig) (*Library, error) {
	moves, err := move.LoadDirectory(cfg.MovesDir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	abilities, err := ability.LoadDirectory(cfg.AbilitiesDir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	items, err := item.LoadDirectory(cfg.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	species, err := creature.LoadSpecies(cfg.SpeciesDir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	profileList, err := ai.LoadProfiles(cfg.AIDir)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	profiles := ai.NewRegistry()
	for _, p := range profileList {
		if err := profiles.Register(p); err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
	}
	return NewLibrary(species, moves, abilities, items, profiles)
}

// NewLibrary assembles a Library from already-loaded registries.
//
// Precondition: every registry must be non-nil.
// Postcondition: Returns an error on duplicate species ids or dangling references.
func NewLibrary(species []*creature.Species, moves *move.Registry, abilities *ability.Registry, items *item.Registry, profiles *ai.Registry) (*Library, error) {
	if moves == nil || abilities == nil || items == nil || profiles == nil {
		panic("content.NewLibrary: registries must not be nil")
	}
	l := &Library{
		Moves:     moves,
		Abilities: abilities,
		Items:     items,
		Profiles:  profiles,
		species:   make(map[string]*creature.Species, len(species)),
	}
	for _, s := range species {
		if _, dup := l.species[s.ID]; dup {
			return nil, fmt.Errorf("content: duplicate species id %q", s.ID)
		}
		l.species[s.ID] = s
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate reports every reference from a species to an ability or move that
// is not loaded.
func (l *Library) Validate() error {
	if len(l.species) == 0 {
		return fmt.Errorf("content: no species loaded")
	}
	var errs []string
	for _, s := range l.Species() {
		for _, id := range s.Abilities {
			if _, ok := l.Abilities.Get(id); !ok {
				errs = append(errs, fmt.Sprintf("species %q: unknown ability %q", s.ID, id))
			}
		}
		if s.Passive != "" {
			if _, ok := l.Abilities.Get(s.Passive); !ok {
				errs = append(errs, fmt.Sprintf("species %q: unknown passive %q", s.ID, s.Passive))
			}
		}
		for _, id := range s.Moves {
			if _, ok := l.Moves.Get(id); !ok {
				errs = append(errs, fmt.Sprintf("species %q: unknown move %q", s.ID, id))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Species returns every species sorted by ID.
func (l *Library) Species() []*creature.Species {
	out := make([]*creature.Species, 0, len(l.species))
	for _, s := range l.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SpeciesByID returns the species for id.
func (l *Library) SpeciesByID(id string) (*creature.Species, bool) {
	s, ok := l.species[id]
	return s, ok
}
