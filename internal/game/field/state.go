// Package field holds the shared battle-wide state: weather, terrain, arena
// tags, and the positions index that maps each side to its active combatants.
package field

import (
	"slices"

	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// ArenaTag is a timed condition on one side of the field, or on both.
type ArenaTag struct {
	Kind ArenaTagKind
	Side Side
	// Both marks a field-wide tag such as Gravity; Side is ignored.
	Both bool
	// Turns left; 0 means it lasts until removed.
	Turns    int
	Layers   int
	SourceID string
}

// Expired reports what Tick removed.
type Expired struct {
	Weather Weather
	Terrain Terrain
	Tags    []ArenaTag
}

// State is the Field State shared by every combatant in one battle.
//
// State is not safe for concurrent use; a battle mutates it from one goroutine.
type State struct {
	Weather      Weather
	WeatherTurns int
	Terrain      Terrain
	TerrainTurns int
	Tags         []ArenaTag
	// Double is true for two-on-two battles.
	Double bool

	positions [2][]string
}

// NewState returns an empty field.
func NewState(double bool) *State {
	return &State{Double: double}
}

// SetWeather replaces the weather. turns == 0 lasts until replaced.
//
// Postcondition: returns false and changes nothing when w is already active.
func (s *State) SetWeather(w Weather, turns int) bool {
	if s.Weather == w {
		return false
	}
	s.Weather, s.WeatherTurns = w, turns
	return true
}

// SetTerrain replaces the terrain. turns == 0 lasts until replaced.
//
// Postcondition: returns false and changes nothing when t is already active.
func (s *State) SetTerrain(t Terrain, turns int) bool {
	if s.Terrain == t {
		return false
	}
	s.Terrain, s.TerrainTurns = t, turns
	return true
}

func (s *State) find(kind ArenaTagKind, side Side) int {
	for i, t := range s.Tags {
		if t.Kind == kind && (t.Both || t.Side == side) {
			return i
		}
	}
	return -1
}

// AddTag adds tag, or adds a layer to an existing stacking hazard.
//
// Postcondition: returns true iff the field changed.
func (s *State) AddTag(tag ArenaTag) bool {
	if tag.Layers == 0 {
		tag.Layers = 1
	}
	if i := s.find(tag.Kind, tag.Side); i >= 0 {
		limit := maxLayers[tag.Kind]
		if s.Tags[i].Layers >= limit {
			return false
		}
		s.Tags[i].Layers++
		return true
	}
	s.Tags = append(s.Tags, tag)
	return true
}

// RemoveTag removes kind from side.
//
// Postcondition: HasTag(kind, side) is false.
func (s *State) RemoveTag(kind ArenaTagKind, side Side) bool {
	i := s.find(kind, side)
	if i < 0 {
		return false
	}
	s.Tags = slices.Delete(s.Tags, i, i+1)
	return true
}

// HasTag reports whether kind affects side.
func (s *State) HasTag(kind ArenaTagKind, side Side) bool {
	return s.find(kind, side) >= 0
}

// Tag returns the tag of kind affecting side.
func (s *State) Tag(kind ArenaTagKind, side Side) (ArenaTag, bool) {
	if i := s.find(kind, side); i >= 0 {
		return s.Tags[i], true
	}
	return ArenaTag{}, false
}

// AttackTypeMultiplier returns the weather multiplier for attack type t, times
// the terrain multiplier when the attacker is grounded.
//
// Postcondition: result ∈ {0, 0.5, 1, 1.3, 1.5, 1.95}.
func (s *State) AttackTypeMultiplier(t types.Type, grounded bool) float64 {
	m := weatherMultiplier(s.Weather, t)
	if grounded {
		m *= terrainMultiplier(s.Terrain, t)
	}
	return m
}

func weatherMultiplier(w Weather, t types.Type) float64 {
	switch w {
	case Sunny:
		switch t {
		case types.Fire:
			return 1.5
		case types.Water:
			return 0.5
		}
	case HarshSun:
		switch t {
		case types.Fire:
			return 1.5
		case types.Water:
			return 0
		}
	case Rain:
		switch t {
		case types.Water:
			return 1.5
		case types.Fire:
			return 0.5
		}
	case HeavyRain:
		switch t {
		case types.Water:
			return 1.5
		case types.Fire:
			return 0
		}
	}
	return 1
}

func terrainMultiplier(tr Terrain, t types.Type) float64 {
	switch {
	case tr == ElectricTerrain && t == types.Electric,
		tr == GrassyTerrain && t == types.Grass,
		tr == PsychicTerrain && t == types.Psychic:
		return 1.3
	}
	return 1
}

// ScreenMultiplier returns the damage multiplier screens on side apply to a
// physical or special hit: 0.5 in singles, 2/3 in doubles, 1 without a screen.
func (s *State) ScreenMultiplier(side Side, physical bool) float64 {
	screened := s.HasTag(AuroraVeil, side) ||
		(physical && s.HasTag(Reflect, side)) ||
		(!physical && s.HasTag(LightScreen, side))
	switch {
	case !screened:
		return 1
	case s.Double:
		return 2.0 / 3
	default:
		return 0.5
	}
}

// Tick advances every timed condition by one turn.
//
// Postcondition: conditions whose counter reached zero are cleared and reported.
func (s *State) Tick() Expired {
	var out Expired
	if s.WeatherTurns > 0 {
		if s.WeatherTurns--; s.WeatherTurns == 0 {
			out.Weather, s.Weather = s.Weather, WeatherNone
		}
	}
	if s.TerrainTurns > 0 {
		if s.TerrainTurns--; s.TerrainTurns == 0 {
			out.Terrain, s.Terrain = s.Terrain, TerrainNone
		}
	}
	kept := s.Tags[:0]
	for _, t := range s.Tags {
		if t.Turns > 0 {
			t.Turns--
			if t.Turns == 0 {
				out.Tags = append(out.Tags, t)
				continue
			}
		}
		kept = append(kept, t)
	}
	s.Tags = kept
	return out
}

// Place puts id at slot on side, growing the side as needed.
//
// Precondition: id must be non-empty; slot >= 0.
func (s *State) Place(side Side, slot int, id string) {
	if id == "" || slot < 0 {
		panic("field.State.Place: id must be non-empty and slot >= 0")
	}
	s.Remove(id)
	for len(s.positions[side]) <= slot {
		s.positions[side] = append(s.positions[side], "")
	}
	s.positions[side][slot] = id
}

// Remove clears id from whichever slot holds it and returns that slot, or -1.
func (s *State) Remove(id string) int {
	for side := range s.positions {
		for i, p := range s.positions[side] {
			if p == id {
				s.positions[side][i] = ""
				return i
			}
		}
	}
	return -1
}

// Positions returns the occupied slots of side in slot order.
func (s *State) Positions(side Side) []string {
	out := make([]string, 0, len(s.positions[side]))
	for _, p := range s.positions[side] {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Slot returns the slot of id on side, or -1.
func (s *State) Slot(side Side, id string) int {
	return slices.Index(s.positions[side], id)
}

// SideOf returns the side id is placed on.
func (s *State) SideOf(id string) (Side, bool) {
	for side := range s.positions {
		if slices.Contains(s.positions[side], id) {
			return Side(side), true
		}
	}
	return PlayerSide, false
}

// All returns every placed id, player side first, each in slot order.
func (s *State) All() []string {
	return append(s.Positions(PlayerSide), s.Positions(EnemySide)...)
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Tags = slices.Clone(s.Tags)
	for i := range s.positions {
		c.positions[i] = slices.Clone(s.positions[i])
	}
	return &c
}
