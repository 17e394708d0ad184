package tag

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// Tag is one live battler tag.
type Tag struct {
	Kind Kind
	// Turns left; meaningless for untimed kinds.
	Turns      int
	SourceMove string
	SourceID   string

	// Kind-specific payload.
	Type       types.Type // TypeBoost boosted type; Exposed immune defending type
	Stat       stat.Stat  // HighestStatBoost
	Multiplier float64    // HighestStatBoost
	HP         int        // Substitute remaining HP
	MoveID     string     // Encore and Disabled target move
	Variant    string     // SemiInvulnerable: underground, underwater, flying, hidden
}

// Def returns the static definition of t's kind.
func (t *Tag) Def() *Def { return DefOf(t.Kind) }

// EventKind classifies a registry event.
type EventKind int

const (
	EventAdded EventKind = iota
	EventOverlapped
	EventRemoved
)

// Event is emitted to the set's listener for presentation.
type Event struct {
	Kind    EventKind
	Tag     Kind
	OwnerID string
}

// LapseContext is the narrow view of the owner and battle a lapse handler sees.
type LapseContext struct {
	MaxHP      int
	OwnerTypes []types.Type
	// RNG is the battle stream; handlers only draw from it.
	RNG dice.Source
}

// Effects are the consequences of a lapse that the engine must apply to the
// owner. Handlers describe; they never mutate the owner.
type Effects struct {
	CancelMove bool
	SelfHit    bool
	Damage     int
	Heal       int
	// DrainTo is the id that receives Damage as healing.
	DrainTo string
	Sleep   bool
	Faint   bool
}

func (e *Effects) merge(o Effects) {
	e.CancelMove = e.CancelMove || o.CancelMove
	e.SelfHit = e.SelfHit || o.SelfHit
	e.Damage += o.Damage
	e.Heal += o.Heal
	if o.DrainTo != "" {
		e.DrainTo = o.DrainTo
	}
	e.Sleep = e.Sleep || o.Sleep
	e.Faint = e.Faint || o.Faint
}

// Set is the ordered tag collection of one combatant.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: at most one tag per Kind.
type Set struct {
	ownerID  string
	tags     []*Tag
	listener func(Event)
}

// NewSet creates an empty Set for ownerID.
func NewSet(ownerID string) *Set {
	return &Set{ownerID: ownerID}
}

// SetListener installs fn to receive add/overlap/remove events. nil disables events.
func (s *Set) SetListener(fn func(Event)) { s.listener = fn }

// Listener returns the installed listener.
func (s *Set) Listener() func(Event) { return s.listener }

func (s *Set) emit(kind EventKind, k Kind) {
	if s.listener != nil {
		s.listener(Event{Kind: kind, Tag: k, OwnerID: s.ownerID})
	}
}

func (s *Set) index(k Kind) int {
	return slices.IndexFunc(s.tags, func(t *Tag) bool { return t.Kind == k })
}

// Has reports whether a tag of kind k is live.
func (s *Set) Has(k Kind) bool { return s.index(k) >= 0 }

// Get returns the live tag of kind k.
func (s *Set) Get(k Kind) (*Tag, bool) {
	if i := s.index(k); i >= 0 {
		return s.tags[i], true
	}
	return nil, false
}

// Len returns the number of live tags.
func (s *Set) Len() int { return len(s.tags) }

// CanAdd reports whether k may be added, ignoring ability immunities, which
// the engine checks.
func (s *Set) CanAdd(k Kind) bool {
	if s.Has(k) {
		return false
	}
	switch k {
	case Bound:
		return !s.Has(Trapped)
	case Trapped:
		return !s.Has(Bound)
	}
	return true
}

// Add inserts t. When a tag of the same kind is live, the overlap path runs
// instead and Add returns false.
//
// Precondition: t.Kind must be defined.
// Postcondition: at most one tag of t.Kind is live.
func (s *Set) Add(t Tag) bool {
	def := DefOf(t.Kind)
	if existing, ok := s.Get(t.Kind); ok {
		overlap(existing, t)
		s.emit(EventOverlapped, t.Kind)
		return false
	}
	if !s.CanAdd(t.Kind) {
		return false
	}
	if def.Untimed {
		t.Turns = 0
	}
	s.tags = append(s.tags, &t)
	s.emit(EventAdded, t.Kind)
	return true
}

// overlap updates existing when the same kind is re-added.
func overlap(existing *Tag, incoming Tag) {
	switch existing.Kind {
	case MagnetRisen, AlwaysCrit:
		existing.Turns = max(existing.Turns, incoming.Turns)
	}
}

// Remove deletes the tag of kind k and fires its remove event.
//
// Postcondition: Has(k) is false; returns whether a tag was removed.
func (s *Set) Remove(k Kind) bool {
	i := s.index(k)
	if i < 0 {
		return false
	}
	s.tags = slices.Delete(s.tags, i, i+1)
	s.emit(EventRemoved, k)
	return true
}

// RemoveWhere deletes every tag matching pred and returns the removed kinds.
func (s *Set) RemoveWhere(pred func(*Tag) bool) []Kind {
	var removed []Kind
	for _, t := range slices.Clone(s.tags) {
		if pred(t) {
			s.Remove(t.Kind)
			removed = append(removed, t.Kind)
		}
	}
	return removed
}

// RemoveBySource purges source-linked tags whose source is sourceID.
func (s *Set) RemoveBySource(sourceID string) []Kind {
	return s.RemoveWhere(func(t *Tag) bool {
		return t.SourceID == sourceID && t.Def().SourceLinked
	})
}

// TransferOwnership reassigns tags sourced by fromID to toID without
// altering their turns.
//
// Postcondition: returns the number of tags reassigned.
func (s *Set) TransferOwnership(fromID, toID string) int {
	n := 0
	for _, t := range s.tags {
		if t.SourceID == fromID {
			t.SourceID = toID
			n++
		}
	}
	return n
}

// BatonPassable returns copies of the tags that survive a baton pass.
func (s *Set) BatonPassable() []Tag {
	var out []Tag
	for _, t := range s.tags {
		if t.Def().BatonPassable {
			out = append(out, *t)
		}
	}
	return out
}

// Snapshot returns copies of every live tag in insertion order.
func (s *Set) Snapshot() []Tag {
	out := make([]Tag, len(s.tags))
	for i, t := range s.tags {
		out[i] = *t
	}
	return out
}

// Lapse asks the tag of kind k whether it survives lt. A tag that does not
// survive is removed.
//
// Postcondition: returns the effects the engine must apply.
func (s *Set) Lapse(k Kind, lt LapseType, lc LapseContext) Effects {
	t, ok := s.Get(k)
	if !ok {
		return Effects{}
	}
	var fx Effects
	if !lapse(t, lt, lc, &fx) {
		s.Remove(k)
	}
	return fx
}

// LapseAll lapses every tag that reacts to lt. LapseFaint removes every tag.
func (s *Set) LapseAll(lt LapseType, lc LapseContext) Effects {
	var total Effects
	if lt == LapseFaint {
		s.RemoveWhere(func(*Tag) bool { return true })
		return total
	}
	for _, t := range slices.Clone(s.tags) {
		if !t.Def().LapsesOn(lt) || !s.Has(t.Kind) {
			continue
		}
		total.merge(s.Lapse(t.Kind, lt, lc))
	}
	return total
}

// String lists the live kinds, for logs.
func (s *Set) String() string {
	names := make([]string, len(s.tags))
	for i, t := range s.tags {
		names[i] = t.Kind.String()
	}
	return fmt.Sprint(names)
}
