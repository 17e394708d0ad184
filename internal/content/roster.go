package content

import (
	"fmt"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/dice"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/item"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
)

// MaxMoves is the most moves a generated combatant knows.
const MaxMoves = 4

// maxIV is the exclusive upper bound of an individual value.
const maxIV = 32

// itemPercent is the chance a generated combatant holds an item.
const itemPercent = 50

// Build describes one combatant by content ids.
type Build struct {
	Species string
	// Form is the form index; 0 is the base form.
	Form    int
	Level   int
	Nature  stat.Nature
	IVs     stat.Block
	Ability string
	Items   []string
	// Moves defaults to the first MaxMoves moves of the species pool.
	Moves []string
	Side  field.Side
}

// NewCombatant resolves b against the library.
//
// Postcondition: Returns an error when any id in b is unknown.
func (l *Library) NewCombatant(b Build) (*creature.Combatant, error) {
	sp, ok := l.SpeciesByID(b.Species)
	if !ok {
		return nil, fmt.Errorf("content: unknown species %q", b.Species)
	}
	if b.Level < 1 {
		return nil, fmt.Errorf("content: species %q: level must be >= 1, got %d", b.Species, b.Level)
	}
	if b.Form < 0 || b.Form > len(sp.Forms) {
		return nil, fmt.Errorf("content: species %q has no form %d", b.Species, b.Form)
	}

	abilityID := b.Ability
	if abilityID == "" {
		abilityID = sp.Abilities[0]
	}
	ab, ok := l.Abilities.Get(abilityID)
	if !ok {
		return nil, fmt.Errorf("content: unknown ability %q", abilityID)
	}
	var passive *ability.Ability
	if sp.Passive != "" {
		passive, _ = l.Abilities.Get(sp.Passive)
	}

	ids := b.Moves
	if len(ids) == 0 {
		ids = sp.Moves[:min(len(sp.Moves), MaxMoves)]
	}
	moves := make([]*move.Move, 0, len(ids))
	for _, id := range ids {
		m, ok := l.Moves.Get(id)
		if !ok {
			return nil, fmt.Errorf("content: unknown move %q", id)
		}
		moves = append(moves, m)
	}

	items := make([]*item.Item, 0, len(b.Items))
	for _, id := range b.Items {
		it, ok := l.Items.Get(id)
		if !ok {
			return nil, fmt.Errorf("content: unknown item %q", id)
		}
		items = append(items, it)
	}

	return creature.New(creature.Params{
		Species:   sp,
		FormIndex: b.Form,
		Level:     b.Level,
		Nature:    b.Nature,
		IVs:       b.IVs,
		Items:     items,
		Ability:   ab,
		Passive:   passive,
		Moves:     moves,
		Side:      b.Side,
	}), nil
}

// RandomBuild draws a build for side at level: species, nature, IVs and
// ability uniformly, up to MaxMoves distinct moves from the species pool,
// and an item half of the time.
//
// Precondition: src must not be nil; level >= 1.
func (l *Library) RandomBuild(src dice.Source, level int, side field.Side) Build {
	if src == nil {
		panic("content.Library.RandomBuild: src must not be nil")
	}
	all := l.Species()
	sp := all[src.Intn(len(all))]

	b := Build{
		Species: sp.ID,
		Level:   level,
		Nature:  stat.Nature(src.Intn(stat.NatureCount)),
		Ability: sp.Abilities[src.Intn(len(sp.Abilities))],
		Side:    side,
	}
	for i := range b.IVs {
		b.IVs[i] = src.Intn(maxIV)
	}

	pool := append([]string(nil), sp.Moves...)
	n := min(len(pool), MaxMoves)
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	b.Moves = pool[:n]

	if items := l.Items.All(); len(items) > 0 && src.Intn(100) < itemPercent {
		b.Items = []string{items[src.Intn(len(items))].ID}
	}
	return b
}

// RandomRoster draws n combatants for side.
//
// Precondition: n >= 1.
func (l *Library) RandomRoster(src dice.Source, n, level int, side field.Side) ([]*creature.Combatant, error) {
	if n < 1 {
		panic("content.Library.RandomRoster: n must be >= 1")
	}
	out := make([]*creature.Combatant, 0, n)
	for i := 0; i < n; i++ {
		cb, err := l.NewCombatant(l.RandomBuild(src, level, side))
		if err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, nil
}
