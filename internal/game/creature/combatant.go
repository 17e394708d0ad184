package creature

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/cory-johannsen/creature-battle/internal/game/ability"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/item"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// MoveSlot is one learned move and its spent PP.
type MoveSlot struct {
	Move   *move.Move
	PPUsed int
}

// Usable reports whether PP remain.
func (s *MoveSlot) Usable() bool { return s.PPUsed < s.Move.PP }

// Tera is the terastallization state.
type Tera struct {
	Active bool
	// Type may be types.Stellar.
	Type types.Type
}

// QueuedMove is a move the combatant is locked into for a later turn.
type QueuedMove struct {
	MoveID  string
	Targets []string
}

// TurnData is reset at the start of every turn.
type TurnData struct {
	HitsTaken   int
	DamageTaken int
	Acted       bool
	// Moves are the move ids used this turn, in order.
	Moves        []string
	StopMultiHit bool
}

// SummonData lives while the combatant is on the field and is discarded on
// every switch-out.
type SummonData struct {
	stages          [7]int
	Tags            *tag.Set
	TypesOverride   []types.Type
	AbilityOverride *ability.Ability
	MoveQueue       []QueuedMove
	LastMove        string
	// Turns on field since entry.
	Turns int
}

// Combatant is one creature participating in a battle.
//
// Invariant: 0 <= HP <= MaxHP().
type Combatant struct {
	// ID uniquely identifies this combatant for the lifetime of the battle.
	ID string
	// Name is copied from the species for display.
	Name      string
	Species   *Species
	FormIndex int
	// Fusion, when non-nil, fuses this combatant with a second species.
	Fusion     *Species
	FusionForm int
	// Illusion, when non-nil, is the species opponents see.
	Illusion *Species

	Level  int
	Nature stat.Nature
	IVs    stat.Block
	// Stats are the permanent stats; Stats[stat.HP] is max HP.
	Stats stat.Block
	HP    int

	Status  status.Status
	Items   []*item.Item
	Ability *ability.Ability
	Passive *ability.Ability
	Moves   []*MoveSlot
	Tera    Tera
	// StellarBoosted lists types whose one-time Stellar bonus was spent.
	StellarBoosted []types.Type

	Side    field.Side
	OnField bool

	Turn   TurnData
	Summon SummonData
	// History is every move id used this battle, in order.
	History []string
}

// Params configures New.
type Params struct {
	// ID defaults to a random UUID when empty.
	ID        string
	Species   *Species
	FormIndex int
	Fusion    *Species
	Illusion  *Species
	Level     int
	Nature    stat.Nature
	IVs       stat.Block
	Items     []*item.Item
	Ability   *ability.Ability
	Passive   *ability.Ability
	Moves     []*move.Move
	Side      field.Side
}

// New creates a Combatant at full HP with a fresh summon bag.
//
// Precondition: p.Species must be non-nil; p.Level >= 1; every move non-nil.
// Postcondition: HP == MaxHP().
func New(p Params) *Combatant {
	if p.Species == nil {
		panic("creature.New: species must not be nil")
	}
	if p.Level < 1 {
		panic("creature.New: level must be >= 1")
	}
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	c := &Combatant{
		ID:        id,
		Name:      p.Species.Name,
		Species:   p.Species,
		FormIndex: p.FormIndex,
		Fusion:    p.Fusion,
		Illusion:  p.Illusion,
		Level:     p.Level,
		Nature:    p.Nature,
		IVs:       p.IVs,
		Items:     p.Items,
		Ability:   p.Ability,
		Passive:   p.Passive,
		Side:      p.Side,
	}
	for _, m := range p.Moves {
		if m == nil {
			panic("creature.New: moves must not contain nil")
		}
		c.Moves = append(c.Moves, &MoveSlot{Move: m})
	}
	c.RecalculateStats()
	c.HP = c.MaxHP()
	c.ResetSummon()
	return c
}

// RecalculateStats recomputes the permanent stats from the current view,
// keeping the same fraction of HP lost.
func (c *Combatant) RecalculateStats() {
	lost := c.Stats[stat.HP] - c.HP
	c.Stats = stat.Calculate(c.View().BaseStats(), c.IVs, c.Level, c.Nature)
	if c.HP > 0 || lost > 0 {
		c.HP = max(0, min(c.Stats[stat.HP], c.Stats[stat.HP]-lost))
	}
}

// View resolves the combatant's identity.
func (c *Combatant) View() View {
	var v View = Base{Species: c.Species, Form: c.FormIndex}
	if c.Fusion != nil {
		v = Fused{Head: Base{Species: c.Species, Form: c.FormIndex}, Body: Base{Species: c.Fusion, Form: c.FusionForm}}
	}
	if c.Illusion != nil {
		v = Illusioned{Real: v, Disguise: Base{Species: c.Illusion}}
	}
	return v
}

// MaxHP derives from the permanent stats.
func (c *Combatant) MaxHP() int { return c.Stats[stat.HP] }

// Damage subtracts up to amount HP and returns the HP actually lost.
func (c *Combatant) Damage(amount int) int {
	applied := min(max(amount, 0), c.HP)
	c.HP -= applied
	return applied
}

// Heal restores up to amount HP and returns the HP actually gained.
func (c *Combatant) Heal(amount int) int {
	applied := min(max(amount, 0), c.MaxHP()-c.HP)
	c.HP += applied
	return applied
}

// IsFainted reports whether HP reached zero.
func (c *Combatant) IsFainted() bool { return c.HP <= 0 }

// IsActive reports whether the combatant is on the field and able to act.
func (c *Combatant) IsActive() bool { return c.OnField && !c.IsFainted() }

// IsFullHP reports whether HP equals max HP.
func (c *Combatant) IsFullHP() bool { return c.HP == c.MaxHP() }

// ResetSummon discards the summon bag. The tag listener of the old set, if
// any, carries over.
func (c *Combatant) ResetSummon() {
	tags := tag.NewSet(c.ID)
	if c.Summon.Tags != nil {
		tags.SetListener(c.Summon.Tags.Listener())
	}
	c.Summon = SummonData{Tags: tags}
}

// ResetTurn discards the turn bag.
func (c *Combatant) ResetTurn() { c.Turn = TurnData{} }

func stageIndex(s stat.Stat, fn string) int {
	if s < stat.Atk || s > stat.Eva {
		panic(fmt.Sprintf("creature.Combatant.%s: %s has no stage", fn, s))
	}
	return int(s - stat.Atk)
}

// Stage returns the battle stage of s.
//
// Precondition: s is a battle stat.
func (c *Combatant) Stage(s stat.Stat) int { return c.Summon.stages[stageIndex(s, "Stage")] }

// SetStage writes the stage of s, clamped to [stat.MinStage, stat.MaxStage].
func (c *Combatant) SetStage(s stat.Stat, v int) {
	c.Summon.stages[stageIndex(s, "SetStage")] = stat.ClampStage(v)
}

// ChangeStage adds delta to the stage of s and returns the change actually applied.
func (c *Combatant) ChangeStage(s stat.Stat, delta int) int {
	old := c.Stage(s)
	c.SetStage(s, old+delta)
	return c.Stage(s) - old
}

// Stages returns a copy of every battle stage, in stat.Battle order.
func (c *Combatant) Stages() [7]int { return c.Summon.stages }

// SetStages overwrites every battle stage.
func (c *Combatant) SetStages(st [7]int) {
	for i, v := range st {
		c.Summon.stages[i] = stat.ClampStage(v)
	}
}

// Types resolves the combatant's current types: an override from a move wins,
// then a non-Stellar tera type, then the view's types.
func (c *Combatant) Types() []types.Type {
	if len(c.Summon.TypesOverride) > 0 {
		return c.Summon.TypesOverride
	}
	if c.Tera.Active && c.Tera.Type != types.Stellar {
		return []types.Type{c.Tera.Type}
	}
	return c.View().Types()
}

// BaseTypes resolves the types as Types does but ignores tera.
func (c *Combatant) BaseTypes() []types.Type {
	if len(c.Summon.TypesOverride) > 0 {
		return c.Summon.TypesOverride
	}
	return c.View().Types()
}

// HasType reports whether t is among Types().
func (c *Combatant) HasType(t types.Type) bool { return types.Contains(c.Types(), t) }

// Abilities returns the abilities in effect: the override or primary, then the passive.
func (c *Combatant) Abilities() []*ability.Ability {
	primary := c.Ability
	if c.Summon.AbilityOverride != nil {
		primary = c.Summon.AbilityOverride
	}
	out := make([]*ability.Ability, 0, 2)
	for _, a := range []*ability.Ability{primary, c.Passive} {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// HasAbility reports whether any ability in effect carries kind.
func (c *Combatant) HasAbility(kind ability.AttrKind) bool {
	return slices.ContainsFunc(c.Abilities(), func(a *ability.Ability) bool { return a.Has(kind) })
}

// UsableMoves returns the slots with PP left that are not disabled.
func (c *Combatant) UsableMoves() []*MoveSlot {
	var out []*MoveSlot
	disabled := ""
	if t, ok := c.Summon.Tags.Get(tag.Disabled); ok {
		disabled = t.MoveID
	}
	for _, s := range c.Moves {
		if s.Usable() && s.Move.ID != disabled {
			out = append(out, s)
		}
	}
	return out
}

// Slot returns the slot holding moveID.
func (c *Combatant) Slot(moveID string) (*MoveSlot, bool) {
	for _, s := range c.Moves {
		if s.Move.ID == moveID {
			return s, true
		}
	}
	return nil, false
}

// StellarSpent reports whether the Stellar bonus for t was already used.
func (c *Combatant) StellarSpent(t types.Type) bool {
	return slices.Contains(c.StellarBoosted, t)
}

// String is the display name with its id prefix, for logs.
func (c *Combatant) String() string {
	return fmt.Sprintf("%s(%.8s)", c.Name, c.ID)
}
