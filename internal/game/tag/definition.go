package tag

import (
	"slices"

	"github.com/cory-johannsen/creature-battle/internal/game/dice"
)

// Def is the static description of a tag kind.
type Def struct {
	Kind       Kind
	LapseTypes []LapseType
	// Duration is rolled when a tag is added without an explicit turn count.
	Duration dice.Expression
	// Untimed tags are never decremented; they leave only through their
	// handler or explicit removal.
	Untimed bool
	// BatonPassable tags follow their owner's replacement on a baton pass.
	BatonPassable bool
	// SourceLinked tags are purged when their source leaves the field.
	SourceLinked bool
}

// LapsesOn reports whether the tag reacts to lt.
func (d *Def) LapsesOn(lt LapseType) bool {
	return slices.Contains(d.LapseTypes, lt)
}

var (
	turnEnd = []LapseType{LapseTurnEnd}
	custom  = []LapseType{LapseCustom}
)

var defs = map[Kind]*Def{
	Confused:            {LapseTypes: []LapseType{LapseMove}, Duration: dice.MustParse("2-5"), BatonPassable: true},
	Flinched:            {LapseTypes: []LapseType{LapsePreMove, LapseTurnEnd}, Duration: dice.MustParse("0")},
	Recharging:          {LapseTypes: []LapseType{LapsePreMove, LapseTurnEnd}, Duration: dice.MustParse("2")},
	Seeded:              {LapseTypes: turnEnd, Untimed: true, SourceLinked: true},
	Nightmare:           {LapseTypes: turnEnd, Untimed: true},
	Encore:              {LapseTypes: []LapseType{LapseAfterMove}, Duration: dice.MustParse("3")},
	Disabled:            {LapseTypes: turnEnd, Duration: dice.MustParse("4")},
	Bound:               {LapseTypes: turnEnd, Duration: dice.MustParse("4-5"), SourceLinked: true},
	Trapped:             {LapseTypes: custom, Untimed: true, SourceLinked: true},
	Protected:           {LapseTypes: turnEnd, Duration: dice.MustParse("0")},
	Enduring:            {LapseTypes: turnEnd, Duration: dice.MustParse("0")},
	PerishSong:          {LapseTypes: turnEnd, Duration: dice.MustParse("4"), BatonPassable: true},
	SlowStart:           {LapseTypes: turnEnd, Duration: dice.MustParse("5")},
	CritBoost:           {LapseTypes: custom, Untimed: true, BatonPassable: true},
	DragonCheer:         {LapseTypes: custom, Untimed: true, BatonPassable: true},
	AlwaysCrit:          {LapseTypes: turnEnd, Duration: dice.MustParse("2")},
	Exposed:             {LapseTypes: custom, Untimed: true},
	MagnetRisen:         {LapseTypes: turnEnd, Duration: dice.MustParse("5"), BatonPassable: true},
	Grounded:            {LapseTypes: custom, Untimed: true, BatonPassable: true},
	Substitute:          {LapseTypes: custom, Untimed: true, BatonPassable: true},
	SemiInvulnerable:    {LapseTypes: []LapseType{LapseMoveEffect}, Duration: dice.MustParse("1")},
	ReceiveDoubleDamage: {LapseTypes: []LapseType{LapsePreMove}, Duration: dice.MustParse("1")},
	Drowsy:              {LapseTypes: turnEnd, Duration: dice.MustParse("2")},
	SaltCured:           {LapseTypes: turnEnd, Untimed: true, SourceLinked: true},
	Cursed:              {LapseTypes: turnEnd, Untimed: true},
	AquaRing:            {LapseTypes: turnEnd, Untimed: true, BatonPassable: true},
	TypeBoost:           {LapseTypes: custom, Untimed: true},
	HighestStatBoost:    {LapseTypes: custom, Untimed: true},
	Minimized:           {LapseTypes: custom, Untimed: true},
}

func init() {
	for k, d := range defs {
		d.Kind = k
	}
}

// DefOf returns the definition of k.
//
// Precondition: k must be a declared kind other than None.
func DefOf(k Kind) *Def {
	d, ok := defs[k]
	if !ok {
		panic("tag.DefOf: no definition for " + k.String())
	}
	return d
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(defs))
	for k := Confused; k <= Minimized; k++ {
		out = append(out, k)
	}
	return out
}
