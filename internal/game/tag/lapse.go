package tag

import "github.com/cory-johannsen/creature-battle/internal/game/types"

// tick is the shared countdown: decrement and survive while turns remain.
func tick(t *Tag) bool {
	if t.Def().Untimed {
		return true
	}
	t.Turns--
	return t.Turns > 0
}

func fraction(maxHP, div int) int {
	return max(1, maxHP/div)
}

// lapse dispatches on t.Kind and reports whether t survives.
func lapse(t *Tag, lt LapseType, lc LapseContext, fx *Effects) bool {
	switch t.Kind {
	case Confused:
		if lt == LapseCustom {
			return true
		}
		if !tick(t) {
			return false
		}
		if lc.RNG != nil && lc.RNG.Intn(3) == 0 {
			fx.SelfHit = true
			fx.CancelMove = true
		}
		return true

	case Flinched, Recharging:
		if lt == LapsePreMove {
			fx.CancelMove = true
			if t.Kind == Flinched {
				return false
			}
		}
		return tick(t)

	case Seeded:
		fx.Damage += fraction(lc.MaxHP, 8)
		fx.DrainTo = t.SourceID
		return true

	case Nightmare, Cursed:
		fx.Damage += fraction(lc.MaxHP, 4)
		return true

	case Bound:
		if !tick(t) {
			return false
		}
		fx.Damage += fraction(lc.MaxHP, 8)
		return true

	case SaltCured:
		div := 8
		if types.Contains(lc.OwnerTypes, types.Water) || types.Contains(lc.OwnerTypes, types.Steel) {
			div = 4
		}
		fx.Damage += fraction(lc.MaxHP, div)
		return true

	case AquaRing:
		fx.Heal += fraction(lc.MaxHP, 16)
		return true

	case PerishSong:
		if !tick(t) {
			fx.Faint = true
			return false
		}
		return true

	case Drowsy:
		if !tick(t) {
			fx.Sleep = true
			return false
		}
		return true

	default:
		return tick(t)
	}
}

// ExposedAllows reports whether an Exposed tag hiding defending type immune
// lets an attack of type attack through.
func ExposedAllows(immune, attack types.Type) bool {
	switch immune {
	case types.Ghost:
		return attack == types.Normal || attack == types.Fighting
	case types.Dark:
		return attack == types.Psychic
	}
	return false
}
