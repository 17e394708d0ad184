package types

// Options carries the situational inputs to Resolve. The zero value resolves
// the plain chart product.
type Options struct {
	// AttackerBoosted is true while the attacker is terastallized; it decides
	// whether a Stellar attack is doubled.
	AttackerBoosted bool
	// IgnoreEffectiveness makes the result 1 unconditionally (typeless moves).
	IgnoreEffectiveness bool
	// RemoveFlying drops Flying from the defender's types before the product.
	// Callers set it for Ground attacks against a grounded target or under gravity.
	RemoveFlying bool
	// IgnoreImmunity, when non-nil, may turn a 0 factor into 1 after Override ran.
	IgnoreImmunity func(attack, defend Type) bool
	// StrongWinds halves the result when the Flying factor alone would be 2.
	StrongWinds bool
	// Override may rewrite each per-type factor after the chart lookup.
	Override func(attack, defend Type, factor *float64)
}

// Resolve returns the effectiveness multiplier of attack against defenders.
//
// Postcondition: result ∈ {0, 0.25, 0.5, 1, 2, 4} unless Override or
// StrongWinds introduce other factors; result is never negative.
func Resolve(attack Type, defenders []Type, opts Options) float64 {
	if attack == Stellar {
		if opts.AttackerBoosted {
			return 2
		}
		return 1
	}
	if opts.IgnoreEffectiveness {
		return 1
	}

	result := 1.0
	for _, d := range defenders {
		if d == Flying && opts.RemoveFlying {
			continue
		}
		factor := Multiplier(attack, d)
		if opts.Override != nil {
			opts.Override(attack, d, &factor)
		}
		if factor == 0 && opts.IgnoreImmunity != nil && opts.IgnoreImmunity(attack, d) {
			factor = 1
		}
		if factor < 0 {
			factor = 0
		}
		result *= factor
	}

	if opts.StrongWinds && Contains(defenders, Flying) && Multiplier(attack, Flying) == 2 {
		result /= 2
	}
	return result
}
