package stat

import "math"

// Block is one value per permanent stat, indexed by Stat.
type Block [6]int

// MaxIV is the largest individual value.
const MaxIV = 31

// Calculate returns the permanent stats for the given base stats, individual
// values, level and nature.
//
// Precondition: 1 <= level; each iv in [0, MaxIV].
// Postcondition: every returned value >= 1; a base HP of 1 yields 1 HP.
func Calculate(base, ivs Block, level int, nature Nature) Block {
	if level < 1 {
		panic("stat.Calculate: level must be >= 1")
	}
	var out Block
	for _, s := range Permanent {
		core := (2*base[s] + ivs[s]) * level / 100
		if s == HP {
			if base[s] == 1 {
				out[s] = 1
				continue
			}
			out[s] = core + level + 10
			continue
		}
		out[s] = max(1, int(math.Floor(float64(core+5)*nature.Multiplier(s))))
	}
	return out
}
