// Package dice provides the randomness abstractions used by the battle engine:
// a global cosmetic source, a seeded per-battle stream, and duration
// expressions such as "2-5" or "1d4+1".
package dice

import (
	"fmt"
	"strings"
)

// Source is the randomness provider for rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollResult records how a duration expression was evaluated. Tag durations
// keep only Total; the draws are kept for the debug log.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total is the rolled duration.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the result as "1d4+1=4 (3)". Constant expressions omit the
// draw list.
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice.RollResult.String: Expression must be non-empty")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%d", r.Expression, r.Total())
	if len(r.Dice) > 0 {
		draws := make([]string, len(r.Dice))
		for i, d := range r.Dice {
			draws[i] = fmt.Sprint(d)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(draws, ","))
	}
	return b.String()
}
