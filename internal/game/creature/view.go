package creature

import (
	"slices"

	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// View is the resolved identity of a combatant: Base, Illusioned or Fused.
// It is computed once per query instead of probing optional sub-records.
type View interface {
	// Types returns the view's own types, ignoring overrides and tera.
	Types() []types.Type
	// BaseStats returns the base stats the permanent stats derive from.
	BaseStats() stat.Block
	// Shown is what opponents perceive.
	Shown() Base
}

// Base is a plain species form.
type Base struct {
	Species *Species
	Form    int
}

func (b Base) Types() []types.Type {
	ts, _ := b.Species.form(b.Form)
	return ts
}

func (b Base) BaseStats() stat.Block {
	_, bs := b.Species.form(b.Form)
	return bs
}

func (b Base) Shown() Base { return b }

// Illusioned behaves as Real but is shown as Disguise.
type Illusioned struct {
	Real     View
	Disguise Base
}

func (i Illusioned) Types() []types.Type   { return i.Real.Types() }
func (i Illusioned) BaseStats() stat.Block { return i.Real.BaseStats() }
func (i Illusioned) Shown() Base           { return i.Disguise }

// Fused merges two species.
type Fused struct {
	Head Base
	Body Base
}

// Types is the head's first type followed by the body's second type, or the
// body's first when it has only one; duplicates collapse.
func (f Fused) Types() []types.Type {
	head, body := f.Head.Types(), f.Body.Types()
	second := body[0]
	if len(body) > 1 {
		second = body[1]
	}
	out := []types.Type{head[0]}
	if !slices.Contains(out, second) {
		out = append(out, second)
	}
	return out
}

// BaseStats averages both species, rounding up.
func (f Fused) BaseStats() stat.Block {
	a, b := f.Head.BaseStats(), f.Body.BaseStats()
	var out stat.Block
	for i := range out {
		out[i] = (a[i] + b[i] + 1) / 2
	}
	return out
}

func (f Fused) Shown() Base { return f.Head }
