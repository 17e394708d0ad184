package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

func chartedType() *rapid.Generator[types.Type] {
	return rapid.SampledFrom(types.All())
}

func TestMultiplier_KnownEntries(t *testing.T) {
	assert.Equal(t, 2.0, types.Multiplier(types.Water, types.Fire))
	assert.Equal(t, 0.5, types.Multiplier(types.Fire, types.Water))
	assert.Equal(t, 0.0, types.Multiplier(types.Normal, types.Ghost))
	assert.Equal(t, 0.0, types.Multiplier(types.Ground, types.Flying))
	assert.Equal(t, 0.0, types.Multiplier(types.Dragon, types.Fairy))
	assert.Equal(t, 1.0, types.Multiplier(types.Normal, types.Normal))
	assert.Equal(t, 1.0, types.Multiplier(types.Unknown, types.Steel))
}

func TestMultiplier_ChartValues_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := chartedType().Draw(rt, "attack")
		d := chartedType().Draw(rt, "defend")
		assert.Contains(rt, []float64{0, 0.5, 1, 2}, types.Multiplier(a, d))
	})
}

func TestResolve_DualTypeProducts_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := chartedType().Draw(rt, "attack")
		d1 := chartedType().Draw(rt, "d1")
		d2 := chartedType().Draw(rt, "d2")
		got := types.Resolve(a, []types.Type{d1, d2}, types.Options{})
		assert.GreaterOrEqual(rt, got, 0.0)
		assert.Contains(rt, []float64{0, 0.25, 0.5, 1, 2, 4}, got)
	})
}

func TestResolve_DoubleWeakness(t *testing.T) {
	got := types.Resolve(types.Ice, []types.Type{types.Dragon, types.Flying}, types.Options{})
	assert.Equal(t, 4.0, got)
}

func TestResolve_Stellar(t *testing.T) {
	defenders := []types.Type{types.Ghost}
	assert.Equal(t, 2.0, types.Resolve(types.Stellar, defenders, types.Options{AttackerBoosted: true}))
	assert.Equal(t, 1.0, types.Resolve(types.Stellar, defenders, types.Options{}))
}

func TestResolve_IgnoreEffectiveness(t *testing.T) {
	got := types.Resolve(types.Normal, []types.Type{types.Ghost}, types.Options{IgnoreEffectiveness: true})
	assert.Equal(t, 1.0, got)
}

func TestResolve_RemoveFlyingKeepsOtherComponents(t *testing.T) {
	defenders := []types.Type{types.Steel, types.Flying}
	assert.Equal(t, 0.0, types.Resolve(types.Ground, defenders, types.Options{}))
	assert.Equal(t, 2.0, types.Resolve(types.Ground, defenders, types.Options{RemoveFlying: true}))
}

func TestResolve_IgnoreImmunity(t *testing.T) {
	scrappy := func(a, d types.Type) bool { return d == types.Ghost && a == types.Normal }
	got := types.Resolve(types.Normal, []types.Type{types.Ghost, types.Rock}, types.Options{IgnoreImmunity: scrappy})
	assert.Equal(t, 0.5, got)
}

func TestResolve_StrongWinds(t *testing.T) {
	opts := types.Options{StrongWinds: true}
	assert.Equal(t, 1.0, types.Resolve(types.Rock, []types.Type{types.Flying}, opts))
	assert.Equal(t, 2.0, types.Resolve(types.Rock, []types.Type{types.Flying, types.Bug}, opts))
	assert.Equal(t, 1.0, types.Resolve(types.Water, []types.Type{types.Flying}, opts))
}

func TestResolve_Override(t *testing.T) {
	freezeDry := func(a, d types.Type, f *float64) {
		if d == types.Water {
			*f = 2
		}
	}
	got := types.Resolve(types.Ice, []types.Type{types.Water}, types.Options{Override: freezeDry})
	assert.Equal(t, 2.0, got)
}

func TestParseAndYAML(t *testing.T) {
	tp, err := types.Parse("Fire")
	require.NoError(t, err)
	assert.Equal(t, types.Fire, tp)
	_, err = types.Parse("plasma")
	assert.Error(t, err)

	var doc struct {
		Types []types.Type `yaml:"types"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("types: [grass, poison]"), &doc))
	assert.Equal(t, []types.Type{types.Grass, types.Poison}, doc.Types)
	assert.Error(t, yaml.Unmarshal([]byte("types: [plasma]"), &doc))
}

func TestString(t *testing.T) {
	assert.Equal(t, "electric", types.Electric.String())
	assert.Equal(t, "type(99)", types.Type(99).String())
}
