package item_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/creature-battle/internal/game/item"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

func TestNilItem_NoEffect(t *testing.T) {
	var it *item.Item
	v := 10.0
	it.ApplyStatBoost("pikachu", stat.Atk, &v)
	it.ApplyDamageBoost(types.Fire, &v)
	it.ApplyDamageReduction(types.Fire, 2, &v)
	assert.Equal(t, 10.0, v)
	assert.Zero(t, it.CritBonus())
	assert.False(t, it.Survives())
}

func TestApplyStatBoost_SpeciesRestriction(t *testing.T) {
	ball := &item.Item{ID: "light_ball", Name: "Light Ball", Attrs: []item.Attr{
		{Kind: item.StatBooster, Stats: []stat.Stat{stat.Atk, stat.SpAtk}, Multiplier: 2, Species: []string{"pikachu"}},
	}}
	v := 50.0
	ball.ApplyStatBoost("raichu", stat.Atk, &v)
	assert.Equal(t, 50.0, v)
	ball.ApplyStatBoost("pikachu", stat.Def, &v)
	assert.Equal(t, 50.0, v)
	ball.ApplyStatBoost("pikachu", stat.SpAtk, &v)
	assert.Equal(t, 100.0, v)
}

func TestApplyDamageReduction_SuperEffectiveOnly(t *testing.T) {
	berry := &item.Item{ID: "occa_berry", Name: "Occa Berry", Attrs: []item.Attr{
		{Kind: item.DamageReducer, Multiplier: 0.5, Type: types.Fire, SuperEffectiveOnly: true},
	}}
	v := 100.0
	berry.ApplyDamageReduction(types.Fire, 1, &v)
	assert.Equal(t, 100.0, v)
	berry.ApplyDamageReduction(types.Water, 2, &v)
	assert.Equal(t, 100.0, v)
	berry.ApplyDamageReduction(types.Fire, 2, &v)
	assert.Equal(t, 50.0, v)
}

func TestCritBonusAndTypeBoost(t *testing.T) {
	it := &item.Item{ID: "scope", Name: "Scope", Attrs: []item.Attr{
		{Kind: item.CritBooster, Bonus: 1},
		{Kind: item.TypeBooster, Type: types.Water, Multiplier: 1.2},
	}}
	assert.Equal(t, 1, it.CritBonus())
	p := 100.0
	it.ApplyTypeBoost(types.Water, &p)
	assert.InDelta(t, 120.0, p, 1e-9)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "focus_sash.yaml"), []byte(`
id: focus_sash
name: Focus Sash
attrs:
  - kind: survive
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "life_orb.yaml"), []byte(`
id: life_orb
name: Life Orb
attrs:
  - kind: damage_booster
    multiplier: 1.3
`), 0o644))
	reg, err := item.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 2)
	sash, ok := reg.Get("focus_sash")
	require.True(t, ok)
	assert.True(t, sash.Survives())
}

func TestLoadDirectory_InvalidAttr(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
id: bad
name: Bad
attrs:
  - kind: stat_booster
`), 0o644))
	_, err := item.LoadDirectory(dir)
	assert.Error(t, err)
}
