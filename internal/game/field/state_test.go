package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

func TestAttackTypeMultiplier_Weather(t *testing.T) {
	s := field.NewState(false)
	s.SetWeather(field.Sunny, 5)
	assert.Equal(t, 1.5, s.AttackTypeMultiplier(types.Fire, false))
	assert.Equal(t, 0.5, s.AttackTypeMultiplier(types.Water, false))

	s.SetWeather(field.HeavyRain, 0)
	assert.Equal(t, 0.0, s.AttackTypeMultiplier(types.Fire, true))
	assert.Equal(t, 1.5, s.AttackTypeMultiplier(types.Water, true))
}

func TestAttackTypeMultiplier_TerrainNeedsGrounded(t *testing.T) {
	s := field.NewState(false)
	s.SetTerrain(field.ElectricTerrain, 5)
	assert.Equal(t, 1.3, s.AttackTypeMultiplier(types.Electric, true))
	assert.Equal(t, 1.0, s.AttackTypeMultiplier(types.Electric, false))
}

func TestScreenMultiplier(t *testing.T) {
	s := field.NewState(false)
	s.AddTag(field.ArenaTag{Kind: field.Reflect, Side: field.EnemySide, Turns: 5})
	assert.Equal(t, 0.5, s.ScreenMultiplier(field.EnemySide, true))
	assert.Equal(t, 1.0, s.ScreenMultiplier(field.EnemySide, false))
	assert.Equal(t, 1.0, s.ScreenMultiplier(field.PlayerSide, true))

	s.Double = true
	assert.InDelta(t, 2.0/3, s.ScreenMultiplier(field.EnemySide, true), 1e-9)

	s.AddTag(field.ArenaTag{Kind: field.AuroraVeil, Side: field.PlayerSide, Turns: 5})
	assert.InDelta(t, 2.0/3, s.ScreenMultiplier(field.PlayerSide, false), 1e-9)
}

func TestAddTag_HazardLayers(t *testing.T) {
	s := field.NewState(false)
	for i := 0; i < 3; i++ {
		assert.True(t, s.AddTag(field.ArenaTag{Kind: field.Spikes, Side: field.EnemySide}))
	}
	assert.False(t, s.AddTag(field.ArenaTag{Kind: field.Spikes, Side: field.EnemySide}))
	tag, ok := s.Tag(field.Spikes, field.EnemySide)
	require.True(t, ok)
	assert.Equal(t, 3, tag.Layers)

	assert.True(t, s.AddTag(field.ArenaTag{Kind: field.Reflect, Side: field.EnemySide, Turns: 5}))
	assert.False(t, s.AddTag(field.ArenaTag{Kind: field.Reflect, Side: field.EnemySide, Turns: 5}))
}

func TestHasTag_FieldWide(t *testing.T) {
	s := field.NewState(false)
	s.AddTag(field.ArenaTag{Kind: field.Gravity, Both: true, Turns: 5})
	assert.True(t, s.HasTag(field.Gravity, field.PlayerSide))
	assert.True(t, s.HasTag(field.Gravity, field.EnemySide))
	assert.True(t, s.RemoveTag(field.Gravity, field.EnemySide))
	assert.False(t, s.HasTag(field.Gravity, field.PlayerSide))
}

func TestTick_ExpiresConditions(t *testing.T) {
	s := field.NewState(false)
	s.SetWeather(field.Rain, 2)
	s.SetTerrain(field.MistyTerrain, 1)
	s.AddTag(field.ArenaTag{Kind: field.Tailwind, Side: field.PlayerSide, Turns: 1})
	s.AddTag(field.ArenaTag{Kind: field.StealthRock, Side: field.EnemySide})

	exp := s.Tick()
	assert.Equal(t, field.MistyTerrain, exp.Terrain)
	assert.Equal(t, field.WeatherNone, exp.Weather)
	require.Len(t, exp.Tags, 1)
	assert.Equal(t, field.Tailwind, exp.Tags[0].Kind)
	assert.Equal(t, field.Rain, s.Weather)
	assert.True(t, s.HasTag(field.StealthRock, field.EnemySide))

	exp = s.Tick()
	assert.Equal(t, field.Rain, exp.Weather)
	assert.Equal(t, field.WeatherNone, s.Weather)
}

func TestSetWeather_SameIsNoOp(t *testing.T) {
	s := field.NewState(false)
	assert.True(t, s.SetWeather(field.Sandstorm, 5))
	assert.False(t, s.SetWeather(field.Sandstorm, 8))
	assert.Equal(t, 5, s.WeatherTurns)
}

func TestPositions(t *testing.T) {
	s := field.NewState(true)
	s.Place(field.PlayerSide, 0, "a")
	s.Place(field.PlayerSide, 1, "b")
	s.Place(field.EnemySide, 0, "x")
	assert.Equal(t, []string{"a", "b", "x"}, s.All())

	side, ok := s.SideOf("x")
	require.True(t, ok)
	assert.Equal(t, field.EnemySide, side)
	assert.Equal(t, 1, s.Slot(field.PlayerSide, "b"))

	assert.Equal(t, 0, s.Remove("a"))
	assert.Equal(t, []string{"b"}, s.Positions(field.PlayerSide))
	assert.Panics(t, func() { s.Place(field.PlayerSide, 0, "") })
}

func TestClone_IsDeep(t *testing.T) {
	s := field.NewState(false)
	s.Place(field.PlayerSide, 0, "a")
	s.AddTag(field.ArenaTag{Kind: field.Safeguard, Side: field.PlayerSide, Turns: 5})
	c := s.Clone()
	c.Tick()
	c.Place(field.PlayerSide, 0, "b")
	assert.Equal(t, 5, s.Tags[0].Turns)
	assert.Equal(t, []string{"a"}, s.Positions(field.PlayerSide))
}

func TestYAMLNames(t *testing.T) {
	var doc struct {
		Weather field.Weather      `yaml:"weather"`
		Terrain field.Terrain      `yaml:"terrain"`
		Tag     field.ArenaTagKind `yaml:"tag"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("weather: heavy_rain\nterrain: psychic\ntag: light_screen\n"), &doc))
	assert.Equal(t, field.HeavyRain, doc.Weather)
	assert.Equal(t, field.PsychicTerrain, doc.Terrain)
	assert.Equal(t, field.LightScreen, doc.Tag)
	assert.Error(t, yaml.Unmarshal([]byte("weather: acid"), &doc))
}
