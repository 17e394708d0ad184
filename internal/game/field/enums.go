package field

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Side is one half of the field.
type Side int

const (
	PlayerSide Side = iota
	EnemySide
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == PlayerSide {
		return EnemySide
	}
	return PlayerSide
}

// String returns "player" or "enemy".
func (s Side) String() string {
	if s == PlayerSide {
		return "player"
	}
	return "enemy"
}

// Weather is the battle-wide weather condition.
type Weather int

const (
	WeatherNone Weather = iota
	Sunny
	Rain
	Sandstorm
	Hail
	Snow
	Fog
	HeavyRain
	HarshSun
	StrongWinds
)

var weatherNames = []string{"none", "sunny", "rain", "sandstorm", "hail", "snow", "fog", "heavy_rain", "harsh_sun", "strong_winds"}

// String returns the weather name.
func (w Weather) String() string { return nameOf(weatherNames, int(w), "weather") }

// UnmarshalYAML decodes a weather from its name.
func (w *Weather) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(weatherNames, value.Value, "weather")
	*w = Weather(i)
	return err
}

// Terrain is the battle-wide terrain. It only affects grounded combatants.
type Terrain int

const (
	TerrainNone Terrain = iota
	MistyTerrain
	ElectricTerrain
	GrassyTerrain
	PsychicTerrain
)

var terrainNames = []string{"none", "misty", "electric", "grassy", "psychic"}

// String returns the terrain name.
func (t Terrain) String() string { return nameOf(terrainNames, int(t), "terrain") }

// UnmarshalYAML decodes a terrain from its name.
func (t *Terrain) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(terrainNames, value.Value, "terrain")
	*t = Terrain(i)
	return err
}

// ArenaTagKind identifies a per-side or field-wide arena tag.
type ArenaTagKind int

const (
	NoArenaTag ArenaTagKind = iota
	Reflect
	LightScreen
	AuroraVeil
	Tailwind
	Safeguard
	Mist
	// LuckyChant prevents critical hits against its side.
	LuckyChant
	Gravity
	Spikes
	ToxicSpikes
	StealthRock
)

var arenaTagNames = []string{
	"none", "reflect", "light_screen", "aurora_veil", "tailwind", "safeguard",
	"mist", "lucky_chant", "gravity", "spikes", "toxic_spikes", "stealth_rock",
}

// String returns the arena tag name.
func (k ArenaTagKind) String() string { return nameOf(arenaTagNames, int(k), "arena tag") }

// UnmarshalYAML decodes an arena tag kind from its name.
func (k *ArenaTagKind) UnmarshalYAML(value *yaml.Node) error {
	i, err := indexOf(arenaTagNames, value.Value, "arena tag")
	*k = ArenaTagKind(i)
	return err
}

// maxLayers bounds stacking hazards; kinds absent from the map never stack.
var maxLayers = map[ArenaTagKind]int{Spikes: 3, ToxicSpikes: 2}

func nameOf(names []string, i int, what string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", what, i)
	}
	return names[i]
}

func indexOf(names []string, s, what string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("field: unknown %s %q", what, s)
}
