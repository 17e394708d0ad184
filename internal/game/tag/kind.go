// Package tag implements the per-combatant battler tag registry: volatile
// conditions with add, overlap, lapse and remove lifecycles.
package tag

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies a battler tag. At most one tag of each kind is live on a combatant.
type Kind int

const (
	None Kind = iota
	Confused
	Flinched
	Recharging
	Seeded
	Nightmare
	Encore
	Disabled
	Bound
	Trapped
	Protected
	Enduring
	PerishSong
	SlowStart
	CritBoost
	DragonCheer
	AlwaysCrit
	Exposed
	MagnetRisen
	Grounded
	Substitute
	SemiInvulnerable
	ReceiveDoubleDamage
	Drowsy
	SaltCured
	Cursed
	AquaRing
	TypeBoost
	HighestStatBoost
	Minimized
)

var kindNames = [...]string{
	"none", "confused", "flinched", "recharging", "seeded", "nightmare", "encore",
	"disabled", "bound", "trapped", "protected", "enduring", "perish_song",
	"slow_start", "crit_boost", "dragon_cheer", "always_crit", "exposed",
	"magnet_risen", "grounded", "substitute", "semi_invulnerable",
	"receive_double_damage", "drowsy", "salt_cured", "cursed", "aqua_ring",
	"type_boost", "highest_stat_boost", "minimized",
}

// String returns the snake_case kind name.
func (k Kind) String() string {
	if k < None || int(k) >= len(kindNames) {
		return fmt.Sprintf("tag(%d)", int(k))
	}
	return kindNames[k]
}

// Parse returns the kind with the given name.
func Parse(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == key {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("tag: unknown kind %q", name)
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// LapseType is the phase boundary at which a tag is asked whether it survives.
type LapseType int

const (
	LapseFaint LapseType = iota
	LapseMove
	LapsePreMove
	LapseAfterMove
	LapseMoveEffect
	LapseTurnEnd
	// LapseCustom is only triggered explicitly by the engine.
	LapseCustom
)

var lapseNames = [...]string{"faint", "move", "pre_move", "after_move", "move_effect", "turn_end", "custom"}

// String returns the lapse type name.
func (l LapseType) String() string {
	if l < LapseFaint || l > LapseCustom {
		return fmt.Sprintf("lapse(%d)", int(l))
	}
	return lapseNames[l]
}
