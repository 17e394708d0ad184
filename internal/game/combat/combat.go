// Package combat implements the battle resolution engine: effective stats,
// type effectiveness, critical hits, the damage pipeline, status transitions,
// battler tag lifecycle, move execution, and turn sequencing.
package combat

import (
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/stat"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
)

// HitResult is the qualitative outcome of one attack against one target.
type HitResult int

const (
	Effective HitResult = iota
	SuperEffective
	NotVeryEffective
	OneHitKO
	NoEffect
	Immune
)

// String returns a human-readable result label.
func (r HitResult) String() string {
	switch r {
	case Effective:
		return "effective"
	case SuperEffective:
		return "super effective"
	case NotVeryEffective:
		return "not very effective"
	case OneHitKO:
		return "one-hit KO"
	case NoEffect:
		return "no effect"
	case Immune:
		return "immune"
	default:
		return "unknown"
	}
}

// resultFor classifies a type multiplier.
func resultFor(effectiveness float64) HitResult {
	switch {
	case effectiveness < 1:
		return NotVeryEffective
	case effectiveness > 1:
		return SuperEffective
	default:
		return Effective
	}
}

// EventKind classifies a presentation event.
type EventKind int

const (
	EventMoveUsed EventKind = iota
	EventMoveFailed
	EventMiss
	EventHit
	EventDamage
	EventHeal
	EventFaint
	EventStatusSet
	EventStatusBlocked
	EventStatusCured
	EventTagAdded
	EventTagOverlapped
	EventTagRemoved
	EventStageChanged
	EventWeather
	EventTerrain
	EventArenaTagAdded
	EventArenaTagRemoved
	EventSwitchIn
	EventSwitchOut
)

var eventNames = [...]string{
	"move_used", "move_failed", "miss", "hit", "damage", "heal", "faint",
	"status_set", "status_blocked", "status_cured", "tag_added", "tag_overlapped",
	"tag_removed", "stage_changed", "weather", "terrain", "arena_tag_added",
	"arena_tag_removed", "switch_in", "switch_out",
}

// String returns the event name.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is plain data handed to the presentation layer. Only the fields the
// Kind describes are set.
type Event struct {
	Kind        EventKind
	CombatantID string
	SourceID    string
	MoveID      string
	Amount      int
	Result      HitResult
	Critical    bool
	OldStatus   status.Effect
	Status      status.Effect
	Reason      status.Reason
	Tag         tag.Kind
	Stat        stat.Stat
	Weather     field.Weather
	Terrain     field.Terrain
	ArenaTag    field.ArenaTagKind
	Side        field.Side
	Failure     Failure
}
