package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// EndTurn applies residual damage, lapses TURN_END tags, ticks the field and
// resets every active combatant's turn bag.
func (c *Context) EndTurn() {
	for _, cb := range c.Active() {
		c.residualStatus(cb)
		if cb.IsActive() {
			c.LapseTags(cb, tag.LapseTurnEnd)
		}
		if cb.IsActive() {
			c.weatherDamage(cb)
		}
		if cb.IsActive() && c.Field.Terrain == field.GrassyTerrain && c.IsGrounded(cb) {
			c.heal(cb, max(1, cb.MaxHP()/16))
		}
	}

	expired := c.Field.Tick()
	if expired.Weather != field.WeatherNone {
		c.logger.Debug("weather ended", zap.Stringer("weather", expired.Weather))
		c.emit(false, Event{Kind: EventWeather, Weather: field.WeatherNone})
	}
	if expired.Terrain != field.TerrainNone {
		c.logger.Debug("terrain ended", zap.Stringer("terrain", expired.Terrain))
		c.emit(false, Event{Kind: EventTerrain, Terrain: field.TerrainNone})
	}
	for _, t := range expired.Tags {
		c.emit(false, Event{Kind: EventArenaTagRemoved, ArenaTag: t.Kind, Side: t.Side})
	}

	for _, cb := range c.Active() {
		cb.Summon.Turns++
		cb.ResetTurn()
	}
}

func (c *Context) residualStatus(cb *creature.Combatant) {
	maxHP := cb.MaxHP()
	switch cb.Status.Effect {
	case status.Poison:
		c.damage(cb, max(1, maxHP/8), "")
	case status.Toxic:
		cb.Status.ToxicTurn = min(cb.Status.ToxicTurn+1, 15)
		c.damage(cb, max(1, maxHP*cb.Status.ToxicTurn/16), "")
	case status.Burn:
		c.damage(cb, max(1, maxHP/16), "")
	}
}

func (c *Context) weatherDamage(cb *creature.Combatant) {
	var immune []types.Type
	switch c.Field.Weather {
	case field.Sandstorm:
		immune = []types.Type{types.Rock, types.Ground, types.Steel}
	case field.Hail:
		immune = []types.Type{types.Ice}
	default:
		return
	}
	for _, t := range immune {
		if cb.HasType(t) {
			return
		}
	}
	if cb.Summon.Tags.Has(tag.SemiInvulnerable) {
		return
	}
	c.damage(cb, max(1, cb.MaxHP()/16), "")
}
