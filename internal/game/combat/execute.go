package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/field"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/status"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
	"github.com/cory-johannsen/creature-battle/internal/game/types"
)

// Failure explains why a move did not run.
type Failure int

const (
	FailNone Failure = iota
	FailInactive
	FailNoPP
	FailDisabled
	// FailCancelled covers flinching and recharging.
	FailCancelled
	FailAsleep
	FailFrozen
	FailParalyzed
	FailConfused
	FailNoTarget
)

var failureNames = [...]string{
	"", "inactive", "no_pp", "disabled", "cancelled", "asleep", "frozen",
	"paralyzed", "confused", "no_target",
}

// String returns the failure label used by the presentation layer.
func (f Failure) String() string {
	if f < FailNone || int(f) >= len(failureNames) {
		return "unknown"
	}
	return failureNames[f]
}

// HitReport is what one move did to one target.
type HitReport struct {
	TargetID  string
	Missed    bool
	Protected bool
	Result    HitResult
	Critical  bool
	Strikes   int
	// Damage is the HP the target lost; substitute damage is not counted.
	Damage int
}

// MoveReport summarises one ExecuteMove call.
type MoveReport struct {
	UserID  string
	MoveID  string
	Failure Failure
	Hits    []HitReport
}

// Landed reports whether the move reached at least one target.
func (r MoveReport) Landed() bool {
	for _, h := range r.Hits {
		if !h.Missed && !h.Protected && h.Result != NoEffect && h.Result != Immune {
			return true
		}
	}
	return false
}

// ExecuteMove runs user's move against the ids in targetIDs. Targets that
// have left the field are dropped; a single-target attack with none left is
// redirected to the first active opponent. moveID == move.Struggle.ID, or a
// user with no usable moves, runs Struggle.
//
// Precondition: user is registered; moveID is Struggle or one of user's moves.
func (c *Context) ExecuteMove(user *creature.Combatant, moveID string, targetIDs []string) MoveReport {
	if c.Combatant(user.ID) == nil {
		panic("combat.Context.ExecuteMove: user is not registered")
	}
	report := MoveReport{UserID: user.ID, MoveID: moveID}
	fail := func(f Failure) MoveReport {
		report.Failure = f
		c.logger.Debug("move failed", zap.String("user", user.ID), zap.String("move", moveID), zap.Stringer("failure", f))
		c.emit(false, Event{Kind: EventMoveFailed, CombatantID: user.ID, MoveID: moveID, Failure: f})
		return report
	}
	if !user.IsActive() {
		return fail(FailInactive)
	}

	m, slot := move.Struggle, (*creature.MoveSlot)(nil)
	if moveID != move.Struggle.ID && len(user.UsableMoves()) > 0 {
		var ok bool
		if slot, ok = user.Slot(moveID); !ok {
			panic("combat.Context.ExecuteMove: " + user.ID + " does not know " + moveID)
		}
		m = slot.Move
	}
	report.MoveID = m.ID
	user.Turn.Acted = true
	if len(user.Summon.MoveQueue) > 0 && user.Summon.MoveQueue[0].MoveID == m.ID {
		user.Summon.MoveQueue = user.Summon.MoveQueue[1:]
	}

	if fx := c.LapseTags(user, tag.LapsePreMove); fx.CancelMove {
		return fail(FailCancelled)
	}
	if f := c.statusCheck(user); f != FailNone {
		return fail(f)
	}
	if user.Summon.Tags.Has(tag.Confused) {
		if fx := c.LapseTag(user, tag.Confused, tag.LapseMove); fx.SelfHit {
			c.damage(user, c.ConfusionDamage(user, false), user.ID)
			return fail(FailConfused)
		}
	}
	if slot != nil {
		if t, ok := user.Summon.Tags.Get(tag.Disabled); ok && t.MoveID == m.ID {
			return fail(FailDisabled)
		}
		if !slot.Usable() {
			return fail(FailNoPP)
		}
		slot.PPUsed++
	}

	c.logger.Debug("move used", zap.String("user", user.ID), zap.String("move", m.ID))
	c.emit(false, Event{Kind: EventMoveUsed, CombatantID: user.ID, MoveID: m.ID})
	defer c.recordMove(user, m)

	targets, fieldMove := c.resolveTargets(user, m, targetIDs)
	if len(targets) == 0 && !fieldMove {
		return fail(FailNoTarget)
	}
	opposing := 0
	for _, t := range targets {
		if t.Side != user.Side {
			opposing++
		}
	}

	dealt := 0
	for _, target := range targets {
		hit := c.hitTarget(user, target, m, opposing)
		report.Hits = append(report.Hits, hit)
		dealt += hit.Damage
		if !hit.Missed && !hit.Protected && hit.Result != NoEffect && hit.Result != Immune {
			c.applySecondary(user, target, m, false)
		}
	}
	if report.Landed() || (fieldMove && len(targets) == 0) {
		c.applySecondary(user, user, m, true)
		c.applyFieldEffects(user, m)
		c.applyRecoilAndDrain(user, m, dealt)
	}
	if user.Tera.Active && user.Tera.Type == types.Stellar && m.IsAttack() {
		moveType, _ := c.MoveType(user, m)
		if !user.StellarSpent(moveType) {
			user.StellarBoosted = append(user.StellarBoosted, moveType)
		}
	}
	if user.IsActive() {
		c.LapseTags(user, tag.LapseAfterMove)
	}
	return report
}

func (c *Context) recordMove(user *creature.Combatant, m *move.Move) {
	user.History = append(user.History, m.ID)
	user.Summon.LastMove = m.ID
	user.Turn.Moves = append(user.Turn.Moves, m.ID)
}

// statusCheck ticks sleep and rolls freeze thaw and full paralysis.
func (c *Context) statusCheck(user *creature.Combatant) Failure {
	switch user.Status.Effect {
	case status.Sleep:
		user.Status.SleepTurns--
		if user.Status.SleepTurns > 0 {
			return FailAsleep
		}
		c.CureStatus(user, false)
	case status.Freeze:
		if !c.chance(20) {
			return FailFrozen
		}
		c.CureStatus(user, false)
	case status.Paralysis:
		if c.intn(4) == 0 {
			return FailParalyzed
		}
	}
	return FailNone
}

// resolveTargets maps targetIDs to live combatants for m. fieldMove reports a
// move that acts on the field rather than on combatants.
func (c *Context) resolveTargets(user *creature.Combatant, m *move.Move, targetIDs []string) (targets []*creature.Combatant, fieldMove bool) {
	switch m.Target {
	case move.TargetSelf:
		return []*creature.Combatant{user}, false
	case move.TargetUserSide, move.TargetEnemySide, move.TargetEntireField:
		return nil, true
	case move.TargetAllNearOpponents:
		return c.Opponents(user), false
	case move.TargetAllNearOthers:
		return append(c.Opponents(user), c.Allies(user)...), false
	}
	for _, id := range targetIDs {
		if t := c.Combatant(id); t != nil && t.IsActive() {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 && m.Target == move.TargetNearOpponent {
		if opp := c.Opponents(user); len(opp) > 0 {
			targets = opp[:1]
		}
	}
	return targets, false
}

// accuracyCheck reports whether m hits target.
func (c *Context) accuracyCheck(user, target *creature.Combatant, m *move.Move) bool {
	if target.ID == user.ID {
		return true
	}
	if target.Summon.Tags.Has(tag.SemiInvulnerable) && !hitsTag(m, tag.SemiInvulnerable) {
		return false
	}
	if m.Has(move.OneHitKO) && target.Level > user.Level {
		return false
	}
	if m.Accuracy < 0 {
		return true
	}
	acc := float64(m.Accuracy)
	if m.Has(move.OneHitKO) {
		acc += float64(user.Level - target.Level)
	} else {
		acc *= c.AccuracyMultiplier(user, target, m, false)
	}
	if c.Field.HasTag(field.Gravity, user.Side) {
		acc = acc * 5 / 3
	}
	threshold := int(math.Floor(acc))
	if threshold >= 100 {
		return true
	}
	return c.intn(100) < threshold
}

// hitTarget runs accuracy, protection and every strike of m against target.
func (c *Context) hitTarget(user, target *creature.Combatant, m *move.Move, opposing int) HitReport {
	hit := HitReport{TargetID: target.ID, Result: Effective}
	if !c.accuracyCheck(user, target, m) {
		hit.Missed = true
		c.logger.Debug("move missed", zap.String("user", user.ID), zap.String("target", target.ID), zap.String("move", m.ID))
		c.emit(false, Event{Kind: EventMiss, CombatantID: target.ID, SourceID: user.ID, MoveID: m.ID})
		return hit
	}
	if target.ID != user.ID && target.Summon.Tags.Has(tag.Protected) && !m.HasFlag(move.IgnoreProtect) {
		hit.Protected = true
		return hit
	}
	if !m.IsAttack() {
		if m.Has(move.RespectTypeImmunity) {
			if eff, cancelled := c.MoveEffectiveness(user, target, m, false); cancelled || eff == 0 {
				hit.Result = NoEffect
			}
		}
		return hit
	}

	strikes, secondStrike := 1, false
	if a, ok := m.Attr(move.MultiHit); ok {
		strikes = c.intRange(a.Min, a.Max)
	} else if opposing <= 1 && c.secondStrikeMultiplier(user, false) != 1 && !m.Has(move.OneHitKO) {
		strikes, secondStrike = 2, true
	}
	for i := 0; i < strikes && target.IsActive() && user.IsActive() && !user.Turn.StopMultiHit; i++ {
		out := c.ResolveAttack(Invocation{
			User:         user,
			Target:       target,
			Move:         m,
			TargetCount:  opposing,
			SecondStrike: secondStrike && i == 1,
		})
		hit.Strikes++
		hit.Result = out.Result
		hit.Critical = hit.Critical || out.Critical
		if out.Cancelled || out.Result == NoEffect || out.Result == Immune {
			break
		}
		c.emit(false, Event{Kind: EventHit, CombatantID: target.ID, SourceID: user.ID, MoveID: m.ID, Result: out.Result, Critical: out.Critical, Amount: out.Damage})
		if c.absorbBySubstitute(user, target, m, out.Damage) {
			continue
		}
		dmg := c.survive(target, out.Damage)
		hit.Damage += c.damage(target, dmg, user.ID)
		target.Turn.HitsTaken++
	}
	user.Turn.StopMultiHit = false
	return hit
}

func (c *Context) absorbBySubstitute(user, target *creature.Combatant, m *move.Move, dmg int) bool {
	if target.ID == user.ID || m.HasFlag(move.Sound) || m.HasFlag(move.IgnoreSubstitute) {
		return false
	}
	for _, a := range user.Abilities() {
		if a.Infiltrates() {
			return false
		}
	}
	sub, ok := target.Summon.Tags.Get(tag.Substitute)
	if !ok {
		return false
	}
	sub.HP -= dmg
	if sub.HP <= 0 {
		target.Summon.Tags.Remove(tag.Substitute)
	}
	return true
}

// survive leaves target at 1 HP when a hit would knock it out from full HP
// through a survival item or sturdy, or at any HP while enduring.
func (c *Context) survive(target *creature.Combatant, dmg int) int {
	if dmg < target.HP {
		return dmg
	}
	if target.Summon.Tags.Has(tag.Enduring) {
		return target.HP - 1
	}
	if !target.IsFullHP() {
		return dmg
	}
	for _, it := range target.Items {
		if it.Survives() {
			return target.HP - 1
		}
	}
	for _, a := range target.Abilities() {
		if a.IsSturdy() {
			return target.HP - 1
		}
	}
	return dmg
}

// applySecondary applies status, tag and stage attributes whose Self flag
// matches self. Effects on a fainted target are skipped.
func (c *Context) applySecondary(user, target *creature.Combatant, m *move.Move, self bool) {
	for i := range m.Attrs {
		a := &m.Attrs[i]
		if a.Self != self || target.IsFainted() {
			continue
		}
		switch a.Kind {
		case move.StatusEffect:
			if c.chance(a.Chance) {
				c.TrySetStatus(target, a.Status, StatusQuery{Source: user})
			}
		case move.AddTag:
			if c.chance(a.Chance) {
				t := tag.Tag{Kind: a.Tag, Turns: a.Turns}
				if a.Tag == tag.Encore || a.Tag == tag.Disabled {
					t.MoveID = target.Summon.LastMove
				}
				c.AddTag(target, t, TagQuery{Source: user, MoveID: m.ID})
			}
		case move.StatStageChange:
			if !c.chance(a.Chance) {
				continue
			}
			if a.Stages < 0 && target.ID != user.ID && c.Field.HasTag(field.Mist, target.Side) {
				continue
			}
			for _, s := range a.Stats {
				if delta := target.ChangeStage(s, a.Stages); delta != 0 {
					c.logger.Debug("stage changed", zap.String("target", target.ID), zap.Stringer("stat", s), zap.Int("delta", delta))
					c.emit(false, Event{Kind: EventStageChanged, CombatantID: target.ID, SourceID: user.ID, Stat: s, Amount: delta})
				}
			}
		}
	}
}

const defaultFieldTurns = 5

func (c *Context) applyFieldEffects(user *creature.Combatant, m *move.Move) {
	turns := func(a *move.Attr) int {
		if a.Turns > 0 {
			return a.Turns
		}
		return defaultFieldTurns
	}
	for _, a := range m.AttrsOf(move.SetWeather) {
		if c.Field.SetWeather(a.Weather, turns(a)) {
			c.emit(false, Event{Kind: EventWeather, SourceID: user.ID, Weather: a.Weather})
		}
	}
	for _, a := range m.AttrsOf(move.SetTerrain) {
		if c.Field.SetTerrain(a.Terrain, turns(a)) {
			c.emit(false, Event{Kind: EventTerrain, SourceID: user.ID, Terrain: a.Terrain})
		}
	}
	for _, a := range m.AttrsOf(move.AddArenaTag) {
		at := field.ArenaTag{Kind: a.Arena, Side: user.Side, Turns: a.Turns, SourceID: user.ID}
		switch m.Target {
		case move.TargetEnemySide, move.TargetNearOpponent, move.TargetAllNearOpponents:
			at.Side = user.Side.Opposite()
		case move.TargetEntireField:
			at.Both = true
		}
		if c.Field.AddTag(at) {
			c.emit(false, Event{Kind: EventArenaTagAdded, SourceID: user.ID, ArenaTag: a.Arena, Side: at.Side})
		}
	}
}

func (c *Context) applyRecoilAndDrain(user *creature.Combatant, m *move.Move, dealt int) {
	if a, ok := m.Attr(move.Drain); ok && dealt > 0 {
		c.heal(user, max(1, int(a.Fraction*float64(dealt))))
	}
	if a, ok := m.Attr(move.Recoil); ok {
		base := dealt
		if a.OfMaxHP {
			base = user.MaxHP()
		}
		if base > 0 {
			c.damage(user, max(1, int(a.Fraction*float64(base))), user.ID)
		}
	}
}
