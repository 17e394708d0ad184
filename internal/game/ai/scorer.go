package ai

import (
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/creature-battle/internal/game/combat"
	"github.com/cory-johannsen/creature-battle/internal/game/creature"
	"github.com/cory-johannsen/creature-battle/internal/game/move"
	"github.com/cory-johannsen/creature-battle/internal/game/tag"
)

// Choice is a selected move and the combatant ids it will be aimed at.
type Choice struct {
	MoveID  string
	Targets []string
}

// Ranked is one candidate move with its score.
type Ranked struct {
	Move    *move.Move
	Score   float64
	Targets []string
}

// Scorer selects moves for the combatants of one battle. Every draw comes
// from the battle stream, so a seeded battle replays the same choices.
//
// Invariant: ctx must not be nil.
type Scorer struct {
	ctx  *combat.Context
	tier Tier
}

// NewScorer constructs a Scorer that plays at profile's tier.
//
// Precondition: ctx and profile must not be nil.
func NewScorer(ctx *combat.Context, profile *Profile) *Scorer {
	if ctx == nil {
		panic("ai.NewScorer: ctx must not be nil")
	}
	if profile == nil {
		panic("ai.NewScorer: profile must not be nil")
	}
	return &Scorer{ctx: ctx, tier: profile.Tier}
}

// Action wraps NextMove as a turn action.
func (s *Scorer) Action(user *creature.Combatant) combat.Action {
	c := s.NextMove(user)
	return combat.Action{Kind: combat.ActionMove, UserID: user.ID, MoveID: c.MoveID, Targets: c.Targets}
}

// NextMove chooses user's move for the coming turn.
//
// A queued move that is still usable wins outright; otherwise the usable
// movepool is considered, with Struggle when it is empty. A single usable
// move, or the move an Encore locks in, is returned without scoring.
//
// Precondition: user is registered with the scorer's context.
func (s *Scorer) NextMove(user *creature.Combatant) Choice {
	for len(user.Summon.MoveQueue) > 0 {
		q := user.Summon.MoveQueue[0]
		if slot, ok := user.Slot(q.MoveID); ok && slot.Usable() {
			return Choice{MoveID: q.MoveID, Targets: q.Targets}
		}
		user.Summon.MoveQueue = user.Summon.MoveQueue[1:]
	}

	pool := user.UsableMoves()
	if len(pool) == 0 {
		return Choice{MoveID: move.Struggle.ID, Targets: s.NextTargets(user, move.Struggle)}
	}
	if len(pool) == 1 {
		return Choice{MoveID: pool[0].Move.ID, Targets: s.NextTargets(user, pool[0].Move)}
	}
	if t, ok := user.Summon.Tags.Get(tag.Encore); ok {
		if i := slices.IndexFunc(pool, func(m *creature.MoveSlot) bool { return m.Move.ID == t.MoveID }); i >= 0 {
			return Choice{MoveID: t.MoveID, Targets: s.NextTargets(user, pool[i].Move)}
		}
	}

	if s.tier == Random {
		m := pool[s.ctx.Roller().Intn(len(pool))].Move
		return Choice{MoveID: m.ID, Targets: s.NextTargets(user, m)}
	}

	moves := make([]*move.Move, len(pool))
	for i, slot := range pool {
		moves[i] = slot.Move
	}
	if lethal := s.Lethal(user, moves); len(lethal) > 0 {
		moves = lethal
	}
	ranked := s.Rank(user, moves)
	r := s.walk(ranked)
	s.ctx.Logger().Debug("ai move chosen",
		zap.String("combatant", user.ID),
		zap.Stringer("tier", s.tier),
		zap.String("move", ranked[r].Move.ID),
		zap.Float64("score", ranked[r].Score),
		zap.Int("rank", r),
	)
	return Choice{MoveID: ranked[r].Move.ID, Targets: ranked[r].Targets}
}

// candidates returns the combatants m could be aimed at and whether it hits
// all of them at once. Field moves are scored against the user.
func (s *Scorer) candidates(user *creature.Combatant, m *move.Move) ([]*creature.Combatant, bool) {
	switch m.Target {
	case move.TargetSelf, move.TargetUserSide, move.TargetEnemySide, move.TargetEntireField:
		return []*creature.Combatant{user}, true
	case move.TargetAlly:
		return s.ctx.Allies(user), false
	case move.TargetAllNearOpponents:
		return s.ctx.Opponents(user), true
	case move.TargetAllNearOthers:
		return append(s.ctx.Opponents(user), s.ctx.Allies(user)...), true
	default:
		return s.ctx.Opponents(user), false
	}
}

// Lethal returns the attacking moves in moves that would knock out some
// opposing target, judged by a simulated damage roll.
func (s *Scorer) Lethal(user *creature.Combatant, moves []*move.Move) []*move.Move {
	var out []*move.Move
	for _, m := range moves {
		if !m.IsAttack() {
			continue
		}
		targets, multiple := s.candidates(user, m)
		count := 1
		if multiple {
			count = len(targets)
		}
		for _, t := range targets {
			if t.Side == user.Side {
				continue
			}
			o := s.ctx.ResolveAttack(combat.Invocation{User: user, Target: t, Move: m, Simulated: true, TargetCount: count})
			if o.Cancelled || o.Result == combat.NoEffect || o.Result == combat.Immune {
				continue
			}
			if o.Damage >= t.HP {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// score rates m against the targets NextTargets picked, taking the best.
func (s *Scorer) score(user *creature.Combatant, m *move.Move, targetIDs []string) float64 {
	best := math.Inf(-1)
	for _, id := range targetIDs {
		target := s.ctx.Combatant(id)
		if target == nil {
			continue
		}
		opponent := target.Side != user.Side
		sign := 1.0
		if opponent {
			sign = -1
		}
		score := UserBenefit(s.ctx, user, target, m) + TargetBenefit(s.ctx, user, target, m)*sign
		switch {
		case fails(s.ctx, user, target, m):
			score = failScore
		case m.IsAttack():
			eff, _ := s.ctx.MoveEffectiveness(user, target, m, false)
			stab := user.HasType(m.Type)
			if opponent {
				score *= eff
				if stab {
					score *= 1.5
				}
			} else if eff != 0 {
				score /= eff
				if stab {
					score /= 1.5
				}
			}
			if score == 0 {
				score = failScore
			}
		}
		best = max(best, score)
	}
	if math.IsInf(best, -1) {
		return failScore
	}
	return best
}

// Rank scores every move in moves and sorts them best first. Ties keep
// movepool order.
func (s *Scorer) Rank(user *creature.Combatant, moves []*move.Move) []Ranked {
	out := make([]Ranked, len(moves))
	for i, m := range moves {
		targets := s.NextTargets(user, m)
		out[i] = Ranked{Move: m, Targets: targets, Score: s.score(user, m, targets)}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return out
}

// walk steps down ranked from the top and returns the chosen index.
func (s *Scorer) walk(ranked []Ranked) int {
	rng := s.ctx.Roller()
	r := 0
	switch s.tier {
	case SmartRandom:
		for r < len(ranked)-1 && rng.Intn(8) >= 5 {
			r++
		}
	case Smart:
		for r < len(ranked)-1 && ranked[r].Score != 0 {
			ratio := ranked[r+1].Score / ranked[r].Score
			if ratio < 0 || rng.Intn(100) >= int(math.Round(ratio*50)) {
				break
			}
			r++
		}
	}
	return r
}

// NextTargets picks the combatants user aims m at. Multi-target moves take
// every candidate. Otherwise candidates are weighted by how much m would
// help them (negated for opponents); those under half the top weight are
// dropped and one is drawn from the rest.
func (s *Scorer) NextTargets(user *creature.Combatant, m *move.Move) []string {
	cands, multiple := s.candidates(user, m)
	if len(cands) == 0 {
		return nil
	}
	if multiple {
		ids := make([]string, len(cands))
		for i, c := range cands {
			ids[i] = c.ID
		}
		return ids
	}

	type weighted struct {
		id     string
		weight int
	}
	ws := make([]weighted, len(cands))
	for i, c := range cands {
		b := TargetBenefit(s.ctx, user, c, m)
		if c.Side != user.Side {
			b = -b
		}
		ws[i] = weighted{id: c.ID, weight: int(math.Round(b))}
	}
	slices.SortStableFunc(ws, func(a, b weighted) int { return b.weight - a.weight })

	if lowest := ws[len(ws)-1].weight; lowest < 1 {
		shift := 1 - lowest
		for i := range ws {
			ws[i].weight += shift
		}
	}
	if cut := slices.IndexFunc(ws, func(w weighted) bool { return float64(w.weight) < float64(ws[0].weight)/2 }); cut > 0 {
		ws = ws[:cut]
	}

	total := 0
	for _, w := range ws {
		total += w.weight
	}
	roll := s.ctx.Roller().Intn(total)
	for _, w := range ws {
		if roll < w.weight {
			return []string{w.id}
		}
		roll -= w.weight
	}
	return []string{ws[len(ws)-1].id}
}
