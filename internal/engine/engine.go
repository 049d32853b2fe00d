// Package engine wires the power pipeline together for callers:
// aggregation, scoring, combat, NPC decisions, duels and population ranking.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/powerengine/internal/ai"
	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/dice"
	"github.com/udisondev/powerengine/internal/game/combat"
	"github.com/udisondev/powerengine/internal/game/cultivation"
	"github.com/udisondev/powerengine/internal/game/duel"
	"github.com/udisondev/powerengine/internal/game/ranking"
	"github.com/udisondev/powerengine/internal/game/stats"
	"github.com/udisondev/powerengine/internal/model"
)

// Engine is stateless apart from its read-only content and constants,
// so one instance may be shared by any number of goroutines.
type Engine struct {
	content   *data.Content
	balance   combat.Balance
	worldSeed uint64
}

// New creates an engine over loaded content.
func New(content *data.Content, balance combat.Balance, worldSeed uint64) (*Engine, error) {
	if content == nil {
		return nil, stats.ErrNoContent
	}
	if err := balance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid combat balance: %w", err)
	}
	return &Engine{content: content, balance: balance, worldSeed: worldSeed}, nil
}

// Content returns the content tables.
func (e *Engine) Content() *data.Content {
	return e.content
}

// Aggregate computes the character sheet and logs content diagnostics.
func (e *Engine) Aggregate(c *model.Character) (stats.Result, error) {
	res, err := stats.Aggregate(stats.InputFor(e.content, c))
	if err != nil {
		return stats.Result{}, fmt.Errorf("aggregating %s: %w", c.ID, err)
	}
	for _, d := range res.Diagnostics {
		slog.Warn("content diagnostic", "character", c.ID, "source", d.Source, "subject", d.Subject, "msg", d.Message)
	}
	return res, nil
}

// Score returns the power score of c.
func (e *Engine) Score(c *model.Character) (int64, error) {
	res, err := e.Aggregate(c)
	if err != nil {
		return 0, err
	}
	return ranking.Score(ranking.ProfileFor(e.content, c, res.Attributes, res.Stats)), nil
}

// PotentialScore returns score divided by age.
func (e *Engine) PotentialScore(c *model.Character) (int64, error) {
	score, err := e.Score(c)
	if err != nil {
		return 0, err
	}
	return ranking.Potential(score, c.AgeYears), nil
}

// Resolver returns a combat resolver drawing from rng.
func (e *Engine) Resolver(rng combat.Roller) *combat.Resolver {
	return combat.NewResolver(rng, e.balance)
}

// ResolveBasicAttack aggregates both sides and resolves a basic attack.
func (e *Engine) ResolveBasicAttack(attacker, defender *model.Character, rng combat.Roller) (combat.DamageOutcome, error) {
	a, err := e.Aggregate(attacker)
	if err != nil {
		return combat.DamageOutcome{}, err
	}
	d, err := e.Aggregate(defender)
	if err != nil {
		return combat.DamageOutcome{}, err
	}
	return e.Resolver(rng).ResolveBasicAttack(a.Stats, d.Stats), nil
}

// ResolveSkillAttack aggregates both sides and resolves attacker's learned skill.
func (e *Engine) ResolveSkillAttack(attacker *model.Character, skillID string, defender *model.Character, rng combat.Roller) (combat.DamageOutcome, error) {
	learned, ok := attacker.Skill(skillID)
	if !ok {
		return combat.DamageOutcome{}, fmt.Errorf("%w: %s", model.ErrSkillNotLearned, skillID)
	}
	a, err := e.Aggregate(attacker)
	if err != nil {
		return combat.DamageOutcome{}, err
	}
	d, err := e.Aggregate(defender)
	if err != nil {
		return combat.DamageOutcome{}, err
	}
	return e.Resolver(rng).ResolveSkillAttack(
		combat.Combatant{Attributes: a.Attributes, Stats: a.Stats},
		e.content.Skill(skillID),
		learned,
		combat.Combatant{Attributes: d.Attributes, Stats: d.Stats},
		attacker.WeaponType(e.content),
	)
}

// DecideNpcAction picks the NPC's action against opponent for this turn.
// Current HP/mana come from the vitals, maxima from the sheets. A zero or
// out-of-range current value counts as full, the same way a duel starts.
func (e *Engine) DecideNpcAction(npc, opponent *model.Character, rng ai.Roller) (ai.Decision, error) {
	res, err := e.Aggregate(npc)
	if err != nil {
		return ai.Decision{}, err
	}
	opp, err := e.Aggregate(opponent)
	if err != nil {
		return ai.Decision{}, err
	}
	opts, err := ai.OptionsFor(e.content, npc.Skills)
	if err != nil {
		return ai.Decision{}, fmt.Errorf("npc %s: %w", npc.ID, err)
	}

	maxHP, maxMana := int32(res.Stats.MaxHealth), int32(res.Stats.MaxMana)
	return ai.Decide(ai.Situation{
		HP:         orFull(npc.Vitals.HP, maxHP),
		MaxHP:      maxHP,
		Mana:       orFull(npc.Vitals.Mana, maxMana),
		MaxMana:    maxMana,
		OpponentHP: orFull(opponent.Vitals.HP, int32(opp.Stats.MaxHealth)),
		Skills:     opts,
	}, rng), nil
}

func orFull(cur, total int32) int32 {
	if cur <= 0 || cur > total {
		return total
	}
	return cur
}

// Duel simulates a fight between a and b.
// The random stream is derived from the world seed and both ids, so the
// same pair under the same seed always fights the same way.
func (e *Engine) Duel(ctx context.Context, a, b *model.Character, maxTurns int) (duel.Report, error) {
	fa, err := e.fighter(a)
	if err != nil {
		return duel.Report{}, err
	}
	fb, err := e.fighter(b)
	if err != nil {
		return duel.Report{}, err
	}
	rng := dice.NewFor(e.worldSeed, "duel", a.ID, b.ID)
	return duel.Simulate(ctx, e.content, fa, fb, rng, duel.Options{MaxTurns: maxTurns, Balance: e.balance})
}

func (e *Engine) fighter(c *model.Character) (duel.Fighter, error) {
	res, err := e.Aggregate(c)
	if err != nil {
		return duel.Fighter{}, err
	}
	return duel.FighterFor(e.content, c, res), nil
}

// Breakthrough advances c one step on the ladder with a stream derived from
// the world seed, the character and its current position.
func (e *Engine) Breakthrough(c *model.Character) ([]data.Bonus, error) {
	rng := dice.NewFor(e.worldSeed, "breakthrough", c.ID, c.Cultivation.String())
	rolled, err := cultivation.Advance(e.content.Ladder(), c, rng)
	if err != nil {
		return nil, fmt.Errorf("breakthrough %s: %w", c.ID, err)
	}
	slog.Info("breakthrough", "character", c.ID, "realm", e.content.Ladder().RealmName(c.Cultivation), "rolls", len(rolled))
	return rolled, nil
}

// RankPopulation scores every character in parallel and builds a leaderboard.
//
// Characters are independent: each one is aggregated and then scored inside
// its own goroutine, at most workers at a time (GOMAXPROCS when ≤ 0). The
// first failure cancels the rest.
func (e *Engine) RankPopulation(ctx context.Context, chars []*model.Character, workers int) (*ranking.Leaderboard, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	entries := make([]ranking.Entry, len(chars))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range chars {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Aggregate(c)
			if err != nil {
				return err
			}
			score := ranking.Score(ranking.ProfileFor(e.content, c, res.Attributes, res.Stats))
			entries[i] = ranking.Entry{
				CharacterID: c.ID,
				Name:        c.Name,
				IsNPC:       c.IsNPC,
				Realm:       e.content.Ladder().RealmName(c.Cultivation),
				Score:       score,
				Potential:   ranking.Potential(score, c.AgeYears),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking population: %w", err)
	}

	slog.Debug("population ranked", "characters", len(chars), "workers", workers)
	return ranking.NewLeaderboard(entries), nil
}
