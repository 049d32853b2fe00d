package duel

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/powerengine/internal/ai"
	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/combat"
	"github.com/udisondev/powerengine/internal/game/skill"
	"github.com/udisondev/powerengine/internal/game/stats"
	"github.com/udisondev/powerengine/internal/model"
)

// DefaultMaxTurns bounds a duel that nobody can win.
const DefaultMaxTurns = 60

// Options tunes a simulation. Zero values select the defaults.
type Options struct {
	MaxTurns int
	Balance  combat.Balance
}

// Fighter is one side of a duel: an aggregated sheet plus current vitals.
type Fighter struct {
	ID        string
	Name      string
	Combatant combat.Combatant
	Weapon    data.WeaponType
	Skills    []model.LearnedSkill
	// HP and Mana at the start of the duel; zero means full.
	HP   int32
	Mana int32
}

// FighterFor builds a fighter from a character and its aggregated sheet.
// Vitals start at the character's current HP and mana.
func FighterFor(content *data.Content, c *model.Character, res stats.Result) Fighter {
	return Fighter{
		ID:        c.ID,
		Name:      c.Name,
		Combatant: combat.Combatant{Attributes: res.Attributes, Stats: res.Stats},
		Weapon:    c.WeaponType(content),
		Skills:    c.Skills,
		HP:        c.Vitals.HP,
		Mana:      c.Vitals.Mana,
	}
}

// Turn records one action.
type Turn struct {
	Number        int                  `json:"turn"`
	ActorID       string               `json:"actor"`
	Action        string               `json:"action"`
	SkillID       string               `json:"skill,omitempty"`
	Outcome       combat.DamageOutcome `json:"outcome"`
	Healed        int32                `json:"healed,omitempty"`
	Ticked        int32                `json:"ticked,omitempty"`
	Stunned       bool                 `json:"stunned,omitempty"`
	ActorHP       int32                `json:"actor_hp"`
	TargetHP      int32                `json:"target_hp"`
	Justification string               `json:"why"`
}

// Report is the full log of a duel.
type Report struct {
	Turns    []Turn `json:"turns"`
	WinnerID string `json:"winner,omitempty"`
	Draw     bool   `json:"draw"`
}

// ongoing is a landed status effect with turns left.
type ongoing struct {
	effect data.StatusEffect
	left   int32
}

type side struct {
	f       Fighter
	hp      int32
	mana    int32
	maxHP   int32
	maxMana int32
	learned map[string]model.LearnedSkill
	eff     map[string]*skill.Effective
	opts    []ai.SkillOption
	effects []ongoing
}

func newSide(content *data.Content, f Fighter) (*side, error) {
	s := &side{
		f:       f,
		maxHP:   int32(f.Combatant.Stats.MaxHealth),
		maxMana: int32(f.Combatant.Stats.MaxMana),
		learned: make(map[string]model.LearnedSkill, len(f.Skills)),
		eff:     make(map[string]*skill.Effective, len(f.Skills)),
	}
	s.hp = f.HP
	if s.hp <= 0 || s.hp > s.maxHP {
		s.hp = s.maxHP
	}
	s.mana = f.Mana
	if s.mana <= 0 || s.mana > s.maxMana {
		s.mana = s.maxMana
	}

	for _, ls := range f.Skills {
		def := content.Skill(ls.SkillID)
		if def == nil {
			return nil, fmt.Errorf("%w: skill %q", data.ErrUnknownContent, ls.SkillID)
		}
		if def.IsPassive() {
			continue
		}
		eff, _, err := skill.Resolve(def, ls.Level)
		if err != nil {
			return nil, err
		}
		s.learned[ls.SkillID] = ls
		s.eff[ls.SkillID] = &eff
		s.opts = append(s.opts, ai.OptionFromEffective(&eff))
	}
	return s, nil
}

// Simulate runs a duel between a and b until one falls, MaxTurns pass or
// ctx is cancelled.
//
// The faster fighter acts first (a on ties); sides then alternate. Each side
// chooses with ai.Decide. Damage-over-time effects tick at the start of the
// afflicted side's turn and a stun skips that turn. For a given rng seed the
// report is identical on every run.
func Simulate(ctx context.Context, content *data.Content, a, b Fighter, rng combat.Roller, opts Options) (Report, error) {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.Balance == (combat.Balance{}) {
		opts.Balance = combat.DefaultBalance()
	}
	if err := opts.Balance.Validate(); err != nil {
		return Report{}, err
	}

	sa, err := newSide(content, a)
	if err != nil {
		return Report{}, fmt.Errorf("fighter %s: %w", a.ID, err)
	}
	sb, err := newSide(content, b)
	if err != nil {
		return Report{}, fmt.Errorf("fighter %s: %w", b.ID, err)
	}

	order := [2]*side{sa, sb}
	if b.Combatant.Stats.Speed > a.Combatant.Stats.Speed {
		order = [2]*side{sb, sa}
	}

	resolver := combat.NewResolver(rng, opts.Balance)
	var rep Report

	for n := 1; n <= opts.MaxTurns; n++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		actor, target := order[(n-1)%2], order[n%2]
		t, err := takeTurn(resolver, rng, content, actor, target)
		if err != nil {
			return rep, err
		}
		t.Number = n
		rep.Turns = append(rep.Turns, t)

		switch {
		case actor.hp <= 0:
			rep.WinnerID = target.f.ID
		case target.hp <= 0:
			rep.WinnerID = actor.f.ID
		}
		if rep.WinnerID != "" {
			slog.Debug("duel finished", "winner", rep.WinnerID, "turns", n)
			return rep, nil
		}
	}

	rep.Draw = true
	return rep, nil
}

func takeTurn(r *combat.Resolver, rng combat.Roller, content *data.Content, actor, target *side) (Turn, error) {
	t := Turn{ActorID: actor.f.ID}

	ticked, stunned := actor.tick()
	t.Ticked = ticked
	t.Stunned = stunned
	if actor.hp <= 0 {
		t.Action = "none"
		t.Justification = "fell to lingering effects"
		t.ActorHP, t.TargetHP = actor.hp, target.hp
		return t, nil
	}
	if stunned {
		t.Action = "none"
		t.Justification = "stunned"
		t.ActorHP, t.TargetHP = actor.hp, target.hp
		return t, nil
	}

	d := ai.Decide(ai.Situation{
		HP:         actor.hp,
		MaxHP:      actor.maxHP,
		Mana:       actor.mana,
		MaxMana:    actor.maxMana,
		OpponentHP: target.hp,
		Skills:     actor.opts,
	}, rng)
	t.Action = d.Action.String()
	t.Justification = d.Justification

	switch d.Action {
	case ai.ActionCastSkill:
		eff := actor.eff[d.SkillID]
		actor.mana -= eff.ManaCost
		t.SkillID = d.SkillID

		if eff.IsHealing() {
			heal := r.ResolveHeal(actor.f.Combatant, eff)
			heal = min(heal, actor.maxHP-actor.hp)
			actor.hp += heal
			t.Healed = heal
			break
		}

		out, err := r.ResolveSkillAttack(
			actor.f.Combatant,
			content.Skill(d.SkillID),
			actor.learned[d.SkillID],
			target.f.Combatant,
			actor.f.Weapon,
		)
		if err != nil {
			return t, err
		}
		target.hp -= out.Damage
		target.afflict(out.AppliedEffects)
		t.Outcome = out
	default:
		out := r.ResolveBasicAttack(actor.f.Combatant.Stats, target.f.Combatant.Stats)
		target.hp -= out.Damage
		t.Outcome = out
	}

	t.ActorHP, t.TargetHP = actor.hp, max(target.hp, 0)
	return t, nil
}

// tick applies damage-over-time and consumes one turn of every effect.
// Returns the damage taken and whether a stun is active.
func (s *side) tick() (int32, bool) {
	var dmg int32
	stunned := false
	kept := s.effects[:0]
	for _, o := range s.effects {
		switch o.effect.Type {
		case data.EffectBurn, data.EffectPoison, data.EffectBleed:
			dmg += int32(math.Round(o.effect.Magnitude))
		case data.EffectStun:
			stunned = true
		}
		o.left--
		if o.left > 0 {
			kept = append(kept, o)
		}
	}
	s.effects = kept
	s.hp -= dmg
	return dmg, stunned
}

func (s *side) afflict(effects []data.StatusEffect) {
	for _, e := range effects {
		if e.Duration <= 0 {
			continue
		}
		s.effects = append(s.effects, ongoing{effect: e, left: e.Duration})
	}
}
