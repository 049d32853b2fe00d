package ai

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/skill"
	"github.com/udisondev/powerengine/internal/model"
)

// Decision thresholds.
const (
	healBelowHP     = 0.40 // heal when HP < 40% of max
	abundantMana    = 0.70 // always commit to the best skill
	probingMana     = 0.30 // coin flip between best skill and basic attack
	probingCastOdds = 0.5
)

// Roller is a source of uniform draws in [0,1).
type Roller interface {
	Float64() float64
}

// Action is what the NPC does this turn.
type Action int8

const (
	ActionBasicAttack Action = iota
	ActionCastSkill
)

func (a Action) String() string {
	if a == ActionCastSkill {
		return "cast_skill"
	}
	return "basic_attack"
}

// SkillOption is an active skill as the policy sees it.
type SkillOption struct {
	SkillID    string
	ManaCost   int32
	BaseDamage float64
	Heal       float64
}

// IsHealing reports whether the option restores HP.
func (o SkillOption) IsHealing() bool {
	return o.Heal > 0
}

// Situation: снимок состояния на начало хода NPC.
type Situation struct {
	HP         int32
	MaxHP      int32
	Mana       int32
	MaxMana    int32
	OpponentHP int32
	// Skills lists the NPC's active skills; the policy filters by mana itself.
	Skills []SkillOption
}

// Decision is the chosen action with a human-readable reason.
type Decision struct {
	Action        Action
	SkillID       string
	Justification string
}

// Decide runs the NPC rule cascade for one turn:
//
//  1. usable heal and HP < 40% → heal (skipped when MaxHP is unknown)
//  2. no usable damage skill → basic attack
//  3. opponent HP below the best skill's base damage → finishing blow
//  4. mana ≥ 70% → best skill
//  5. mana ≥ 30% → best skill with 50% chance, else basic attack
//  6. otherwise → basic attack
//
// Only step 5 draws from rng. The policy keeps no state between turns.
func Decide(s Situation, rng Roller) Decision {
	d := decide(s, rng)
	if IsDebugEnabled() {
		slog.Debug("npc decision",
			"action", d.Action,
			"skill", d.SkillID,
			"hp", s.HP,
			"mana", s.Mana,
			"opponent_hp", s.OpponentHP,
			"reason", d.Justification)
	}
	return d
}

func decide(s Situation, rng Roller) Decision {
	var (
		heal *SkillOption
		best *SkillOption
	)
	for i := range s.Skills {
		opt := &s.Skills[i]
		if opt.ManaCost > s.Mana {
			continue
		}
		if opt.IsHealing() {
			if heal == nil {
				heal = opt
			}
			continue
		}
		if best == nil || opt.BaseDamage > best.BaseDamage {
			best = opt
		}
	}

	hpRatio := ratio(s.HP, s.MaxHP)
	manaRatio := ratio(s.Mana, s.MaxMana)

	if heal != nil && s.MaxHP > 0 && hpRatio < healBelowHP {
		return cast(heal, fmt.Sprintf("HP at %.0f%% is below %.0f%%, healing takes priority", hpRatio*100, healBelowHP*100))
	}
	if best == nil {
		return basic("no usable damage skill")
	}
	if float64(s.OpponentHP) < best.BaseDamage {
		return cast(best, fmt.Sprintf("opponent HP %d is below %s damage %.0f, finishing blow", s.OpponentHP, best.SkillID, best.BaseDamage))
	}
	if manaRatio >= abundantMana {
		return cast(best, fmt.Sprintf("mana at %.0f%%, committing to offense", manaRatio*100))
	}
	if manaRatio >= probingMana {
		if rng.Float64() < probingCastOdds {
			return cast(best, fmt.Sprintf("mana at %.0f%%, probing with skill", manaRatio*100))
		}
		return basic(fmt.Sprintf("mana at %.0f%%, probing with basic attack", manaRatio*100))
	}
	return basic(fmt.Sprintf("mana at %.0f%%, conserving resources", manaRatio*100))
}

func ratio(cur, total int32) float64 {
	if total <= 0 {
		return 0
	}
	return float64(cur) / float64(total)
}

func cast(opt *SkillOption, why string) Decision {
	return Decision{Action: ActionCastSkill, SkillID: opt.SkillID, Justification: why}
}

func basic(why string) Decision {
	return Decision{Action: ActionBasicAttack, Justification: why}
}

// OptionFromEffective converts a resolved active skill to a policy option.
func OptionFromEffective(eff *skill.Effective) SkillOption {
	return SkillOption{
		SkillID:    eff.SkillID,
		ManaCost:   eff.ManaCost,
		BaseDamage: eff.BaseDamage,
		Heal:       eff.HealAmount(),
	}
}

// OptionsFor resolves the active skills of a character into policy options.
// Passive skills are skipped. Unknown ids and invalid levels are errors.
func OptionsFor(content *data.Content, skills []model.LearnedSkill) ([]SkillOption, error) {
	opts := make([]SkillOption, 0, len(skills))
	for _, ls := range skills {
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
		opts = append(opts, OptionFromEffective(&eff))
	}
	return opts, nil
}
