package combat

import (
	"fmt"
	"math"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/skill"
	"github.com/udisondev/powerengine/internal/model"
)

// Resolver turns aggregated stats into damage outcomes.
//
// Every call draws fresh values from the Roller; nothing is kept between
// calls. A Resolver is as goroutine-safe as its Roller: *rand.Rand is not,
// so use one Resolver per goroutine.
type Resolver struct {
	rng     Roller
	balance Balance
}

// NewResolver creates a resolver drawing from rng.
func NewResolver(rng Roller, balance Balance) *Resolver {
	return &Resolver{rng: rng, balance: balance}
}

// Balance returns the constants in use.
func (r *Resolver) Balance() Balance {
	return r.balance
}

// ResolveBasicAttack resolves a plain attack.
//
// Draw order: evasion, critical, variance. An evaded attack stops after the
// first draw with zero damage.
func (r *Resolver) ResolveBasicAttack(attacker, defender model.CombatStats) DamageOutcome {
	return r.strike(attacker.AttackPower, attacker, defender, false)
}

// ResolveSkillAttack resolves an active skill at the learned level.
//
// Raw damage is the effective base damage plus attackPower*factor plus
// attribute*scalingFactor. If the skill requires a weapon type and weapon
// differs, the mitigated damage is multiplied by the mismatch penalty. The
// mismatch flag is reported even when the attack is then evaded. On a hit,
// every non-heal status effect is rolled against its chance.
//
// Invalid definitions fail fast via ValidateSkillAttack. Content problems
// that do not stop the attack are returned in the outcome's Diagnostics.
func (r *Resolver) ResolveSkillAttack(
	attacker Combatant,
	def *data.SkillDefinition,
	learned model.LearnedSkill,
	defender Combatant,
	weapon data.WeaponType,
) (DamageOutcome, error) {
	if err := ValidateSkillAttack(def, learned); err != nil {
		return DamageOutcome{}, err
	}
	eff, diags, err := skill.Resolve(def, learned.Level)
	if err != nil {
		return DamageOutcome{}, err
	}

	raw := eff.RawDamage(attacker.Stats.AttackPower, attacker.Attributes.Get(eff.ScalingAttribute))
	mismatch := def.RequiresWeapon() && weapon != def.RequiredWeapon

	out := r.strike(raw, attacker.Stats, defender.Stats, mismatch)
	out.Diagnostics = diags
	if out.IsEvaded {
		return out, nil
	}

	for _, se := range eff.Effects {
		if se.Type == data.EffectHeal {
			continue
		}
		if r.rng.Float64() < se.Chance {
			out.AppliedEffects = append(out.AppliedEffects, se)
		}
	}
	return out, nil
}

// healPerSpiritualSense is the heal bonus fraction per spiritual sense point.
const healPerSpiritualSense = 0.01

// ResolveHeal returns the HP restored by a healing skill:
// heal magnitude scaled by 1% per point of the caster's spiritual sense.
// Healing never misses and draws no randomness.
func (r *Resolver) ResolveHeal(caster Combatant, eff *skill.Effective) int32 {
	amount := eff.HealAmount() * (1 + healPerSpiritualSense*caster.Attributes.SpiritualSense)
	return int32(math.Max(0, math.Round(amount)))
}

func (r *Resolver) strike(raw float64, attacker, defender model.CombatStats, mismatch bool) DamageOutcome {
	out := DamageOutcome{WeaponMismatchPenaltyApplied: mismatch}

	if r.rng.Float64() < defender.EvasionRate {
		out.IsEvaded = true
		return out
	}
	out.IsCritical = r.rng.Float64() < attacker.CritRate

	dmg := raw * varianceFactor(r.rng.Float64(), r.balance.Variance)
	if out.IsCritical {
		dmg *= attacker.CritDamage
	}
	dmg *= 1 - Mitigation(defender.DefensePower, r.balance.MitigationK)
	if mismatch {
		dmg *= r.balance.WeaponMismatchPenalty
	}

	out.Damage = int32(math.Max(float64(r.balance.MinDamage), math.Round(dmg)))
	return out
}

func (o DamageOutcome) String() string {
	switch {
	case o.IsEvaded:
		return "evaded"
	case o.IsCritical:
		return fmt.Sprintf("%d (critical)", o.Damage)
	default:
		return fmt.Sprintf("%d", o.Damage)
	}
}
