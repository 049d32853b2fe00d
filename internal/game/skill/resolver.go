package skill

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/udisondev/powerengine/internal/data"
)

var (
	ErrNilSkill        = errors.New("nil skill definition")
	ErrLevelOutOfRange = errors.New("skill level out of range")
)

// Effective: значения скилла на конкретном уровне.
// Base values plus every upgrade delta for levels 2..Level, nothing above.
type Effective struct {
	SkillID           string
	Level             int32
	Category          data.SkillCategory
	Tier              data.Tier
	RequiredWeapon    data.WeaponType
	ManaCost          int32
	BaseDamage        float64
	AttackPowerFactor float64
	ScalingAttribute  data.Stat
	ScalingFactor     float64
	Effects           []data.StatusEffect
	PassiveBonuses    []data.Bonus
}

// IsHealing reports whether the skill carries a heal effect with positive magnitude.
func (e *Effective) IsHealing() bool {
	return e.HealAmount() > 0
}

// HealAmount returns the total magnitude of heal effects.
func (e *Effective) HealAmount() float64 {
	var total float64
	for _, eff := range e.Effects {
		if eff.Type == data.EffectHeal {
			total += eff.Magnitude
		}
	}
	return total
}

// Effect returns the first effect of type t.
func (e *Effective) Effect(t data.EffectType) (data.StatusEffect, bool) {
	for _, eff := range e.Effects {
		if eff.Type == t {
			return eff, true
		}
	}
	return data.StatusEffect{}, false
}

// RawDamage returns the pre-mitigation damage for the given attacker values:
// BaseDamage + attackPower*AttackPowerFactor + attribute*ScalingFactor.
func (e *Effective) RawDamage(attackPower, scalingAttribute float64) float64 {
	return e.BaseDamage + attackPower*e.AttackPowerFactor + scalingAttribute*e.ScalingFactor
}

// Resolve computes the effective values of def at level.
//
// Upgrades are applied in ascending level order; upgrades sharing a level are
// put in a canonical order first (sums, new effects, new bonuses, effect
// modifications), so authoring order never changes the result. A modify
// delta with no matching effect is skipped and reported as a diagnostic,
// as are deltas placed outside [2, MaxLevel]. A scaling attribute that is
// not one of the six attributes is reported too and contributes nothing.
//
// Level outside [1, MaxLevel] is a contract violation: no partial result.
func Resolve(def *data.SkillDefinition, level int32) (Effective, []data.Diagnostic, error) {
	if def == nil {
		return Effective{}, nil, ErrNilSkill
	}
	if level < 1 || level > def.MaxLevel {
		return Effective{}, nil, fmt.Errorf("%w: %s level %d not in [1,%d]", ErrLevelOutOfRange, def.ID, level, def.MaxLevel)
	}

	eff := Effective{
		SkillID:           def.ID,
		Level:             level,
		Category:          def.Category,
		Tier:              def.Tier,
		RequiredWeapon:    def.RequiredWeapon,
		BaseDamage:        def.Damage.Base,
		AttackPowerFactor: def.Damage.AttackPowerFactor,
		ScalingAttribute:  def.Damage.ScalingAttribute,
		ScalingFactor:     def.Damage.ScalingFactor,
		Effects:           slices.Clone(def.Effects),
		PassiveBonuses:    slices.Clone(def.PassiveBonuses),
	}

	var diags []data.Diagnostic
	source := "skill:" + def.ID

	attr, msg := scalingAttribute(def.Damage)
	if msg != "" {
		diags = append(diags, data.Diagnostic{Source: source, Subject: string(def.Damage.ScalingAttribute), Message: msg})
		eff.ScalingFactor = 0
	}
	eff.ScalingAttribute = attr

	applicable := make([]data.Upgrade, 0, len(def.Upgrades))
	for i, u := range def.Upgrades {
		if u == nil {
			diags = append(diags, data.Diagnostic{Source: source, Subject: fmt.Sprintf("upgrade #%d", i), Message: "nil upgrade"})
			continue
		}
		lvl := u.UpgradeLevel()
		if lvl < 2 || lvl > def.MaxLevel {
			diags = append(diags, data.Diagnostic{
				Source:  source,
				Subject: string(u.Kind()),
				Message: fmt.Sprintf("upgrade at level %d outside [2,%d]", lvl, def.MaxLevel),
			})
			continue
		}
		if lvl <= level {
			applicable = append(applicable, u)
		}
	}
	slices.SortStableFunc(applicable, compareUpgrades)

	var flatMana, percentMana float64
	for _, u := range applicable {
		switch u := u.(type) {
		case data.DamageIncrease:
			eff.BaseDamage += u.Amount
		case data.ManaCostFlat:
			flatMana += u.Amount
		case data.ManaCostPercent:
			percentMana += u.Fraction
		case data.AddEffect:
			eff.Effects = append(eff.Effects, u.Effect)
		case data.AddPassiveBonus:
			eff.PassiveBonuses = append(eff.PassiveBonuses, u.Bonus)
		case data.ModifyEffect:
			if !modifyEffect(eff.Effects, u) {
				diags = append(diags, data.Diagnostic{
					Source:  source,
					Subject: string(u.EffectType),
					Message: fmt.Sprintf("level %d modifies an effect the skill does not have", u.AtLevel),
				})
			}
		default:
			diags = append(diags, data.Diagnostic{Source: source, Subject: string(u.Kind()), Message: "unsupported upgrade kind"})
		}
	}

	base := float64(def.ManaCost)
	eff.ManaCost = int32(math.Round(math.Max(0, base+flatMana+base*percentMana)))

	return eff, diags, nil
}

// scalingAttribute resolves the attribute a damage formula scales with.
// A non-empty message means the scaling term is dropped.
func scalingAttribute(f data.DamageFormula) (data.Stat, string) {
	if f.ScalingAttribute == "" {
		if f.ScalingFactor != 0 {
			return "", "scaling factor set without an attribute"
		}
		return "", ""
	}
	st, err := data.ParseStat(string(f.ScalingAttribute))
	if err != nil {
		return "", err.Error()
	}
	if !st.IsAttribute() {
		return "", fmt.Sprintf("scaling stat %q is not an attribute", st)
	}
	return st, ""
}

// modifyEffect raises the first effect of the matching type in place.
func modifyEffect(effects []data.StatusEffect, m data.ModifyEffect) bool {
	for i := range effects {
		if effects[i].Type != m.EffectType {
			continue
		}
		effects[i].Chance = math.Min(1, effects[i].Chance+m.Chance)
		effects[i].Duration += m.Duration
		effects[i].Magnitude += m.Magnitude
		return true
	}
	return false
}

// kindOrder is the application order of upgrade kinds within one level.
var kindOrder = map[data.UpgradeKind]int{
	data.UpgradeDamage:          0,
	data.UpgradeManaFlat:        1,
	data.UpgradeManaPercent:     2,
	data.UpgradeAddEffect:       3,
	data.UpgradeAddPassiveBonus: 4,
	data.UpgradeModifyEffect:    5,
}

// compareUpgrades orders by level, then kind, then the variant's own fields.
// Fully ordering the values keeps float sums bit-identical across authoring orders.
func compareUpgrades(a, b data.Upgrade) int {
	if c := cmp.Compare(a.UpgradeLevel(), b.UpgradeLevel()); c != 0 {
		return c
	}
	if c := cmp.Compare(kindOrder[a.Kind()], kindOrder[b.Kind()]); c != 0 {
		return c
	}

	switch x := a.(type) {
	case data.DamageIncrease:
		if y, ok := b.(data.DamageIncrease); ok {
			return cmp.Compare(x.Amount, y.Amount)
		}
	case data.ManaCostFlat:
		if y, ok := b.(data.ManaCostFlat); ok {
			return cmp.Compare(x.Amount, y.Amount)
		}
	case data.ManaCostPercent:
		if y, ok := b.(data.ManaCostPercent); ok {
			return cmp.Compare(x.Fraction, y.Fraction)
		}
	case data.AddEffect:
		if y, ok := b.(data.AddEffect); ok {
			return compareEffects(x.Effect, y.Effect)
		}
	case data.AddPassiveBonus:
		if y, ok := b.(data.AddPassiveBonus); ok {
			return cmp.Or(
				cmp.Compare(x.Bonus.Target, y.Bonus.Target),
				cmp.Compare(x.Bonus.Mode, y.Bonus.Mode),
				cmp.Compare(x.Bonus.Magnitude, y.Bonus.Magnitude),
			)
		}
	case data.ModifyEffect:
		if y, ok := b.(data.ModifyEffect); ok {
			return cmp.Or(
				cmp.Compare(x.EffectType, y.EffectType),
				cmp.Compare(x.Chance, y.Chance),
				cmp.Compare(x.Duration, y.Duration),
				cmp.Compare(x.Magnitude, y.Magnitude),
			)
		}
	}
	return 0
}

func compareEffects(a, b data.StatusEffect) int {
	return cmp.Or(
		cmp.Compare(a.Type, b.Type),
		cmp.Compare(a.Chance, b.Chance),
		cmp.Compare(a.Duration, b.Duration),
		cmp.Compare(a.Magnitude, b.Magnitude),
	)
}
