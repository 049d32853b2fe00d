package data

import (
	"fmt"
	"strings"
)

// SkillCategory separates attack/utility skills from cultivation methods.
type SkillCategory int8

const (
	SkillActive  SkillCategory = iota // offense/utility, costs mana
	SkillPassive                      // cultivation method, contributes bonuses only
)

func (c SkillCategory) String() string {
	if c == SkillPassive {
		return "PASSIVE"
	}
	return "ACTIVE"
}

// ParseSkillCategory parses "ACTIVE" or "PASSIVE".
func ParseSkillCategory(s string) (SkillCategory, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVE", "":
		return SkillActive, nil
	case "PASSIVE":
		return SkillPassive, nil
	default:
		return 0, fmt.Errorf("unknown skill category %q", s)
	}
}

// Tier is one of four ascending quality bands shared by skills and items.
type Tier int8

const (
	TierYellow Tier = iota + 1
	TierMystic
	TierEarth
	TierHeaven
)

// Valid reports whether t is one of the four tiers.
func (t Tier) Valid() bool {
	return t >= TierYellow && t <= TierHeaven
}

func (t Tier) String() string {
	switch t {
	case TierYellow:
		return "yellow"
	case TierMystic:
		return "mystic"
	case TierEarth:
		return "earth"
	case TierHeaven:
		return "heaven"
	default:
		return fmt.Sprintf("Tier(%d)", t)
	}
}

// ParseTier accepts tier names or 1..4.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yellow", "1":
		return TierYellow, nil
	case "mystic", "2":
		return TierMystic, nil
	case "earth", "3":
		return TierEarth, nil
	case "heaven", "4":
		return TierHeaven, nil
	default:
		return 0, fmt.Errorf("unknown tier %q", s)
	}
}

// WeaponType identifies a weapon family. Empty means "none".
type WeaponType string

const (
	WeaponNone  WeaponType = ""
	WeaponSword WeaponType = "sword"
	WeaponSaber WeaponType = "saber"
	WeaponSpear WeaponType = "spear"
	WeaponFan   WeaponType = "fan"
	WeaponFist  WeaponType = "fist"
)

// AffinityType identifies an elemental alignment.
type AffinityType string

const (
	AffinityNone      AffinityType = ""
	AffinityFire      AffinityType = "fire"
	AffinityWater     AffinityType = "water"
	AffinityWood      AffinityType = "wood"
	AffinityMetal     AffinityType = "metal"
	AffinityEarth     AffinityType = "earth"
	AffinityLightning AffinityType = "lightning"
)

// EffectType names a status effect.
type EffectType string

const (
	EffectHeal   EffectType = "heal"
	EffectBurn   EffectType = "burn"
	EffectPoison EffectType = "poison"
	EffectBleed  EffectType = "bleed"
	EffectStun   EffectType = "stun"
	EffectSlow   EffectType = "slow"
	EffectShield EffectType = "shield"
)

// StatusEffect is a skill-applied effect.
// Chance is a probability in [0,1], Duration is measured in combat turns.
type StatusEffect struct {
	Type      EffectType `yaml:"type"`
	Chance    float64    `yaml:"chance"`
	Duration  int32      `yaml:"duration"`
	Magnitude float64    `yaml:"magnitude"`
}

// DamageFormula holds the level-1 damage inputs of an active skill.
// damage = Base + attackPower*AttackPowerFactor + attributes[ScalingAttribute]*ScalingFactor
type DamageFormula struct {
	Base              float64
	AttackPowerFactor float64
	ScalingAttribute  Stat
	ScalingFactor     float64
}

// SkillDefinition: immutable шаблон скилла.
// Base values are valid at level 1; Upgrades carry cumulative deltas for
// levels 2..MaxLevel. Shared across all characters; не модифицируется после загрузки.
type SkillDefinition struct {
	ID               string
	Name             string
	Category         SkillCategory
	Tier             Tier
	RequiredWeapon   WeaponType
	RequiredAffinity AffinityType
	MaxLevel         int32
	ManaCost         int32
	Damage           DamageFormula
	Effects          []StatusEffect
	PassiveBonuses   []Bonus
	Upgrades         []Upgrade
}

// IsPassive returns true for cultivation-method skills.
func (d *SkillDefinition) IsPassive() bool {
	return d.Category == SkillPassive
}

// RequiresWeapon reports whether casting checks the equipped weapon type.
func (d *SkillDefinition) RequiresWeapon() bool {
	return d.RequiredWeapon != WeaponNone
}

// UpgradeKind tags the variant of an Upgrade.
type UpgradeKind string

const (
	UpgradeDamage          UpgradeKind = "damage"
	UpgradeManaFlat        UpgradeKind = "mana_flat"
	UpgradeManaPercent     UpgradeKind = "mana_percent"
	UpgradeAddEffect       UpgradeKind = "add_effect"
	UpgradeModifyEffect    UpgradeKind = "modify_effect"
	UpgradeAddPassiveBonus UpgradeKind = "add_bonus"
)

// Upgrade is one per-level delta of a skill. The concrete types below are
// the only implementations; consumers switch on them.
type Upgrade interface {
	UpgradeLevel() int32
	Kind() UpgradeKind
}

// DamageIncrease adds Amount to the skill's base damage.
type DamageIncrease struct {
	AtLevel int32
	Amount  float64
}

// ManaCostFlat adds Amount (may be negative) to mana cost.
type ManaCostFlat struct {
	AtLevel int32
	Amount  float64
}

// ManaCostPercent adds Fraction of the base mana cost (e.g. -0.05 = 5% cheaper).
type ManaCostPercent struct {
	AtLevel  int32
	Fraction float64
}

// AddEffect unlocks a new status effect.
type AddEffect struct {
	AtLevel int32
	Effect  StatusEffect
}

// ModifyEffect raises chance/duration/magnitude of an existing effect of EffectType.
type ModifyEffect struct {
	AtLevel    int32
	EffectType EffectType
	Chance     float64
	Duration   int32
	Magnitude  float64
}

// AddPassiveBonus appends a bonus to a PASSIVE skill's bonus list.
type AddPassiveBonus struct {
	AtLevel int32
	Bonus   Bonus
}

func (u DamageIncrease) UpgradeLevel() int32  { return u.AtLevel }
func (u ManaCostFlat) UpgradeLevel() int32    { return u.AtLevel }
func (u ManaCostPercent) UpgradeLevel() int32 { return u.AtLevel }
func (u AddEffect) UpgradeLevel() int32       { return u.AtLevel }
func (u ModifyEffect) UpgradeLevel() int32    { return u.AtLevel }
func (u AddPassiveBonus) UpgradeLevel() int32 { return u.AtLevel }

func (DamageIncrease) Kind() UpgradeKind  { return UpgradeDamage }
func (ManaCostFlat) Kind() UpgradeKind    { return UpgradeManaFlat }
func (ManaCostPercent) Kind() UpgradeKind { return UpgradeManaPercent }
func (AddEffect) Kind() UpgradeKind       { return UpgradeAddEffect }
func (ModifyEffect) Kind() UpgradeKind    { return UpgradeModifyEffect }
func (AddPassiveBonus) Kind() UpgradeKind { return UpgradeAddPassiveBonus }
