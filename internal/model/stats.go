package model

import (
	"math"

	"github.com/udisondev/powerengine/internal/data"
)

// Attributes holds the six named traits.
// Values are non-negative and integral after aggregation; only the
// aggregator writes them.
type Attributes struct {
	Constitution    float64 `yaml:"constitution" json:"constitution"`
	Agility         float64 `yaml:"agility" json:"agility"`
	SpiritualSense  float64 `yaml:"spiritual_sense" json:"spiritual_sense"`
	Comprehension   float64 `yaml:"comprehension" json:"comprehension"`
	Fortune         float64 `yaml:"fortune" json:"fortune"`
	MentalFortitude float64 `yaml:"mental_fortitude" json:"mental_fortitude"`
}

// field returns a pointer to the attribute named s, or nil.
func (a *Attributes) field(s data.Stat) *float64 {
	switch s {
	case data.StatConstitution:
		return &a.Constitution
	case data.StatAgility:
		return &a.Agility
	case data.StatSpiritualSense:
		return &a.SpiritualSense
	case data.StatComprehension:
		return &a.Comprehension
	case data.StatFortune:
		return &a.Fortune
	case data.StatMentalFortitude:
		return &a.MentalFortitude
	}
	return nil
}

// Get returns the attribute named s (0 for non-attributes).
func (a Attributes) Get(s data.Stat) float64 {
	if f := a.field(s); f != nil {
		return *f
	}
	return 0
}

// Set assigns the attribute named s. Returns false for non-attributes.
func (a *Attributes) Set(s data.Stat, v float64) bool {
	f := a.field(s)
	if f == nil {
		return false
	}
	*f = v
	return true
}

// Sum returns the total of all six attributes.
func (a Attributes) Sum() float64 {
	return a.Constitution + a.Agility + a.SpiritualSense +
		a.Comprehension + a.Fortune + a.MentalFortitude
}

// Round rounds every attribute to an integer, clamping at 0.
func (a Attributes) Round() Attributes {
	for _, s := range data.AttributeStats {
		f := a.field(s)
		*f = math.Max(0, math.Round(*f))
	}
	return a
}

// CombatStats holds derived combat stats.
// crit_rate and evasion_rate are probabilities in [0,1]; crit_damage is a multiplier.
type CombatStats struct {
	MaxHealth    float64 `yaml:"max_health" json:"max_health"`
	MaxMana      float64 `yaml:"max_mana" json:"max_mana"`
	MaxQi        float64 `yaml:"max_qi" json:"max_qi"`
	MaxLifespan  float64 `yaml:"max_lifespan" json:"max_lifespan"`
	AttackPower  float64 `yaml:"attack_power" json:"attack_power"`
	DefensePower float64 `yaml:"defense_power" json:"defense_power"`
	Speed        float64 `yaml:"speed" json:"speed"`
	CritRate     float64 `yaml:"crit_rate" json:"crit_rate"`
	CritDamage   float64 `yaml:"crit_damage" json:"crit_damage"`
	EvasionRate  float64 `yaml:"evasion_rate" json:"evasion_rate"`
}

func (c *CombatStats) field(s data.Stat) *float64 {
	switch s {
	case data.StatMaxHealth:
		return &c.MaxHealth
	case data.StatMaxMana:
		return &c.MaxMana
	case data.StatMaxQi:
		return &c.MaxQi
	case data.StatMaxLifespan:
		return &c.MaxLifespan
	case data.StatAttackPower:
		return &c.AttackPower
	case data.StatDefensePower:
		return &c.DefensePower
	case data.StatSpeed:
		return &c.Speed
	case data.StatCritRate:
		return &c.CritRate
	case data.StatCritDamage:
		return &c.CritDamage
	case data.StatEvasionRate:
		return &c.EvasionRate
	}
	return nil
}

// Get returns the stat named s (0 for non-combat stats).
func (c CombatStats) Get(s data.Stat) float64 {
	if f := c.field(s); f != nil {
		return *f
	}
	return 0
}

// Set assigns the stat named s. Returns false for non-combat stats.
func (c *CombatStats) Set(s data.Stat, v float64) bool {
	f := c.field(s)
	if f == nil {
		return false
	}
	*f = v
	return true
}

// Round rounds scalar stats to integers (clamped at 0) and clamps
// crit_rate/evasion_rate to [0,1]. Rate stats keep their precision.
func (c CombatStats) Round() CombatStats {
	for _, s := range data.CombatStatNames {
		f := c.field(s)
		if s.IsRate() {
			*f = math.Max(0, *f)
			continue
		}
		*f = math.Max(0, math.Round(*f))
	}
	c.CritRate = math.Min(1, c.CritRate)
	c.EvasionRate = math.Min(1, c.EvasionRate)
	return c
}

// StatsFromBlock builds CombatStats from a species baseline block.
func StatsFromBlock(block map[data.Stat]float64) CombatStats {
	var c CombatStats
	for s, v := range block {
		c.Set(s, v)
	}
	return c
}
