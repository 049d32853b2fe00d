package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Stat names an attribute or a combat stat.
// Stable snake_case identifiers are used across content files and persisted state.
type Stat string

// Attributes.
const (
	StatConstitution    Stat = "constitution"
	StatAgility         Stat = "agility"
	StatSpiritualSense  Stat = "spiritual_sense"
	StatComprehension   Stat = "comprehension"
	StatFortune         Stat = "fortune"
	StatMentalFortitude Stat = "mental_fortitude"
)

// Combat stats.
const (
	StatMaxHealth    Stat = "max_health"
	StatMaxMana      Stat = "max_mana"
	StatMaxQi        Stat = "max_qi"
	StatMaxLifespan  Stat = "max_lifespan"
	StatAttackPower  Stat = "attack_power"
	StatDefensePower Stat = "defense_power"
	StatSpeed        Stat = "speed"
	StatCritRate     Stat = "crit_rate"
	StatCritDamage   Stat = "crit_damage"
	StatEvasionRate  Stat = "evasion_rate"
)

// AttributeStats lists the six attributes in canonical order.
var AttributeStats = []Stat{
	StatConstitution,
	StatAgility,
	StatSpiritualSense,
	StatComprehension,
	StatFortune,
	StatMentalFortitude,
}

// CombatStatNames lists combat stats in canonical order.
var CombatStatNames = []Stat{
	StatMaxHealth,
	StatMaxMana,
	StatMaxQi,
	StatMaxLifespan,
	StatAttackPower,
	StatDefensePower,
	StatSpeed,
	StatCritRate,
	StatCritDamage,
	StatEvasionRate,
}

// ErrUnknownStat is returned when a stat name does not resolve.
var ErrUnknownStat = errors.New("unknown stat")

// maxSuggestDistance: дальше этого расстояния подсказку не выдаём.
const maxSuggestDistance = 4

// IsAttribute reports whether s is one of the six attributes.
func (s Stat) IsAttribute() bool {
	switch s {
	case StatConstitution, StatAgility, StatSpiritualSense,
		StatComprehension, StatFortune, StatMentalFortitude:
		return true
	}
	return false
}

// IsCombatStat reports whether s is a combat stat.
func (s Stat) IsCombatStat() bool {
	switch s {
	case StatMaxHealth, StatMaxMana, StatMaxQi, StatMaxLifespan,
		StatAttackPower, StatDefensePower, StatSpeed,
		StatCritRate, StatCritDamage, StatEvasionRate:
		return true
	}
	return false
}

// IsRate reports whether s keeps fractional precision after aggregation.
// crit_damage is a multiplier, not a probability, but is left unrounded as well.
func (s Stat) IsRate() bool {
	return s == StatCritRate || s == StatCritDamage || s == StatEvasionRate
}

// IsKnown reports whether s is an attribute or a combat stat.
func (s Stat) IsKnown() bool {
	return s.IsAttribute() || s.IsCombatStat()
}

// ParseStat resolves a stat name (case-insensitive, '-' and ' ' accepted as '_').
// Unknown names return an error wrapping ErrUnknownStat with the closest known
// name as a hint ("atack_power" suggests "attack_power").
func ParseStat(name string) (Stat, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)

	s := Stat(norm)
	if s.IsKnown() {
		return s, nil
	}

	if hint := SuggestStat(norm); hint != "" {
		return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownStat, name, hint)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStat, name)
}

// SuggestStat returns the known stat closest to name by edit distance,
// or "" if nothing is close enough.
func SuggestStat(name string) Stat {
	best := Stat("")
	bestDist := maxSuggestDistance + 1

	for _, group := range [][]Stat{AttributeStats, CombatStatNames} {
		for _, s := range group {
			d := levenshtein.ComputeDistance(name, string(s))
			if d < bestDist {
				best, bestDist = s, d
			}
		}
	}
	return best
}
