package combat

import (
	"errors"
	"math"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/model"
)

// Roller is a source of uniform draws in [0,1).
// *math/rand/v2.Rand satisfies it; tests use fixed sequences.
type Roller interface {
	Float64() float64
}

// Balance holds the tunable constants of damage resolution.
type Balance struct {
	// Variance is the half-width of the uniform damage spread (0.10 = ±10%).
	Variance float64 `yaml:"variance" env:"VARIANCE"`
	// MitigationK is the defense value that halves incoming damage.
	MitigationK float64 `yaml:"mitigation_k" env:"MITIGATION_K"`
	// WeaponMismatchPenalty multiplies mitigated skill damage when the
	// required weapon is not equipped.
	WeaponMismatchPenalty float64 `yaml:"weapon_mismatch_penalty" env:"WEAPON_MISMATCH_PENALTY"`
	// MinDamage is the floor of a hit that was not evaded.
	MinDamage int32 `yaml:"min_damage" env:"MIN_DAMAGE"`
}

// DefaultBalance returns the standard combat constants.
func DefaultBalance() Balance {
	return Balance{
		Variance:              0.10,
		MitigationK:           100,
		WeaponMismatchPenalty: 0.5,
		MinDamage:             1,
	}
}

// Validate checks that the constants keep damage math total.
func (b Balance) Validate() error {
	if b.Variance < 0 || b.Variance >= 1 {
		return errors.New("combat: variance must be in [0,1)")
	}
	if b.MitigationK <= 0 {
		return errors.New("combat: mitigation_k must be positive")
	}
	if b.WeaponMismatchPenalty < 0 || b.WeaponMismatchPenalty > 1 {
		return errors.New("combat: weapon_mismatch_penalty must be in [0,1]")
	}
	if b.MinDamage < 1 {
		return errors.New("combat: min_damage must be at least 1")
	}
	return nil
}

// DamageOutcome is the result of one attack.
type DamageOutcome struct {
	Damage                       int32
	IsCritical                   bool
	IsEvaded                     bool
	WeaponMismatchPenaltyApplied bool
	// AppliedEffects lists status effects that landed (skill attacks only).
	AppliedEffects []data.StatusEffect
	// Diagnostics carries content problems found while resolving the skill.
	Diagnostics []data.Diagnostic
}

// Combatant is an aggregated character as seen by the resolver.
type Combatant struct {
	Attributes model.Attributes
	Stats      model.CombatStats
}

// Mitigation returns the fraction of damage absorbed by defense:
// defense/(defense+k). 100 defense at k=100 halves damage, 300 defense
// absorbs 75%. Always in [0,1).
func Mitigation(defense, k float64) float64 {
	if defense <= 0 || k <= 0 || math.IsNaN(defense) {
		return 0
	}
	r := defense / (defense + k)
	return math.Min(r, math.Nextafter(1, 0))
}

// varianceFactor maps a uniform draw to 1 ± variance.
func varianceFactor(roll, variance float64) float64 {
	return 1 + (2*roll-1)*variance
}
