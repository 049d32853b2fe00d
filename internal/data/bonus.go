package data

import (
	"fmt"
	"strings"
)

// BonusMode defines how a bonus is folded into its target.
type BonusMode int8

const (
	BonusAdditive   BonusMode = iota // sums directly into the target
	BonusMultiplier                  // sums into a per-source percentage applied once
)

// String returns the content-file spelling of the mode.
func (m BonusMode) String() string {
	switch m {
	case BonusAdditive:
		return "ADDITIVE"
	case BonusMultiplier:
		return "MULTIPLIER"
	default:
		return fmt.Sprintf("BonusMode(%d)", m)
	}
}

// ParseBonusMode parses "ADDITIVE"/"ADD" and "MULTIPLIER"/"MUL".
func ParseBonusMode(s string) (BonusMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADDITIVE", "ADD", "":
		return BonusAdditive, nil
	case "MULTIPLIER", "MUL":
		return BonusMultiplier, nil
	default:
		return 0, fmt.Errorf("unknown bonus mode %q", s)
	}
}

// Bonus is a single stat modification from a skill, item, affinity or breakthrough roll.
// MULTIPLIER magnitudes are fractions: 0.10 means +10%.
//
// Target is kept as authored and resolved by the aggregator; unknown names
// become diagnostics.
type Bonus struct {
	Target    Stat
	Mode      BonusMode
	Magnitude float64
}

// Add returns an additive bonus.
func Add(target Stat, v float64) Bonus {
	return Bonus{Target: target, Mode: BonusAdditive, Magnitude: v}
}

// Mul returns a multiplicative bonus.
func Mul(target Stat, fraction float64) Bonus {
	return Bonus{Target: target, Mode: BonusMultiplier, Magnitude: fraction}
}

// Diagnostic reports a content-integrity problem.
// Processing continues with the offending entry skipped.
type Diagnostic struct {
	Source  string // "skill:azure_sword_art", "item:iron_sword", "affinity:fire"
	Subject string // offending stat/effect name
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Source, d.Message, d.Subject)
}
