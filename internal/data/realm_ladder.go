package data

import (
	"errors"
	"fmt"
)

// MortalLevel is the level sentinel for a character that has not entered the ladder yet.
const MortalLevel int32 = -1

// ErrInvalidCultivation is returned for a CultivationState outside the ladder.
var ErrInvalidCultivation = errors.New("invalid cultivation state")

// CultivationState is a two-tier position on the realm ladder.
// Level == MortalLevel is the mortal state preceding realm 0, level 0.
type CultivationState struct {
	RealmIndex int32 `yaml:"realm" json:"realm"`
	Level      int32 `yaml:"level" json:"level"`
}

// Mortal returns the pre-ladder state.
func Mortal() CultivationState {
	return CultivationState{RealmIndex: 0, Level: MortalLevel}
}

// IsMortal reports whether the state is the mortal sentinel.
func (s CultivationState) IsMortal() bool {
	return s.Level == MortalLevel
}

func (s CultivationState) String() string {
	if s.IsMortal() {
		return "mortal"
	}
	return fmt.Sprintf("%d/%d", s.RealmIndex, s.Level)
}

// StatRoll describes a breakthrough bonus: an inclusive integer range, or a
// fixed value when Min == Max.
type StatRoll struct {
	Target Stat    `yaml:"target"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// IsFixed reports whether the roll always yields Min.
func (r StatRoll) IsFixed() bool {
	return r.Min >= r.Max
}

// RealmLevel is one minor step inside a realm.
type RealmLevel struct {
	Name       string     `yaml:"name"`
	Rolls      []StatRoll `yaml:"rolls"`
	QiCapacity int32      `yaml:"qi_capacity"`
}

// Realm is a major tier of the ladder.
type Realm struct {
	Name   string       `yaml:"name"`
	Levels []RealmLevel `yaml:"levels"`
}

// RealmLadder: упорядоченная таблица прогрессии культивации.
// Immutable after load; shared across all characters.
type RealmLadder struct {
	Realms []Realm `yaml:"realms"`
}

// Validate checks that state indexes validly into the ladder.
// The mortal sentinel is always valid.
func (l *RealmLadder) Validate(s CultivationState) error {
	if s.IsMortal() {
		return nil
	}
	if s.RealmIndex < 0 || int(s.RealmIndex) >= len(l.Realms) {
		return fmt.Errorf("%w: realm %d out of range [0,%d)", ErrInvalidCultivation, s.RealmIndex, len(l.Realms))
	}
	levels := l.Realms[s.RealmIndex].Levels
	if s.Level < 0 || int(s.Level) >= len(levels) {
		return fmt.Errorf("%w: level %d out of range [0,%d) in realm %q",
			ErrInvalidCultivation, s.Level, len(levels), l.Realms[s.RealmIndex].Name)
	}
	return nil
}

// Level returns the ladder entry for state.
// Returns nil, nil for the mortal state.
func (l *RealmLadder) Level(s CultivationState) (*RealmLevel, error) {
	if err := l.Validate(s); err != nil {
		return nil, err
	}
	if s.IsMortal() {
		return nil, nil
	}
	return &l.Realms[s.RealmIndex].Levels[s.Level], nil
}

// QiCapacity returns the Qi capacity of state (0 for mortals).
func (l *RealmLadder) QiCapacity(s CultivationState) (int32, error) {
	lvl, err := l.Level(s)
	if err != nil {
		return 0, err
	}
	if lvl == nil {
		return 0, nil
	}
	return lvl.QiCapacity, nil
}

// Next returns the state one step up the ladder.
// Mortal advances to realm 0 level 0; the last level of a realm advances to
// level 0 of the next realm. Returns false at the terminal state.
func (l *RealmLadder) Next(s CultivationState) (CultivationState, bool, error) {
	if err := l.Validate(s); err != nil {
		return s, false, err
	}
	if s.IsMortal() {
		if len(l.Realms) == 0 || len(l.Realms[0].Levels) == 0 {
			return s, false, nil
		}
		return CultivationState{RealmIndex: 0, Level: 0}, true, nil
	}

	if int(s.Level)+1 < len(l.Realms[s.RealmIndex].Levels) {
		return CultivationState{RealmIndex: s.RealmIndex, Level: s.Level + 1}, true, nil
	}
	for r := s.RealmIndex + 1; int(r) < len(l.Realms); r++ {
		if len(l.Realms[r].Levels) > 0 {
			return CultivationState{RealmIndex: r, Level: 0}, true, nil
		}
	}
	return s, false, nil
}

// IsMax reports whether state is the terminal ("max") position.
func (l *RealmLadder) IsMax(s CultivationState) bool {
	_, ok, err := l.Next(s)
	return err == nil && !ok
}

// Ordinal flattens state into a single comparable number (mortal = -1).
func (l *RealmLadder) Ordinal(s CultivationState) int32 {
	if s.IsMortal() {
		return -1
	}
	var n int32
	for r := int32(0); r < s.RealmIndex && int(r) < len(l.Realms); r++ {
		n += int32(len(l.Realms[r].Levels))
	}
	return n + s.Level
}

// RealmName returns a display name for state.
func (l *RealmLadder) RealmName(s CultivationState) string {
	if s.IsMortal() {
		return "Mortal"
	}
	if err := l.Validate(s); err != nil {
		return "Unknown"
	}
	realm := l.Realms[s.RealmIndex]
	return realm.Name + " " + realm.Levels[s.Level].Name
}

// validateLadder checks structural invariants after load.
func validateLadder(l *RealmLadder) error {
	if len(l.Realms) == 0 {
		return errors.New("realm ladder is empty")
	}
	for i, realm := range l.Realms {
		if len(realm.Levels) == 0 {
			return fmt.Errorf("realm %d (%q) has no levels", i, realm.Name)
		}
		for j, lvl := range realm.Levels {
			for _, roll := range lvl.Rolls {
				if roll.Max < roll.Min && roll.Max != 0 {
					return fmt.Errorf("realm %q level %d: roll %s has max < min", realm.Name, j, roll.Target)
				}
			}
			if lvl.QiCapacity < 0 {
				return fmt.Errorf("realm %q level %d: negative qi capacity", realm.Name, j)
			}
		}
	}
	return nil
}
