package data

import (
	"fmt"
	"strings"
)

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotHead      Slot = "head"
	SlotBody      Slot = "body"
	SlotLegs      Slot = "legs"
	SlotAccessory Slot = "accessory"
)

// Slots lists equipment slots in application order.
// Aggregation walks equipment in this order so results never depend on map iteration.
var Slots = []Slot{SlotWeapon, SlotHead, SlotBody, SlotLegs, SlotAccessory}

// ParseSlot validates a slot name.
func ParseSlot(s string) (Slot, error) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Slots {
		if slot == known {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown equipment slot %q", s)
}

// ItemDefinition: immutable шаблон экипировки.
// Bonuses contribute to aggregation only while the item is equipped.
type ItemDefinition struct {
	ID         string
	Name       string
	Slot       Slot
	Tier       Tier
	WeaponType WeaponType // only for SlotWeapon
	Bonuses    []Bonus
}

// AffinityBonus scales with purity: magnitude = ValuePerPurity * purity.
type AffinityBonus struct {
	Target         Stat
	Mode           BonusMode
	ValuePerPurity float64
}

// Scaled returns the bonus at the given purity.
func (b AffinityBonus) Scaled(purity float64) Bonus {
	return Bonus{Target: b.Target, Mode: b.Mode, Magnitude: b.ValuePerPurity * purity}
}

// AffinityDefinition is the fixed bonus formula of one elemental alignment.
type AffinityDefinition struct {
	Type    AffinityType
	Name    string
	Bonuses []AffinityBonus
}

// SpeciesBaseline is the absolute starting point of aggregation.
// Aggregation always resets to it instead of the previously computed state.
type SpeciesBaseline struct {
	ID    string
	Name  string
	Stats map[Stat]float64
}
