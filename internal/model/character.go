package model

import (
	"errors"
	"fmt"

	"github.com/udisondev/powerengine/internal/data"
)

var (
	ErrSkillMaxLevel   = errors.New("skill already at max level")
	ErrSkillNotLearned = errors.New("skill not learned")
	ErrSkillLearned    = errors.New("skill already learned")
	ErrInvalidPurity   = errors.New("purity out of range [0,100]")
	ErrAffinityFixed   = errors.New("affinity set is fixed at creation")
	ErrSlotMismatch    = errors.New("item does not fit slot")
)

// MaxPurity is the upper bound of elemental purity.
const MaxPurity = 100

// LearnedSkill is a skill owned by a character.
// Level is 1..def.MaxLevel and never decreases.
type LearnedSkill struct {
	SkillID string `yaml:"id" json:"id"`
	Level   int32  `yaml:"level" json:"level"`
}

// ElementalAffinity is one elemental alignment and its strength.
type ElementalAffinity struct {
	Type   data.AffinityType `yaml:"type" json:"type"`
	Purity float64           `yaml:"purity" json:"purity"`
}

// Equipment maps slot → item id. A map key guarantees one item per slot.
type Equipment map[data.Slot]string

// Vitals holds current (not max) resources.
type Vitals struct {
	HP   int32 `yaml:"hp" json:"hp"`
	Mana int32 `yaml:"mana" json:"mana"`
	Qi   int32 `yaml:"qi" json:"qi"`
}

// Character is the persisted mutable state of a cultivator (player or NPC).
// The engine treats it as read-only input; mutations go through the
// methods below and are owned by the caller.
type Character struct {
	ID             string                `yaml:"id" json:"id"`
	Name           string                `yaml:"name" json:"name"`
	IsNPC          bool                  `yaml:"npc" json:"npc"`
	AgeYears       int32                 `yaml:"age" json:"age"`
	Species        string                `yaml:"species" json:"species"`
	BaseAttributes Attributes            `yaml:"attributes" json:"attributes"`
	Cultivation    data.CultivationState `yaml:"cultivation" json:"cultivation"`
	RolledBonuses  []RolledBonus         `yaml:"rolled_bonuses" json:"rolled_bonuses"`
	Skills         []LearnedSkill        `yaml:"skills" json:"skills"`
	Equipment      Equipment             `yaml:"equipment" json:"equipment"`
	Affinities     []ElementalAffinity   `yaml:"affinities" json:"affinities"`
	Vitals         Vitals                `yaml:"vitals" json:"vitals"`
}

// RolledBonus is an additive value fixed at breakthrough time.
type RolledBonus struct {
	Target data.Stat `yaml:"target" json:"target"`
	Value  float64   `yaml:"value" json:"value"`
}

// Bonuses converts rolled values to additive data.Bonus entries.
func (c *Character) Bonuses() []data.Bonus {
	out := make([]data.Bonus, 0, len(c.RolledBonuses))
	for _, rb := range c.RolledBonuses {
		out = append(out, data.Add(rb.Target, rb.Value))
	}
	return out
}

// AddRolledBonuses appends breakthrough rolls. Rolls are never re-rolled.
func (c *Character) AddRolledBonuses(bonuses []data.Bonus) {
	for _, b := range bonuses {
		c.RolledBonuses = append(c.RolledBonuses, RolledBonus{Target: b.Target, Value: b.Magnitude})
	}
}

// Skill returns the learned skill by id.
func (c *Character) Skill(id string) (LearnedSkill, bool) {
	for _, s := range c.Skills {
		if s.SkillID == id {
			return s, true
		}
	}
	return LearnedSkill{}, false
}

// Learn adds a skill at level 1.
func (c *Character) Learn(id string) error {
	if _, ok := c.Skill(id); ok {
		return fmt.Errorf("%w: %s", ErrSkillLearned, id)
	}
	c.Skills = append(c.Skills, LearnedSkill{SkillID: id, Level: 1})
	return nil
}

// LevelUpSkill increments a learned skill's level, bounded by maxLevel.
func (c *Character) LevelUpSkill(id string, maxLevel int32) (int32, error) {
	for i := range c.Skills {
		if c.Skills[i].SkillID != id {
			continue
		}
		if c.Skills[i].Level >= maxLevel {
			return c.Skills[i].Level, fmt.Errorf("%w: %s (%d)", ErrSkillMaxLevel, id, maxLevel)
		}
		c.Skills[i].Level++
		return c.Skills[i].Level, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrSkillNotLearned, id)
}

// Equip places an item into its slot, replacing whatever was there.
// Returns the previously equipped item id ("" if the slot was empty).
func (c *Character) Equip(item *data.ItemDefinition, slot data.Slot) (string, error) {
	if item.Slot != slot {
		return "", fmt.Errorf("%w: %s into %s", ErrSlotMismatch, item.ID, slot)
	}
	if c.Equipment == nil {
		c.Equipment = make(Equipment, len(data.Slots))
	}
	prev := c.Equipment[slot]
	c.Equipment[slot] = item.ID
	return prev, nil
}

// Unequip empties a slot and returns the removed item id.
func (c *Character) Unequip(slot data.Slot) string {
	prev := c.Equipment[slot]
	delete(c.Equipment, slot)
	return prev
}

// SetPurity changes the purity of an affinity the character already holds.
// The set of affinity types is fixed at creation.
func (c *Character) SetPurity(t data.AffinityType, purity float64) error {
	if purity < 0 || purity > MaxPurity {
		return fmt.Errorf("%w: %v", ErrInvalidPurity, purity)
	}
	for i := range c.Affinities {
		if c.Affinities[i].Type == t {
			c.Affinities[i].Purity = purity
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrAffinityFixed, t)
}

// WeaponType returns the equipped weapon family (WeaponNone if no weapon).
func (c *Character) WeaponType(content *data.Content) data.WeaponType {
	id, ok := c.Equipment[data.SlotWeapon]
	if !ok || id == "" {
		return data.WeaponNone
	}
	item := content.Item(id)
	if item == nil {
		return data.WeaponNone
	}
	return item.WeaponType
}
