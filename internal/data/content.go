package data

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrUnknownContent is returned when a caller references a content id that is not loaded.
var ErrUnknownContent = errors.New("unknown content id")

// Content is a read-only lookup of all content tables, keyed by stable string id.
// Built once at startup via NewContent / Default / LoadContent and never mutated,
// so it is safe to share between goroutines without locking.
type Content struct {
	ladder     RealmLadder
	skills     map[string]*SkillDefinition
	items      map[string]*ItemDefinition
	affinities map[AffinityType]*AffinityDefinition
	species    map[string]*SpeciesBaseline
}

// Tables is the raw form of content before indexing.
type Tables struct {
	Ladder     RealmLadder
	Skills     []SkillDefinition
	Items      []ItemDefinition
	Affinities []AffinityDefinition
	Species    []SpeciesBaseline
}

// NewContent indexes and validates content tables.
func NewContent(t Tables) (*Content, error) {
	if err := validateLadder(&t.Ladder); err != nil {
		return nil, fmt.Errorf("validating realm ladder: %w", err)
	}

	c := &Content{
		ladder:     t.Ladder,
		skills:     make(map[string]*SkillDefinition, len(t.Skills)),
		items:      make(map[string]*ItemDefinition, len(t.Items)),
		affinities: make(map[AffinityType]*AffinityDefinition, len(t.Affinities)),
		species:    make(map[string]*SpeciesBaseline, len(t.Species)),
	}

	for i := range t.Skills {
		def := &t.Skills[i]
		if err := validateSkill(def); err != nil {
			return nil, err
		}
		if _, dup := c.skills[def.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", def.ID)
		}
		c.skills[def.ID] = def
	}

	for i := range t.Items {
		def := &t.Items[i]
		if err := validateItem(def); err != nil {
			return nil, err
		}
		if _, dup := c.items[def.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", def.ID)
		}
		c.items[def.ID] = def
	}

	for i := range t.Affinities {
		def := &t.Affinities[i]
		if def.Type == AffinityNone {
			return nil, fmt.Errorf("affinity #%d has empty type", i)
		}
		if _, dup := c.affinities[def.Type]; dup {
			return nil, fmt.Errorf("duplicate affinity %q", def.Type)
		}
		c.affinities[def.Type] = def
	}

	for i := range t.Species {
		sp := &t.Species[i]
		if sp.ID == "" {
			return nil, fmt.Errorf("species #%d has empty id", i)
		}
		if _, dup := c.species[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate species %q", sp.ID)
		}
		c.species[sp.ID] = sp
	}

	slog.Debug("content indexed",
		"realms", len(t.Ladder.Realms),
		"skills", len(c.skills),
		"items", len(c.items),
		"affinities", len(c.affinities),
		"species", len(c.species))

	return c, nil
}

func validateSkill(def *SkillDefinition) error {
	if def.ID == "" {
		return errors.New("skill with empty id")
	}
	if def.MaxLevel < 1 {
		return fmt.Errorf("skill %q: max level %d < 1", def.ID, def.MaxLevel)
	}
	if !def.Tier.Valid() {
		return fmt.Errorf("skill %q: invalid tier %d", def.ID, def.Tier)
	}
	if def.ManaCost < 0 {
		return fmt.Errorf("skill %q: negative mana cost", def.ID)
	}
	return nil
}

func validateItem(def *ItemDefinition) error {
	if def.ID == "" {
		return errors.New("item with empty id")
	}
	if _, err := ParseSlot(string(def.Slot)); err != nil {
		return fmt.Errorf("item %q: %w", def.ID, err)
	}
	if !def.Tier.Valid() {
		return fmt.Errorf("item %q: invalid tier %d", def.ID, def.Tier)
	}
	if def.WeaponType != WeaponNone && def.Slot != SlotWeapon {
		return fmt.Errorf("item %q: weapon type %q on non-weapon slot %q", def.ID, def.WeaponType, def.Slot)
	}
	return nil
}

// Ladder returns the realm ladder.
func (c *Content) Ladder() *RealmLadder {
	return &c.ladder
}

// Skill returns a skill definition by id. Returns nil if not found.
func (c *Content) Skill(id string) *SkillDefinition {
	return c.skills[id]
}

// Item returns an item definition by id. Returns nil if not found.
func (c *Content) Item(id string) *ItemDefinition {
	return c.items[id]
}

// Affinity returns an affinity definition by type. Returns nil if not found.
func (c *Content) Affinity(t AffinityType) *AffinityDefinition {
	return c.affinities[t]
}

// Species returns a species baseline by id. Returns nil if not found.
func (c *Content) Species(id string) *SpeciesBaseline {
	return c.species[id]
}

// SkillIDs returns all skill ids in sorted order.
func (c *Content) SkillIDs() []string {
	ids := make([]string, 0, len(c.skills))
	for id := range c.skills {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ItemIDs returns all item ids in sorted order.
func (c *Content) ItemIDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
