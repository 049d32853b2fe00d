package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContent(t *testing.T) {
	c := Default()

	require.NotNil(t, c.Skill("azure_cloud_sword"))
	require.NotNil(t, c.Item("iron_sword"))
	require.NotNil(t, c.Affinity(AffinityFire))
	require.NotNil(t, c.Species("human"))
	assert.Nil(t, c.Skill("missing"))

	ids := c.SkillIDs()
	assert.IsIncreasing(t, ids)

	// Upgrade levels must fit inside [2, MaxLevel].
	for _, id := range ids {
		def := c.Skill(id)
		for _, u := range def.Upgrades {
			assert.GreaterOrEqual(t, u.UpgradeLevel(), int32(2), id)
			assert.LessOrEqual(t, u.UpgradeLevel(), def.MaxLevel, id)
		}
	}
}

func TestNewContent_RejectsDuplicates(t *testing.T) {
	tables := DefaultTables()
	tables.Items = append(tables.Items, tables.Items[0])

	_, err := NewContent(tables)
	assert.ErrorContains(t, err, "duplicate item id")
}

func TestNewContent_RejectsWeaponTypeOffSlot(t *testing.T) {
	tables := DefaultTables()
	tables.Items = append(tables.Items, ItemDefinition{
		ID: "sword_hat", Slot: SlotHead, Tier: TierYellow, WeaponType: WeaponSword,
	})

	_, err := NewContent(tables)
	assert.ErrorContains(t, err, "non-weapon slot")
}

const testContentYAML = `
skills:
  - id: ember_finger
    name: Ember Finger
    category: active
    tier: yellow
    weapon: fist
    max_level: 3
    mana_cost: 10
    damage:
      base: 20
      attack_power_factor: 1
      scaling_attribute: spiritual_sense
      scaling_factor: 0.2
    effects:
      - {type: burn, chance: 0.1, duration: 2, magnitude: 3}
    upgrades:
      - {level: 2, kind: damage, amount: 5}
      - {level: 2, kind: mana_percent, fraction: -0.1}
      - {level: 3, kind: modify_effect, effect_type: burn, chance: 0.05}
      - level: 3
        kind: add_effect
        effect: {type: stun, chance: 0.05, duration: 1}
  - id: turtle_breath
    category: passive
    tier: earth
    max_level: 2
    passive_bonuses:
      - {target: defense_power, mode: MULTIPLIER, magnitude: 0.1}
    upgrades:
      - level: 2
        kind: add_bonus
        bonus: {target: constitution, magnitude: 4}
items:
  - id: bronze_knuckles
    slot: weapon
    tier: 1
    weapon: fist
    bonuses:
      - {target: attack_power, magnitude: 6}
`

func TestParseContent(t *testing.T) {
	c, err := ParseContent([]byte(testContentYAML))
	require.NoError(t, err)

	ember := c.Skill("ember_finger")
	require.NotNil(t, ember)
	assert.Equal(t, SkillActive, ember.Category)
	assert.Equal(t, WeaponFist, ember.RequiredWeapon)
	assert.Equal(t, StatSpiritualSense, ember.Damage.ScalingAttribute)
	require.Len(t, ember.Upgrades, 4)
	assert.Equal(t, DamageIncrease{AtLevel: 2, Amount: 5}, ember.Upgrades[0])
	assert.Equal(t, ManaCostPercent{AtLevel: 2, Fraction: -0.1}, ember.Upgrades[1])
	assert.Equal(t, ModifyEffect{AtLevel: 3, EffectType: EffectBurn, Chance: 0.05}, ember.Upgrades[2])
	assert.Equal(t, UpgradeAddEffect, ember.Upgrades[3].Kind())

	turtle := c.Skill("turtle_breath")
	require.NotNil(t, turtle)
	assert.True(t, turtle.IsPassive())
	assert.Equal(t, []Bonus{Mul(StatDefensePower, 0.1)}, turtle.PassiveBonuses)
	assert.Equal(t, AddPassiveBonus{AtLevel: 2, Bonus: Add(StatConstitution, 4)}, turtle.Upgrades[0])

	// Omitted sections keep built-in tables.
	assert.NotNil(t, c.Species("human"))
	assert.NotNil(t, c.Affinity(AffinityWater))
	assert.Nil(t, c.Item("iron_sword"))
	assert.NotNil(t, c.Item("bronze_knuckles"))
}

func TestParseContent_ScalingAttributeNormalised(t *testing.T) {
	tests := []struct {
		name string
		attr string
		want Stat
	}{
		{"dashed title case", "Spiritual-Sense", StatSpiritualSense},
		{"spaces", "mental fortitude", StatMentalFortitude},
		{"empty", "", ""},
		{"unknown kept raw", "dao_heart", Stat("dao_heart")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "skills: [{id: a, category: active, tier: yellow, max_level: 1, damage: {base: 1, scaling_attribute: \"" +
				tt.attr + "\", scaling_factor: 1}}]"
			c, err := ParseContent([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Skill("a").Damage.ScalingAttribute)
		})
	}
}

func TestParseContent_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown upgrade kind", "skills: [{id: a, tier: yellow, max_level: 2, upgrades: [{level: 2, kind: teleport}]}]"},
		{"unknown tier", "items: [{id: a, slot: head, tier: jade}]"},
		{"unknown slot", "items: [{id: a, slot: tail, tier: yellow}]"},
		{"unknown species stat", "species: [{id: x, stats: {atack_power: 1}}]"},
		{"add_effect without effect", "skills: [{id: a, tier: yellow, max_level: 2, upgrades: [{level: 2, kind: add_effect}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadContent_MissingFileFallsBack(t *testing.T) {
	c, err := LoadContent(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, c.Skill("azure_cloud_sword"))

	c, err = LoadContent("")
	require.NoError(t, err)
	assert.NotNil(t, c.Item("iron_sword"))
}

func TestLoadContent_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testContentYAML), 0o644))

	c, err := LoadContent(path)
	require.NoError(t, err)
	assert.NotNil(t, c.Skill("ember_finger"))
}

func TestNewTestContent(t *testing.T) {
	c := NewTestContent(func(tb *Tables) {
		tb.Ladder = TestLadder()
	})
	assert.Len(t, c.Ladder().Realms, 2)
}
