package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/powerengine/internal/data"
)

func TestCharacter_LearnAndLevelUp(t *testing.T) {
	c := &Character{ID: "c1"}

	require.NoError(t, c.Learn("flame_palm"))
	assert.ErrorIs(t, c.Learn("flame_palm"), ErrSkillLearned)

	s, ok := c.Skill("flame_palm")
	require.True(t, ok)
	assert.Equal(t, int32(1), s.Level)

	lvl, err := c.LevelUpSkill("flame_palm", 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), lvl)

	lvl, err = c.LevelUpSkill("flame_palm", 2)
	assert.ErrorIs(t, err, ErrSkillMaxLevel)
	assert.Equal(t, int32(2), lvl)

	_, err = c.LevelUpSkill("missing", 5)
	assert.ErrorIs(t, err, ErrSkillNotLearned)
}

func TestCharacter_Equip(t *testing.T) {
	content := data.Default()
	c := &Character{ID: "c1"}

	assert.Equal(t, data.WeaponNone, c.WeaponType(content))

	prev, err := c.Equip(content.Item("iron_sword"), data.SlotWeapon)
	require.NoError(t, err)
	assert.Empty(t, prev)
	assert.Equal(t, data.WeaponSword, c.WeaponType(content))

	prev, err = c.Equip(content.Item("dragonbone_spear"), data.SlotWeapon)
	require.NoError(t, err)
	assert.Equal(t, "iron_sword", prev)
	assert.Equal(t, data.WeaponSpear, c.WeaponType(content))

	_, err = c.Equip(content.Item("jade_hairpin"), data.SlotBody)
	assert.ErrorIs(t, err, ErrSlotMismatch)

	assert.Equal(t, "dragonbone_spear", c.Unequip(data.SlotWeapon))
	assert.Equal(t, data.WeaponNone, c.WeaponType(content))
}

func TestCharacter_SetPurity(t *testing.T) {
	c := &Character{Affinities: []ElementalAffinity{{Type: data.AffinityFire, Purity: 10}}}

	require.NoError(t, c.SetPurity(data.AffinityFire, 55))
	assert.InDelta(t, 55, c.Affinities[0].Purity, 1e-9)

	assert.ErrorIs(t, c.SetPurity(data.AffinityFire, 101), ErrInvalidPurity)
	assert.ErrorIs(t, c.SetPurity(data.AffinityFire, -1), ErrInvalidPurity)
	assert.ErrorIs(t, c.SetPurity(data.AffinityWater, 10), ErrAffinityFixed)
}

func TestCharacter_RolledBonuses(t *testing.T) {
	c := &Character{}
	c.AddRolledBonuses([]data.Bonus{data.Add(data.StatConstitution, 3), data.Add(data.StatMaxHealth, 15)})

	got := c.Bonuses()
	require.Len(t, got, 2)
	assert.Equal(t, data.Add(data.StatConstitution, 3), got[0])
	assert.Equal(t, data.BonusAdditive, got[1].Mode)
}
