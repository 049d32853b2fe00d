package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/skill"
	"github.com/udisondev/powerengine/internal/model"
)

func testContent(t *testing.T) *data.Content {
	t.Helper()
	c, err := data.NewContent(data.Tables{
		Ladder: data.TestLadder(),
		Species: []data.SpeciesBaseline{
			{ID: "blank", Stats: map[data.Stat]float64{data.StatCritDamage: 1.5}},
			{ID: "brute", Stats: map[data.Stat]float64{data.StatAttackPower: 100, data.StatMaxHealth: 50}},
		},
		Skills: []data.SkillDefinition{
			{ID: "tiger_method", Category: data.SkillPassive, Tier: data.TierYellow, MaxLevel: 2,
				PassiveBonuses: []data.Bonus{data.Add(data.StatAttackPower, 20), data.Mul(data.StatAttackPower, 0.10)},
				Upgrades: []data.Upgrade{
					data.AddPassiveBonus{AtLevel: 2, Bonus: data.Add(data.StatConstitution, 5)},
				}},
			{ID: "water_method", Category: data.SkillPassive, Tier: data.TierEarth, MaxLevel: 1,
				RequiredAffinity: data.AffinityWater,
				PassiveBonuses:   []data.Bonus{data.Add(data.StatSpiritualSense, 10)}},
			{ID: "punch", Category: data.SkillActive, Tier: data.TierYellow, MaxLevel: 3, ManaCost: 5,
				Damage: data.DamageFormula{Base: 10}},
		},
		Items: []data.ItemDefinition{
			{ID: "tiger_ring", Slot: data.SlotAccessory, Tier: data.TierMystic,
				Bonuses: []data.Bonus{data.Mul(data.StatAttackPower, 0.10)}},
			{ID: "typo_hat", Slot: data.SlotHead, Tier: data.TierYellow,
				Bonuses: []data.Bonus{{Target: "atack_power", Magnitude: 50}, data.Add(data.StatDefensePower, 7)}},
			{ID: "qi_robe", Slot: data.SlotBody, Tier: data.TierYellow,
				Bonuses: []data.Bonus{data.Add(data.StatMaxQi, 500)}},
			{ID: "ghost_boots", Slot: data.SlotLegs, Tier: data.TierYellow,
				Bonuses: []data.Bonus{data.Add(data.StatEvasionRate, 2)}},
		},
		Affinities: []data.AffinityDefinition{
			{Type: data.AffinityFire, Bonuses: []data.AffinityBonus{
				{Target: data.StatAttackPower, Mode: data.BonusAdditive, ValuePerPurity: 0.5},
				{Target: data.StatCritDamage, Mode: data.BonusAdditive, ValuePerPurity: 0.002},
			}},
		},
	})
	require.NoError(t, err)
	return c
}

func TestAggregate_DerivedStats(t *testing.T) {
	res, err := Aggregate(Input{
		Content: testContent(t),
		Species: "blank",
		BaseAttributes: model.Attributes{
			Constitution: 10, Agility: 20, SpiritualSense: 5,
			Comprehension: 2, Fortune: 10, MentalFortitude: 3,
		},
		Cultivation: data.Mortal(),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	s := res.Stats
	assert.Equal(t, 100.0, s.MaxHealth)
	assert.Equal(t, 37.0, s.MaxMana)
	assert.Equal(t, 10.0, s.AttackPower)
	assert.Equal(t, 10.0, s.DefensePower)
	assert.Equal(t, 20.0, s.Speed)
	assert.Equal(t, 0.0, s.MaxQi)
	assert.InDelta(t, 0.025, s.CritRate, 1e-12)
	assert.InDelta(t, 1.6, s.CritDamage, 1e-12)
	assert.InDelta(t, 0.02, s.EvasionRate, 1e-12)
}

func TestAggregate_SourcesDoNotCompound(t *testing.T) {
	res, err := Aggregate(Input{
		Content:     testContent(t),
		Species:     "brute",
		Cultivation: data.Mortal(),
		Skills:      []model.LearnedSkill{{SkillID: "tiger_method", Level: 1}},
		Equipment:   model.Equipment{data.SlotAccessory: "tiger_ring"},
	})
	require.NoError(t, err)

	// (100 + 20) * 1.10 passive layer, then * 1.10 equipment layer = 145.2.
	// A single pass over both multipliers would give 144.
	assert.Equal(t, 145.0, res.Stats.AttackPower)
}

func TestAggregate_CultivationRollsAndQi(t *testing.T) {
	res, err := Aggregate(Input{
		Content:       testContent(t),
		Species:       "blank",
		Cultivation:   data.CultivationState{RealmIndex: 1, Level: 0},
		RolledBonuses: []data.Bonus{data.Add(data.StatConstitution, 4), data.Add(data.StatMaxHealth, 12.4)},
		Equipment:     model.Equipment{data.SlotBody: "qi_robe"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, res.Attributes.Constitution)
	assert.Equal(t, 52.0, res.Stats.MaxHealth)
	assert.Equal(t, 1000.0, res.Stats.MaxQi, "max_qi ignores bonuses")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "item:qi_robe", res.Diagnostics[0].Source)
}

func TestAggregate_UnknownTargetReportedAndSkipped(t *testing.T) {
	res, err := Aggregate(Input{
		Content:     testContent(t),
		Species:     "blank",
		Cultivation: data.Mortal(),
		Equipment:   model.Equipment{data.SlotHead: "typo_hat"},
	})
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, "item:typo_hat", d.Source)
	assert.Equal(t, "atack_power", d.Subject)
	assert.Contains(t, d.Message, "attack_power")

	assert.Equal(t, 0.0, res.Stats.AttackPower)
	assert.Equal(t, 7.0, res.Stats.DefensePower)
}

func TestAggregate_AffinityScalesWithPurity(t *testing.T) {
	res, err := Aggregate(Input{
		Content:     testContent(t),
		Species:     "blank",
		Cultivation: data.Mortal(),
		Affinities:  []model.ElementalAffinity{{Type: data.AffinityFire, Purity: 50}},
	})
	require.NoError(t, err)

	assert.Equal(t, 25.0, res.Stats.AttackPower)
	assert.InDelta(t, 1.6, res.Stats.CritDamage, 1e-12)
}

func TestAggregate_PassiveLevelAndAffinityRequirement(t *testing.T) {
	res, err := Aggregate(Input{
		Content:     testContent(t),
		Species:     "blank",
		Cultivation: data.Mortal(),
		Skills: []model.LearnedSkill{
			{SkillID: "tiger_method", Level: 2},
			{SkillID: "water_method", Level: 1},
			{SkillID: "punch", Level: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Attributes.Constitution)
	assert.Equal(t, 0.0, res.Attributes.SpiritualSense)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "skill:water_method", res.Diagnostics[0].Source)
}

func TestAggregate_RatesClamped(t *testing.T) {
	res, err := Aggregate(Input{
		Content:     testContent(t),
		Species:     "blank",
		Cultivation: data.Mortal(),
		Equipment:   model.Equipment{data.SlotLegs: "ghost_boots"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Stats.EvasionRate)
}

func TestAggregate_Idempotent(t *testing.T) {
	content := data.Default()
	c := &model.Character{
		ID:             "lin",
		Species:        "human",
		BaseAttributes: model.Attributes{Constitution: 13, Agility: 11, SpiritualSense: 17, Comprehension: 9, Fortune: 7, MentalFortitude: 8},
		Cultivation:    data.CultivationState{RealmIndex: 1, Level: 2},
		RolledBonuses:  []model.RolledBonus{{Target: data.StatConstitution, Value: 3}, {Target: data.StatMaxHealth, Value: 17}},
		Skills: []model.LearnedSkill{
			{SkillID: "heaven_devouring_art", Level: 5},
			{SkillID: "iron_body_method", Level: 3},
			{SkillID: "azure_cloud_sword", Level: 4},
		},
		Equipment: model.Equipment{
			data.SlotWeapon:    "azure_frost_sword",
			data.SlotBody:      "cloud_silk_robe",
			data.SlotAccessory: "phoenix_pendant",
		},
		Affinities: []model.ElementalAffinity{{Type: data.AffinityWater, Purity: 73}, {Type: data.AffinityFire, Purity: 12}},
	}

	first, err := Aggregate(InputFor(content, c))
	require.NoError(t, err)
	for range 10 {
		again, err := Aggregate(InputFor(content, c))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Equal(t, 1600.0, first.Stats.MaxQi)
	assert.Greater(t, first.Stats.AttackPower, 0.0)
}

func TestAggregate_ContractViolations(t *testing.T) {
	content := testContent(t)
	base := func() Input {
		return Input{Content: content, Species: "blank", Cultivation: data.Mortal()}
	}

	tests := []struct {
		name   string
		mutate func(in *Input)
		want   error
	}{
		{"nil content", func(in *Input) { in.Content = nil }, ErrNoContent},
		{"unknown species", func(in *Input) { in.Species = "dragon" }, data.ErrUnknownContent},
		{"invalid cultivation", func(in *Input) { in.Cultivation = data.CultivationState{RealmIndex: 7} }, data.ErrInvalidCultivation},
		{"unknown skill", func(in *Input) { in.Skills = []model.LearnedSkill{{SkillID: "nope", Level: 1}} }, data.ErrUnknownContent},
		{"skill level too high", func(in *Input) { in.Skills = []model.LearnedSkill{{SkillID: "punch", Level: 4}} }, skill.ErrLevelOutOfRange},
		{"skill level zero", func(in *Input) { in.Skills = []model.LearnedSkill{{SkillID: "punch", Level: 0}} }, skill.ErrLevelOutOfRange},
		{"unknown item", func(in *Input) { in.Equipment = model.Equipment{data.SlotHead: "crown"} }, data.ErrUnknownContent},
		{"item in wrong slot", func(in *Input) { in.Equipment = model.Equipment{data.SlotHead: "tiger_ring"} }, model.ErrSlotMismatch},
		{"unknown slot", func(in *Input) { in.Equipment = model.Equipment{"tail": "tiger_ring"} }, data.ErrUnknownContent},
		{"unknown affinity", func(in *Input) {
			in.Affinities = []model.ElementalAffinity{{Type: data.AffinityWood, Purity: 1}}
		}, data.ErrUnknownContent},
		{"purity out of range", func(in *Input) {
			in.Affinities = []model.ElementalAffinity{{Type: data.AffinityFire, Purity: 150}}
		}, model.ErrInvalidPurity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			res, err := Aggregate(in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, Result{}, res)
		})
	}
}
