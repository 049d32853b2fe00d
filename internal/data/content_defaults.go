package data

import "fmt"

// Default builds the built-in content set.
// Used when no content file is configured and as a fixture in tests.
func Default() *Content {
	c, err := NewContent(DefaultTables())
	if err != nil {
		panic(fmt.Sprintf("built-in content invalid: %v", err))
	}
	return c
}

// DefaultTables returns a fresh copy of the built-in content tables.
func DefaultTables() Tables {
	return Tables{
		Ladder:     defaultLadder(),
		Skills:     defaultSkills(),
		Items:      defaultItems(),
		Affinities: defaultAffinities(),
		Species:    defaultSpecies(),
	}
}

func defaultLadder() RealmLadder {
	// Qi Condensation: nine layers with small rolls.
	qiCondensation := Realm{Name: "Qi Condensation"}
	for i := range 9 {
		qiCondensation.Levels = append(qiCondensation.Levels, RealmLevel{
			Name: fmt.Sprintf("Layer %d", i+1),
			Rolls: []StatRoll{
				{Target: StatConstitution, Min: 1, Max: 3},
				{Target: StatSpiritualSense, Min: 1, Max: 2},
				{Target: StatMaxHealth, Min: 10, Max: 20},
			},
			QiCapacity: int32(100 + 50*i),
		})
	}

	stage := func(name string, qi int32, rolls ...StatRoll) RealmLevel {
		return RealmLevel{Name: name, Rolls: rolls, QiCapacity: qi}
	}

	return RealmLadder{Realms: []Realm{
		qiCondensation,
		{Name: "Foundation Establishment", Levels: []RealmLevel{
			stage("Early", 1000,
				StatRoll{Target: StatConstitution, Min: 3, Max: 6},
				StatRoll{Target: StatSpiritualSense, Min: 2, Max: 4},
				StatRoll{Target: StatMaxLifespan, Min: 100, Max: 100}),
			stage("Middle", 1300,
				StatRoll{Target: StatConstitution, Min: 3, Max: 6},
				StatRoll{Target: StatComprehension, Min: 1, Max: 3}),
			stage("Late", 1600,
				StatRoll{Target: StatAgility, Min: 2, Max: 5},
				StatRoll{Target: StatAttackPower, Min: 10, Max: 20}),
		}},
		{Name: "Core Formation", Levels: []RealmLevel{
			stage("Early", 3000,
				StatRoll{Target: StatConstitution, Min: 6, Max: 10},
				StatRoll{Target: StatSpiritualSense, Min: 5, Max: 8},
				StatRoll{Target: StatMaxLifespan, Min: 300, Max: 300}),
			stage("Middle", 3800,
				StatRoll{Target: StatMentalFortitude, Min: 4, Max: 7},
				StatRoll{Target: StatDefensePower, Min: 20, Max: 35}),
			stage("Late", 4600,
				StatRoll{Target: StatFortune, Min: 2, Max: 4},
				StatRoll{Target: StatAttackPower, Min: 25, Max: 40}),
		}},
		{Name: "Nascent Soul", Levels: []RealmLevel{
			stage("Early", 8000,
				StatRoll{Target: StatSpiritualSense, Min: 10, Max: 15},
				StatRoll{Target: StatMaxLifespan, Min: 800, Max: 800}),
			stage("Middle", 9500,
				StatRoll{Target: StatConstitution, Min: 10, Max: 15},
				StatRoll{Target: StatComprehension, Min: 5, Max: 8}),
			stage("Late", 11000,
				StatRoll{Target: StatAgility, Min: 8, Max: 12},
				StatRoll{Target: StatAttackPower, Min: 60, Max: 90}),
		}},
		{Name: "Spirit Severing", Levels: []RealmLevel{
			stage("Early", 20000,
				StatRoll{Target: StatSpiritualSense, Min: 15, Max: 25},
				StatRoll{Target: StatMaxLifespan, Min: 2000, Max: 2000}),
			stage("Middle", 24000,
				StatRoll{Target: StatMentalFortitude, Min: 12, Max: 18}),
			stage("Late", 28000,
				StatRoll{Target: StatFortune, Min: 5, Max: 10}),
			stage("Peak", 32000,
				StatRoll{Target: StatConstitution, Min: 20, Max: 30},
				StatRoll{Target: StatDefensePower, Min: 80, Max: 120}),
		}},
	}}
}

func defaultSpecies() []SpeciesBaseline {
	return []SpeciesBaseline{
		{
			ID:   "human",
			Name: "Human",
			Stats: map[Stat]float64{
				StatMaxHealth:    100,
				StatMaxMana:      50,
				StatMaxLifespan:  80,
				StatAttackPower:  10,
				StatDefensePower: 5,
				StatSpeed:        10,
				StatCritRate:     0.05,
				StatCritDamage:   1.5,
				StatEvasionRate:  0.02,
			},
		},
		{
			ID:   "demon_beast",
			Name: "Demon Beast",
			Stats: map[Stat]float64{
				StatMaxHealth:    180,
				StatMaxMana:      30,
				StatMaxLifespan:  300,
				StatAttackPower:  14,
				StatDefensePower: 8,
				StatSpeed:        8,
				StatCritRate:     0.03,
				StatCritDamage:   1.6,
				StatEvasionRate:  0.01,
			},
		},
	}
}

func defaultSkills() []SkillDefinition {
	return []SkillDefinition{
		{
			ID:             "azure_cloud_sword",
			Name:           "Azure Cloud Sword Art",
			Category:       SkillActive,
			Tier:           TierMystic,
			RequiredWeapon: WeaponSword,
			MaxLevel:       5,
			ManaCost:       20,
			Damage:         DamageFormula{Base: 40, AttackPowerFactor: 1.2, ScalingAttribute: StatSpiritualSense, ScalingFactor: 0.5},
			Effects:        []StatusEffect{{Type: EffectBleed, Chance: 0.10, Duration: 2, Magnitude: 5}},
			Upgrades: []Upgrade{
				DamageIncrease{AtLevel: 2, Amount: 10},
				DamageIncrease{AtLevel: 3, Amount: 15},
				ManaCostPercent{AtLevel: 3, Fraction: -0.10},
				AddEffect{AtLevel: 4, Effect: StatusEffect{Type: EffectStun, Chance: 0.05, Duration: 1}},
				DamageIncrease{AtLevel: 5, Amount: 25},
				ModifyEffect{AtLevel: 5, EffectType: EffectBleed, Chance: 0.10, Magnitude: 3},
			},
		},
		{
			ID:       "flame_palm",
			Name:     "Scarlet Flame Palm",
			Category: SkillActive,
			Tier:     TierYellow,
			MaxLevel: 5,
			ManaCost: 15,
			Damage:   DamageFormula{Base: 30, AttackPowerFactor: 1.0, ScalingAttribute: StatSpiritualSense, ScalingFactor: 0.3},
			Effects:  []StatusEffect{{Type: EffectBurn, Chance: 0.20, Duration: 3, Magnitude: 4}},
			Upgrades: []Upgrade{
				DamageIncrease{AtLevel: 2, Amount: 8},
				ManaCostFlat{AtLevel: 3, Amount: 5},
				DamageIncrease{AtLevel: 3, Amount: 12},
				ModifyEffect{AtLevel: 4, EffectType: EffectBurn, Chance: 0.05, Duration: 1, Magnitude: 2},
				DamageIncrease{AtLevel: 5, Amount: 20},
			},
		},
		{
			ID:       "spring_rejuvenation",
			Name:     "Spring Rejuvenation Mantra",
			Category: SkillActive,
			Tier:     TierMystic,
			MaxLevel: 4,
			ManaCost: 25,
			Effects:  []StatusEffect{{Type: EffectHeal, Chance: 1, Magnitude: 60}},
			Upgrades: []Upgrade{
				ModifyEffect{AtLevel: 2, EffectType: EffectHeal, Magnitude: 20},
				ModifyEffect{AtLevel: 3, EffectType: EffectHeal, Magnitude: 30},
				ManaCostPercent{AtLevel: 4, Fraction: -0.20},
				ModifyEffect{AtLevel: 4, EffectType: EffectHeal, Magnitude: 40},
			},
		},
		{
			ID:             "thunder_spear_strike",
			Name:           "Nine Thunders Spear Strike",
			Category:       SkillActive,
			Tier:           TierEarth,
			RequiredWeapon: WeaponSpear,
			MaxLevel:       6,
			ManaCost:       40,
			Damage:         DamageFormula{Base: 80, AttackPowerFactor: 1.5, ScalingAttribute: StatAgility, ScalingFactor: 0.8},
			Upgrades: []Upgrade{
				DamageIncrease{AtLevel: 2, Amount: 20},
				DamageIncrease{AtLevel: 3, Amount: 20},
				AddEffect{AtLevel: 3, Effect: StatusEffect{Type: EffectStun, Chance: 0.15, Duration: 1}},
				DamageIncrease{AtLevel: 4, Amount: 30},
				ManaCostFlat{AtLevel: 5, Amount: 10},
				DamageIncrease{AtLevel: 5, Amount: 40},
				DamageIncrease{AtLevel: 6, Amount: 60},
			},
		},
		{
			ID:             "venom_fan_dance",
			Name:           "Jade Venom Fan Dance",
			Category:       SkillActive,
			Tier:           TierMystic,
			RequiredWeapon: WeaponFan,
			MaxLevel:       3,
			ManaCost:       18,
			Damage:         DamageFormula{Base: 25, AttackPowerFactor: 0.9, ScalingAttribute: StatAgility, ScalingFactor: 0.6},
			Effects:        []StatusEffect{{Type: EffectPoison, Chance: 0.35, Duration: 3, Magnitude: 6}},
			Upgrades: []Upgrade{
				ModifyEffect{AtLevel: 2, EffectType: EffectPoison, Chance: 0.10, Duration: 1},
				DamageIncrease{AtLevel: 3, Amount: 15},
				AddEffect{AtLevel: 3, Effect: StatusEffect{Type: EffectSlow, Chance: 0.20, Duration: 2, Magnitude: 0.2}},
			},
		},
		{
			ID:               "heaven_devouring_art",
			Name:             "Heaven Devouring Art",
			Category:         SkillPassive,
			Tier:             TierHeaven,
			RequiredAffinity: AffinityWater,
			MaxLevel:         5,
			PassiveBonuses: []Bonus{
				Add(StatSpiritualSense, 5),
				Mul(StatMaxMana, 0.10),
			},
			Upgrades: []Upgrade{
				AddPassiveBonus{AtLevel: 2, Bonus: Add(StatComprehension, 3)},
				AddPassiveBonus{AtLevel: 3, Bonus: Mul(StatAttackPower, 0.05)},
				AddPassiveBonus{AtLevel: 4, Bonus: Add(StatSpiritualSense, 5)},
				AddPassiveBonus{AtLevel: 5, Bonus: Mul(StatMaxMana, 0.10)},
			},
		},
		{
			ID:       "iron_body_method",
			Name:     "Iron Body Tempering Method",
			Category: SkillPassive,
			Tier:     TierYellow,
			MaxLevel: 3,
			PassiveBonuses: []Bonus{
				Add(StatConstitution, 3),
				Mul(StatDefensePower, 0.10),
			},
			Upgrades: []Upgrade{
				AddPassiveBonus{AtLevel: 2, Bonus: Add(StatConstitution, 2)},
				AddPassiveBonus{AtLevel: 3, Bonus: Mul(StatMaxHealth, 0.05)},
			},
		},
		{
			ID:       "wind_step_method",
			Name:     "Drifting Wind Step",
			Category: SkillPassive,
			Tier:     TierMystic,
			MaxLevel: 3,
			PassiveBonuses: []Bonus{
				Add(StatAgility, 4),
				Add(StatEvasionRate, 0.02),
			},
			Upgrades: []Upgrade{
				AddPassiveBonus{AtLevel: 2, Bonus: Add(StatSpeed, 3)},
				AddPassiveBonus{AtLevel: 3, Bonus: Add(StatEvasionRate, 0.02)},
			},
		},
	}
}

func defaultItems() []ItemDefinition {
	return []ItemDefinition{
		{ID: "iron_sword", Name: "Iron Sword", Slot: SlotWeapon, Tier: TierYellow, WeaponType: WeaponSword,
			Bonuses: []Bonus{Add(StatAttackPower, 15)}},
		{ID: "azure_frost_sword", Name: "Azure Frost Sword", Slot: SlotWeapon, Tier: TierEarth, WeaponType: WeaponSword,
			Bonuses: []Bonus{Add(StatAttackPower, 60), Add(StatCritRate, 0.03), Mul(StatAttackPower, 0.05)}},
		{ID: "dragonbone_spear", Name: "Dragonbone Spear", Slot: SlotWeapon, Tier: TierHeaven, WeaponType: WeaponSpear,
			Bonuses: []Bonus{Add(StatAttackPower, 120), Add(StatAgility, 5), Mul(StatAttackPower, 0.10)}},
		{ID: "plain_fan", Name: "Plain Paper Fan", Slot: SlotWeapon, Tier: TierYellow, WeaponType: WeaponFan,
			Bonuses: []Bonus{Add(StatAttackPower, 8), Add(StatAgility, 2)}},
		{ID: "jade_hairpin", Name: "Jade Hairpin", Slot: SlotHead, Tier: TierMystic,
			Bonuses: []Bonus{Add(StatSpiritualSense, 3)}},
		{ID: "cloud_silk_robe", Name: "Cloud Silk Robe", Slot: SlotBody, Tier: TierMystic,
			Bonuses: []Bonus{Add(StatDefensePower, 20), Mul(StatMaxHealth, 0.05)}},
		{ID: "iron_greaves", Name: "Iron Greaves", Slot: SlotLegs, Tier: TierYellow,
			Bonuses: []Bonus{Add(StatDefensePower, 8)}},
		{ID: "phoenix_pendant", Name: "Phoenix Feather Pendant", Slot: SlotAccessory, Tier: TierHeaven,
			Bonuses: []Bonus{Add(StatFortune, 5), Add(StatCritDamage, 0.2)}},
	}
}

func defaultAffinities() []AffinityDefinition {
	return []AffinityDefinition{
		{Type: AffinityFire, Name: "Fire", Bonuses: []AffinityBonus{
			{Target: StatAttackPower, Mode: BonusAdditive, ValuePerPurity: 0.5},
			{Target: StatCritDamage, Mode: BonusAdditive, ValuePerPurity: 0.002},
		}},
		{Type: AffinityWater, Name: "Water", Bonuses: []AffinityBonus{
			{Target: StatMaxMana, Mode: BonusMultiplier, ValuePerPurity: 0.002},
			{Target: StatMentalFortitude, Mode: BonusAdditive, ValuePerPurity: 0.05},
		}},
		{Type: AffinityWood, Name: "Wood", Bonuses: []AffinityBonus{
			{Target: StatMaxHealth, Mode: BonusMultiplier, ValuePerPurity: 0.002},
			{Target: StatMaxLifespan, Mode: BonusAdditive, ValuePerPurity: 1},
		}},
		{Type: AffinityMetal, Name: "Metal", Bonuses: []AffinityBonus{
			{Target: StatDefensePower, Mode: BonusAdditive, ValuePerPurity: 0.4},
			{Target: StatAttackPower, Mode: BonusMultiplier, ValuePerPurity: 0.001},
		}},
		{Type: AffinityEarth, Name: "Earth", Bonuses: []AffinityBonus{
			{Target: StatConstitution, Mode: BonusAdditive, ValuePerPurity: 0.05},
			{Target: StatDefensePower, Mode: BonusMultiplier, ValuePerPurity: 0.002},
		}},
		{Type: AffinityLightning, Name: "Lightning", Bonuses: []AffinityBonus{
			{Target: StatSpeed, Mode: BonusAdditive, ValuePerPurity: 0.1},
			{Target: StatCritRate, Mode: BonusAdditive, ValuePerPurity: 0.0005},
		}},
	}
}
