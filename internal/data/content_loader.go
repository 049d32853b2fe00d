package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// contentFile: YAML-представление content tables.
// Sections that are omitted fall back to the built-in tables.
type contentFile struct {
	Ladder     *RealmLadder   `yaml:"ladder"`
	Species    []speciesYAML  `yaml:"species"`
	Skills     []skillYAML    `yaml:"skills"`
	Items      []itemYAML     `yaml:"items"`
	Affinities []affinityYAML `yaml:"affinities"`
}

type speciesYAML struct {
	ID    string             `yaml:"id"`
	Name  string             `yaml:"name"`
	Stats map[string]float64 `yaml:"stats"`
}

type bonusYAML struct {
	Target    string  `yaml:"target"`
	Mode      string  `yaml:"mode"`
	Magnitude float64 `yaml:"magnitude"`
}

type damageYAML struct {
	Base              float64 `yaml:"base"`
	AttackPowerFactor float64 `yaml:"attack_power_factor"`
	ScalingAttribute  string  `yaml:"scaling_attribute"`
	ScalingFactor     float64 `yaml:"scaling_factor"`
}

// upgradeYAML is the wire shape of every upgrade kind; only the fields
// relevant to Kind are read when converting to the typed variant.
type upgradeYAML struct {
	Level      int32         `yaml:"level"`
	Kind       string        `yaml:"kind"`
	Amount     float64       `yaml:"amount"`
	Fraction   float64       `yaml:"fraction"`
	Effect     *StatusEffect `yaml:"effect"`
	EffectType string        `yaml:"effect_type"`
	Chance     float64       `yaml:"chance"`
	Duration   int32         `yaml:"duration"`
	Magnitude  float64       `yaml:"magnitude"`
	Bonus      *bonusYAML    `yaml:"bonus"`
}

type skillYAML struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Category       string         `yaml:"category"`
	Tier           string         `yaml:"tier"`
	Weapon         string         `yaml:"weapon"`
	Affinity       string         `yaml:"affinity"`
	MaxLevel       int32          `yaml:"max_level"`
	ManaCost       int32          `yaml:"mana_cost"`
	Damage         damageYAML     `yaml:"damage"`
	Effects        []StatusEffect `yaml:"effects"`
	PassiveBonuses []bonusYAML    `yaml:"passive_bonuses"`
	Upgrades       []upgradeYAML  `yaml:"upgrades"`
}

type itemYAML struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Slot    string      `yaml:"slot"`
	Tier    string      `yaml:"tier"`
	Weapon  string      `yaml:"weapon"`
	Bonuses []bonusYAML `yaml:"bonuses"`
}

type affinityBonusYAML struct {
	Target         string  `yaml:"target"`
	Mode           string  `yaml:"mode"`
	ValuePerPurity float64 `yaml:"value_per_purity"`
}

type affinityYAML struct {
	Type    string              `yaml:"type"`
	Name    string              `yaml:"name"`
	Bonuses []affinityBonusYAML `yaml:"bonuses"`
}

// LoadContent loads content tables from a YAML file.
// If path is empty or the file doesn't exist, returns the built-in content.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("content file not found, using built-in content", "path", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}

	c, err := ParseContent(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}

	slog.Info("loaded content", "path", path, "skills", len(c.skills), "items", len(c.items))
	return c, nil
}

// ParseContent decodes YAML content tables.
func ParseContent(raw []byte) (*Content, error) {
	var f contentFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	defaults := DefaultTables()
	t := Tables{
		Ladder:     defaults.Ladder,
		Species:    defaults.Species,
		Skills:     defaults.Skills,
		Items:      defaults.Items,
		Affinities: defaults.Affinities,
	}

	if f.Ladder != nil {
		t.Ladder = *f.Ladder
	}
	if f.Species != nil {
		species, err := convertSpecies(f.Species)
		if err != nil {
			return nil, err
		}
		t.Species = species
	}
	if f.Skills != nil {
		t.Skills = make([]SkillDefinition, 0, len(f.Skills))
		for _, s := range f.Skills {
			def, err := convertSkill(s)
			if err != nil {
				return nil, fmt.Errorf("skill %q: %w", s.ID, err)
			}
			t.Skills = append(t.Skills, def)
		}
	}
	if f.Items != nil {
		t.Items = make([]ItemDefinition, 0, len(f.Items))
		for _, it := range f.Items {
			def, err := convertItem(it)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", it.ID, err)
			}
			t.Items = append(t.Items, def)
		}
	}
	if f.Affinities != nil {
		t.Affinities = make([]AffinityDefinition, 0, len(f.Affinities))
		for _, a := range f.Affinities {
			def, err := convertAffinity(a)
			if err != nil {
				return nil, fmt.Errorf("affinity %q: %w", a.Type, err)
			}
			t.Affinities = append(t.Affinities, def)
		}
	}

	return NewContent(t)
}

func convertSpecies(in []speciesYAML) ([]SpeciesBaseline, error) {
	out := make([]SpeciesBaseline, 0, len(in))
	for _, s := range in {
		stats := make(map[Stat]float64, len(s.Stats))
		for name, v := range s.Stats {
			st, err := ParseStat(name)
			if err != nil {
				return nil, fmt.Errorf("species %q: %w", s.ID, err)
			}
			stats[st] = v
		}
		out = append(out, SpeciesBaseline{ID: s.ID, Name: s.Name, Stats: stats})
	}
	return out, nil
}

// convertBonus keeps the target as authored: unresolvable names surface as
// aggregation diagnostics rather than load failures.
func convertBonus(b bonusYAML) (Bonus, error) {
	mode, err := ParseBonusMode(b.Mode)
	if err != nil {
		return Bonus{}, err
	}
	return Bonus{Target: Stat(b.Target), Mode: mode, Magnitude: b.Magnitude}, nil
}

func convertBonuses(in []bonusYAML) ([]Bonus, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]Bonus, 0, len(in))
	for _, b := range in {
		bonus, err := convertBonus(b)
		if err != nil {
			return nil, err
		}
		out = append(out, bonus)
	}
	return out, nil
}

// convertScaling normalises the scaling attribute name. A name that does not
// resolve is kept raw and reported when the skill is resolved.
func convertScaling(name string) Stat {
	if name == "" {
		return ""
	}
	if s, err := ParseStat(name); err == nil {
		return s
	}
	return Stat(name)
}

func convertSkill(s skillYAML) (SkillDefinition, error) {
	category, err := ParseSkillCategory(s.Category)
	if err != nil {
		return SkillDefinition{}, err
	}
	tier, err := ParseTier(s.Tier)
	if err != nil {
		return SkillDefinition{}, err
	}
	bonuses, err := convertBonuses(s.PassiveBonuses)
	if err != nil {
		return SkillDefinition{}, err
	}

	def := SkillDefinition{
		ID:               s.ID,
		Name:             s.Name,
		Category:         category,
		Tier:             tier,
		RequiredWeapon:   WeaponType(s.Weapon),
		RequiredAffinity: AffinityType(s.Affinity),
		MaxLevel:         s.MaxLevel,
		ManaCost:         s.ManaCost,
		Damage: DamageFormula{
			Base:              s.Damage.Base,
			AttackPowerFactor: s.Damage.AttackPowerFactor,
			ScalingAttribute:  convertScaling(s.Damage.ScalingAttribute),
			ScalingFactor:     s.Damage.ScalingFactor,
		},
		Effects:        s.Effects,
		PassiveBonuses: bonuses,
	}

	for i, u := range s.Upgrades {
		up, err := convertUpgrade(u)
		if err != nil {
			return SkillDefinition{}, fmt.Errorf("upgrade #%d: %w", i, err)
		}
		def.Upgrades = append(def.Upgrades, up)
	}
	return def, nil
}

func convertUpgrade(u upgradeYAML) (Upgrade, error) {
	switch UpgradeKind(u.Kind) {
	case UpgradeDamage:
		return DamageIncrease{AtLevel: u.Level, Amount: u.Amount}, nil
	case UpgradeManaFlat:
		return ManaCostFlat{AtLevel: u.Level, Amount: u.Amount}, nil
	case UpgradeManaPercent:
		return ManaCostPercent{AtLevel: u.Level, Fraction: u.Fraction}, nil
	case UpgradeAddEffect:
		if u.Effect == nil {
			return nil, errors.New("add_effect without effect")
		}
		return AddEffect{AtLevel: u.Level, Effect: *u.Effect}, nil
	case UpgradeModifyEffect:
		return ModifyEffect{
			AtLevel:    u.Level,
			EffectType: EffectType(u.EffectType),
			Chance:     u.Chance,
			Duration:   u.Duration,
			Magnitude:  u.Magnitude,
		}, nil
	case UpgradeAddPassiveBonus:
		if u.Bonus == nil {
			return nil, errors.New("add_bonus without bonus")
		}
		b, err := convertBonus(*u.Bonus)
		if err != nil {
			return nil, err
		}
		return AddPassiveBonus{AtLevel: u.Level, Bonus: b}, nil
	default:
		return nil, fmt.Errorf("unknown upgrade kind %q", u.Kind)
	}
}

func convertItem(it itemYAML) (ItemDefinition, error) {
	slot, err := ParseSlot(it.Slot)
	if err != nil {
		return ItemDefinition{}, err
	}
	tier, err := ParseTier(it.Tier)
	if err != nil {
		return ItemDefinition{}, err
	}
	bonuses, err := convertBonuses(it.Bonuses)
	if err != nil {
		return ItemDefinition{}, err
	}
	return ItemDefinition{
		ID:         it.ID,
		Name:       it.Name,
		Slot:       slot,
		Tier:       tier,
		WeaponType: WeaponType(it.Weapon),
		Bonuses:    bonuses,
	}, nil
}

func convertAffinity(a affinityYAML) (AffinityDefinition, error) {
	def := AffinityDefinition{Type: AffinityType(a.Type), Name: a.Name}
	for _, b := range a.Bonuses {
		mode, err := ParseBonusMode(b.Mode)
		if err != nil {
			return AffinityDefinition{}, err
		}
		def.Bonuses = append(def.Bonuses, AffinityBonus{
			Target:         Stat(b.Target),
			Mode:           mode,
			ValuePerPurity: b.ValuePerPurity,
		})
	}
	return def, nil
}
