package stats

import (
	"errors"
	"fmt"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/game/skill"
	"github.com/udisondev/powerengine/internal/model"
)

// ErrNoContent is returned when Aggregate is called without content tables.
var ErrNoContent = errors.New("aggregate: nil content")

// Derived stat coefficients (per attribute point).
const (
	healthPerConstitution     = 10.0
	manaPerSpiritualSense     = 5.0
	manaPerComprehension      = 3.0
	manaPerMentalFortitude    = 2.0
	attackPerSpiritualSense   = 2.0
	defensePerConstitution    = 1.0
	speedPerAgility           = 1.0
	critRatePerSpiritualSense = 0.001
	critRatePerFortune        = 0.002
	critDamagePerFortune      = 0.01
	evasionRatePerAgility     = 0.001
)

// Input is everything aggregation reads. It is never modified.
type Input struct {
	Content        *data.Content
	Species        string
	BaseAttributes model.Attributes
	Cultivation    data.CultivationState
	RolledBonuses  []data.Bonus
	Skills         []model.LearnedSkill
	Equipment      model.Equipment
	Affinities     []model.ElementalAffinity
}

// InputFor collects aggregation inputs from a character.
func InputFor(content *data.Content, c *model.Character) Input {
	return Input{
		Content:        content,
		Species:        c.Species,
		BaseAttributes: c.BaseAttributes,
		Cultivation:    c.Cultivation,
		RolledBonuses:  c.Bonuses(),
		Skills:         c.Skills,
		Equipment:      c.Equipment,
		Affinities:     c.Affinities,
	}
}

// Result is a freshly computed character sheet.
type Result struct {
	Attributes  model.Attributes
	Stats       model.CombatStats
	Diagnostics []data.Diagnostic
}

// Aggregate computes final attributes and combat stats.
//
// Every call starts from the species baseline, never from a previous result,
// so repeated calls with the same input return identical sheets. Sources are
// applied in a fixed order: cultivation rolls, passive skills, equipment,
// affinities. Derived stats are layered on the rounded attributes, max_qi
// comes from the ladder alone.
//
// Content-integrity problems (unknown bonus targets, bad upgrades) end up in
// Result.Diagnostics; caller bugs (invalid cultivation state, unknown ids,
// out-of-range levels or purity) fail with an error.
func Aggregate(in Input) (Result, error) {
	if in.Content == nil {
		return Result{}, ErrNoContent
	}
	ladder := in.Content.Ladder()
	if err := ladder.Validate(in.Cultivation); err != nil {
		return Result{}, err
	}

	species := in.Content.Species(in.Species)
	if species == nil {
		return Result{}, fmt.Errorf("%w: species %q", data.ErrUnknownContent, in.Species)
	}

	var diags []data.Diagnostic
	sh := &sheet{}

	// Reset pass.
	for st, v := range species.Stats {
		if st.IsKnown() {
			sh.set(st, v)
		}
	}
	for _, st := range data.AttributeStats {
		sh.add(st, in.BaseAttributes.Get(st))
	}

	cultivation := newLayer("cultivation", sh, &diags)
	for _, b := range in.RolledBonuses {
		cultivation.apply("cultivation:"+in.Cultivation.String(), b)
	}
	cultivation.finish()

	passives := newLayer("passive", sh, &diags)
	for _, ls := range in.Skills {
		def := in.Content.Skill(ls.SkillID)
		if def == nil {
			return Result{}, fmt.Errorf("%w: skill %q", data.ErrUnknownContent, ls.SkillID)
		}
		eff, skillDiags, err := skill.Resolve(def, ls.Level)
		if err != nil {
			return Result{}, err
		}
		diags = append(diags, skillDiags...)
		if !def.IsPassive() {
			continue
		}
		if def.RequiredAffinity != data.AffinityNone && !hasAffinity(in.Affinities, def.RequiredAffinity) {
			diags = append(diags, data.Diagnostic{
				Source:  "skill:" + def.ID,
				Subject: string(def.RequiredAffinity),
				Message: "passive: required affinity not held, bonuses skipped",
			})
			continue
		}
		for _, b := range eff.PassiveBonuses {
			passives.apply("skill:"+def.ID, b)
		}
	}
	passives.finish()

	if err := validateEquipment(in.Equipment); err != nil {
		return Result{}, err
	}
	equipment := newLayer("equipment", sh, &diags)
	for _, slot := range data.Slots {
		id := in.Equipment[slot]
		if id == "" {
			continue
		}
		item := in.Content.Item(id)
		if item == nil {
			return Result{}, fmt.Errorf("%w: item %q in slot %s", data.ErrUnknownContent, id, slot)
		}
		if item.Slot != slot {
			return Result{}, fmt.Errorf("%w: %s into %s", model.ErrSlotMismatch, id, slot)
		}
		for _, b := range item.Bonuses {
			equipment.apply("item:"+id, b)
		}
	}
	equipment.finish()

	affinities := newLayer("affinity", sh, &diags)
	for _, a := range in.Affinities {
		def := in.Content.Affinity(a.Type)
		if def == nil {
			return Result{}, fmt.Errorf("%w: affinity %q", data.ErrUnknownContent, a.Type)
		}
		if a.Purity < 0 || a.Purity > model.MaxPurity {
			return Result{}, fmt.Errorf("%w: %s %v", model.ErrInvalidPurity, a.Type, a.Purity)
		}
		for _, ab := range def.Bonuses {
			affinities.apply("affinity:"+string(a.Type), ab.Scaled(a.Purity))
		}
	}
	affinities.finish()

	attrs := sh.attrs.Round()
	st := sh.stats
	addDerived(&st, attrs)

	qi, err := ladder.QiCapacity(in.Cultivation)
	if err != nil {
		return Result{}, err
	}
	st.MaxQi = float64(qi)

	return Result{
		Attributes:  attrs,
		Stats:       st.Round(),
		Diagnostics: diags,
	}, nil
}

// addDerived layers attribute-driven stats on top of bonus contributions.
func addDerived(st *model.CombatStats, a model.Attributes) {
	st.MaxHealth += healthPerConstitution * a.Constitution
	st.MaxMana += manaPerSpiritualSense*a.SpiritualSense +
		manaPerComprehension*a.Comprehension +
		manaPerMentalFortitude*a.MentalFortitude
	st.AttackPower += attackPerSpiritualSense * a.SpiritualSense
	st.DefensePower += defensePerConstitution * a.Constitution
	st.Speed += speedPerAgility * a.Agility
	st.CritRate += critRatePerSpiritualSense*a.SpiritualSense + critRatePerFortune*a.Fortune
	st.CritDamage += critDamagePerFortune * a.Fortune
	st.EvasionRate += evasionRatePerAgility * a.Agility
}

func validateEquipment(eq model.Equipment) error {
	for slot := range eq {
		if parsed, err := data.ParseSlot(string(slot)); err != nil || parsed != slot {
			return fmt.Errorf("%w: equipment slot %q", data.ErrUnknownContent, slot)
		}
	}
	return nil
}

func hasAffinity(affs []model.ElementalAffinity, t data.AffinityType) bool {
	for _, a := range affs {
		if a.Type == t {
			return true
		}
	}
	return false
}
