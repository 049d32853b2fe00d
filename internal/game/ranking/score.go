package ranking

import (
	"math"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/model"
)

// Score weights.
const (
	weightRealm      = 10000
	weightLevel      = 500
	weightAttribute  = 5
	healthDivisor    = 10
	weightAttack     = 1
	weightDefense    = 1
	weightSpeed      = 1
	weightCritRate   = 1000
	weightCritDamage = 100
)

// itemTierPoints and skillTierPoints are indexed by data.Tier.
var (
	itemTierPoints  = [...]float64{data.TierYellow: 10, data.TierMystic: 25, data.TierEarth: 60, data.TierHeaven: 150}
	skillTierPoints = [...]float64{data.TierYellow: 15, data.TierMystic: 40, data.TierEarth: 90, data.TierHeaven: 200}
)

// ScoredSkill is a learned skill as the scorer sees it.
type ScoredSkill struct {
	Tier  data.Tier
	Level int32
}

// Profile is everything scoring reads: the aggregated sheet plus the tiers
// of equipped items and learned skills.
type Profile struct {
	Cultivation data.CultivationState
	Attributes  model.Attributes
	Stats       model.CombatStats
	ItemTiers   []data.Tier
	Skills      []ScoredSkill
}

// Score returns the composite power score of a build.
// It is used for ranking only and never feeds back into stats.
//
// The score never decreases as the realm index grows; the mortal state
// scores as realm 0 level 0.
func Score(p Profile) int64 {
	realm := float64(max(p.Cultivation.RealmIndex, 0))
	level := float64(max(p.Cultivation.Level, 0))

	s := realm*weightRealm +
		level*weightLevel +
		p.Attributes.Sum()*weightAttribute +
		p.Stats.MaxHealth/healthDivisor +
		p.Stats.AttackPower*weightAttack +
		p.Stats.DefensePower*weightDefense +
		p.Stats.Speed*weightSpeed +
		p.Stats.CritRate*weightCritRate +
		p.Stats.CritDamage*weightCritDamage

	for _, t := range p.ItemTiers {
		s += tierPoints(itemTierPoints[:], t)
	}
	for _, sk := range p.Skills {
		s += tierPoints(skillTierPoints[:], sk.Tier) * (1 + float64(sk.Level)/10)
	}

	return int64(math.Round(s))
}

// Potential divides score by age; ages ≤ 0 count as 1.
func Potential(score int64, ageYears int32) int64 {
	age := max(ageYears, 1)
	return int64(math.Round(float64(score) / float64(age)))
}

func tierPoints(table []float64, t data.Tier) float64 {
	if !t.Valid() {
		return 0
	}
	return table[t]
}

// ProfileFor builds a scoring profile from a character and its aggregated sheet.
// Items and skills missing from content are skipped: Aggregate has already
// rejected them for any sheet that reached this point.
func ProfileFor(content *data.Content, c *model.Character, attrs model.Attributes, st model.CombatStats) Profile {
	p := Profile{
		Cultivation: c.Cultivation,
		Attributes:  attrs,
		Stats:       st,
	}
	for _, slot := range data.Slots {
		id := c.Equipment[slot]
		if id == "" {
			continue
		}
		if item := content.Item(id); item != nil {
			p.ItemTiers = append(p.ItemTiers, item.Tier)
		}
	}
	for _, ls := range c.Skills {
		if def := content.Skill(ls.SkillID); def != nil {
			p.Skills = append(p.Skills, ScoredSkill{Tier: def.Tier, Level: ls.Level})
		}
	}
	return p
}
