package cultivation

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/model"
)

var (
	ErrMaxCultivation = errors.New("cultivation already at the peak of the ladder")
	ErrInsufficientQi = errors.New("not enough qi to break through")
)

// Roller is a source of uniform draws in [0,1).
type Roller interface {
	Float64() float64
}

// Breakthrough advances state by one step and rolls the new level's bonuses.
//
// Each StatRoll yields an integer in [Min, Max] (Min when fixed). The rolls
// are returned as additive bonuses; the caller stores them and never
// re-rolls. The terminal state returns ErrMaxCultivation.
func Breakthrough(ladder *data.RealmLadder, state data.CultivationState, rng Roller) (data.CultivationState, []data.Bonus, error) {
	next, ok, err := ladder.Next(state)
	if err != nil {
		return state, nil, err
	}
	if !ok {
		return state, nil, fmt.Errorf("%w: %s", ErrMaxCultivation, ladder.RealmName(state))
	}

	lvl, err := ladder.Level(next)
	if err != nil {
		return state, nil, err
	}

	rolled := make([]data.Bonus, 0, len(lvl.Rolls))
	for _, r := range lvl.Rolls {
		rolled = append(rolled, data.Add(r.Target, roll(r, rng)))
	}
	return next, rolled, nil
}

func roll(r data.StatRoll, rng Roller) float64 {
	if r.IsFixed() {
		return r.Min
	}
	span := math.Floor(r.Max-r.Min) + 1
	return r.Min + math.Floor(rng.Float64()*span)
}

// Advance breaks a character through to the next level.
//
// Requires current Qi to reach the capacity of the current level (mortals
// need none). On success Qi is spent, the new state and rolls are stored
// on c. On error c is left untouched.
func Advance(ladder *data.RealmLadder, c *model.Character, rng Roller) ([]data.Bonus, error) {
	capacity, err := ladder.QiCapacity(c.Cultivation)
	if err != nil {
		return nil, err
	}
	if c.Vitals.Qi < capacity {
		return nil, fmt.Errorf("%w: %d/%d", ErrInsufficientQi, c.Vitals.Qi, capacity)
	}

	next, rolled, err := Breakthrough(ladder, c.Cultivation, rng)
	if err != nil {
		return nil, err
	}

	c.Cultivation = next
	c.Vitals.Qi = 0
	c.AddRolledBonuses(rolled)
	return rolled, nil
}
