package stats

import (
	"fmt"

	"github.com/udisondev/powerengine/internal/data"
	"github.com/udisondev/powerengine/internal/model"
)

// sheet is the working copy of attributes and combat stats during aggregation.
type sheet struct {
	attrs model.Attributes
	stats model.CombatStats
}

func (s *sheet) get(st data.Stat) float64 {
	if st.IsAttribute() {
		return s.attrs.Get(st)
	}
	return s.stats.Get(st)
}

func (s *sheet) set(st data.Stat, v float64) {
	if st.IsAttribute() {
		s.attrs.Set(st, v)
		return
	}
	s.stats.Set(st, v)
}

func (s *sheet) add(st data.Stat, v float64) {
	s.set(st, s.get(st)+v)
}

// bonusLayer accumulates one bonus source.
// ADDITIVE bonuses go straight into the sheet; MULTIPLIER magnitudes are
// summed per target and applied once in finish, to the value the target has
// at that point. Layers never compound with each other's multipliers.
type bonusLayer struct {
	name  string
	sheet *sheet
	mul   map[data.Stat]float64
	diags *[]data.Diagnostic
}

func newLayer(name string, sh *sheet, diags *[]data.Diagnostic) *bonusLayer {
	return &bonusLayer{name: name, sheet: sh, mul: make(map[data.Stat]float64), diags: diags}
}

// apply folds b into the layer. Unresolvable targets are reported and skipped.
func (l *bonusLayer) apply(source string, b data.Bonus) {
	target, err := data.ParseStat(string(b.Target))
	if err != nil {
		l.report(source, string(b.Target), err.Error())
		return
	}
	if target == data.StatMaxQi {
		l.report(source, string(b.Target), "max_qi is derived from the realm ladder only")
		return
	}

	switch b.Mode {
	case data.BonusAdditive:
		l.sheet.add(target, b.Magnitude)
	case data.BonusMultiplier:
		l.mul[target] += b.Magnitude
	default:
		l.report(source, string(b.Target), fmt.Sprintf("unknown bonus mode %s", b.Mode))
	}
}

// finish applies the layer's multiplier totals in canonical stat order.
func (l *bonusLayer) finish() {
	for _, group := range [][]data.Stat{data.AttributeStats, data.CombatStatNames} {
		for _, st := range group {
			if m, ok := l.mul[st]; ok {
				l.sheet.set(st, l.sheet.get(st)*(1+m))
			}
		}
	}
}

func (l *bonusLayer) report(source, subject, msg string) {
	*l.diags = append(*l.diags, data.Diagnostic{
		Source:  source,
		Subject: subject,
		Message: l.name + ": " + msg,
	})
}
