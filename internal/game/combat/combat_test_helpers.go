package combat

// SequenceRoller returns the given values in order, cycling when exhausted.
// Intended for tests that need to pin every draw of a resolution.
type SequenceRoller struct {
	vals []float64
	next int
	// Draws counts Float64 calls.
	Draws int
}

// NewSequenceRoller creates a roller cycling over vals.
func NewSequenceRoller(vals ...float64) *SequenceRoller {
	if len(vals) == 0 {
		vals = []float64{0}
	}
	return &SequenceRoller{vals: vals}
}

// Float64 returns the next value of the sequence.
func (s *SequenceRoller) Float64() float64 {
	v := s.vals[s.next]
	s.next = (s.next + 1) % len(s.vals)
	s.Draws++
	return v
}

// NoVariance returns DefaultBalance with the damage spread disabled.
func NoVariance() Balance {
	b := DefaultBalance()
	b.Variance = 0
	return b
}
