package timing

import "github.com/Norgate-AV/typesim/internal/random"

// Burst tracks how many characters of the current speed burst remain.
// It is a value so callers can commit it only once a character is typed.
type Burst struct {
	Remaining int
}

// Active reports whether characters remain in the burst.
func (b Burst) Active() bool {
	return b.Remaining > 0
}

// Advance consumes one character. Outside a burst it may start a new one;
// the character that starts a burst is typed at burst speed.
func (m *Model) Advance(b Burst) (Burst, bool) {
	if b.Remaining == 0 && m.cfg.BurstEnabled && random.Chance(m.rng, m.cfg.BurstChance) {
		b.Remaining = m.BurstLength()
	}

	if b.Remaining == 0 {
		return b, false
	}

	b.Remaining--
	return b, true
}

// BurstLength draws a burst length in [BurstLengthMin, BurstLengthMax].
func (m *Model) BurstLength() int {
	return random.IntBetween(m.rng, m.cfg.BurstLengthMin, m.cfg.BurstLengthMax)
}
