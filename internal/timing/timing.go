// Package timing computes the human-like delays between simulated keystrokes.
//
// All draws go through an injected random source so a seeded run is fully
// reproducible. Nothing here sleeps; callers decide how to wait.
package timing

import (
	"math"
	"time"

	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/timeouts"
)

// Class groups characters that share a fixed trailing pause.
type Class int

const (
	ClassOther Class = iota
	ClassSentenceEnd
	ClassClause
	ClassSpace
	ClassNewline
	ClassParagraph
)

func (c Class) String() string {
	switch c {
	case ClassSentenceEnd:
		return "sentence-end"
	case ClassClause:
		return "clause"
	case ClassSpace:
		return "space"
	case ClassNewline:
		return "newline"
	case ClassParagraph:
		return "paragraph"
	default:
		return "other"
	}
}

// Classify returns the pause class of c given the previously typed rune.
// A newline directly after another newline is a paragraph break.
func Classify(c, prev rune) Class {
	switch c {
	case '.', '!', '?':
		return ClassSentenceEnd
	case ',', ';', ':':
		return ClassClause
	case ' ':
		return ClassSpace
	case '\n':
		if prev == '\n' {
			return ClassParagraph
		}
		return ClassNewline
	default:
		return ClassOther
	}
}

// Model composes keystroke delays from a Config.
type Model struct {
	cfg settings.Config
	rng random.Source
}

// NewModel creates a Model. cfg is copied.
func NewModel(cfg settings.Config, rng random.Source) *Model {
	return &Model{cfg: cfg, rng: rng}
}

// Keystroke returns the delay to wait after typing c.
func (m *Model) Keystroke(c, prev rune, inBurst bool) time.Duration {
	return msToDuration(m.keystrokeMs(c, prev, inBurst))
}

func (m *Model) keystrokeMs(c, prev rune, inBurst bool) float64 {
	delay := 60000.0 / m.cfg.BaseSpeedCPM
	delay = random.Jitter(m.rng, delay, m.cfg.SpeedVariation)

	if inBurst {
		delay /= m.cfg.BurstSpeedMultiplier
	}

	class := Classify(c, prev)
	delay += m.classPauseMs(class)

	if class == ClassSpace && m.cfg.WordSpeedVariation > 0 {
		delay = random.Jitter(m.rng, delay, m.cfg.WordSpeedVariation)
	}

	// Written so a NaN delay also falls back to the floor.
	floor := float64(timeouts.MinKeystrokeDelay) / float64(time.Millisecond)
	if !(delay >= floor) {
		delay = floor
	}
	return delay
}

func (m *Model) classPauseMs(class Class) float64 {
	switch class {
	case ClassSentenceEnd:
		return m.cfg.PauseAfterPeriod
	case ClassClause:
		return m.cfg.PauseAfterComma
	case ClassSpace:
		return m.cfg.PauseBetweenWords
	case ClassNewline:
		return m.cfg.PauseAfterNewline
	case ClassParagraph:
		return m.cfg.PauseAfterParagraph
	default:
		return 0
	}
}

// ThinkingPause decides whether to hesitate before the next character and
// for how long.
func (m *Model) ThinkingPause() (time.Duration, bool) {
	if !random.Chance(m.rng, m.cfg.ThinkingPauseChance) {
		return 0, false
	}

	ms := random.Between(m.rng, m.cfg.ThinkingPauseMinMs, m.cfg.ThinkingPauseMaxMs)
	return msToDuration(ms), true
}

// ShouldTypo decides whether c is mistyped. The draw is taken before the
// letter check so the random stream does not depend on the text.
func (m *Model) ShouldTypo(eligible bool) bool {
	if !m.cfg.MakeTypos {
		return false
	}
	return random.Chance(m.rng, m.cfg.TypoChance) && eligible
}

// NoticeDelay is how long a typo stays on screen before it is noticed.
func (m *Model) NoticeDelay() time.Duration {
	return msToDuration(random.Between(m.rng, m.cfg.TypoNoticeDelayMinMs, m.cfg.TypoNoticeDelayMaxMs))
}

// CorrectionPause is the short gap between backspacing and retyping.
func (m *Model) CorrectionPause() time.Duration {
	lo := float64(timeouts.CorrectionPauseMin) / float64(time.Millisecond)
	hi := float64(timeouts.CorrectionPauseMax) / float64(time.Millisecond)
	return msToDuration(random.Between(m.rng, lo, hi))
}

// msToDuration saturates instead of overflowing; NaN maps to zero.
func msToDuration(ms float64) time.Duration {
	ns := ms * float64(time.Millisecond)
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}
