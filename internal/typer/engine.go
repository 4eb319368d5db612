// Package typer walks a text rune by rune, emitting human-like keystrokes,
// and manages the activation, pause and resume lifecycle around that walk.
package typer

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/interfaces"
	"github.com/Norgate-AV/typesim/internal/logger"
	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/timeouts"
	"github.com/Norgate-AV/typesim/internal/timing"
	"github.com/Norgate-AV/typesim/internal/typo"
)

// EngineDeps holds the collaborators of an Engine. Observer, Logger and Rand
// are optional.
type EngineDeps struct {
	Emitter  interfaces.KeyEmitter
	Sleeper  interfaces.Sleeper
	Observer interfaces.ProgressObserver
	Logger   logger.LoggerInterface
	Rand     random.Source

	// StartDelay is waited once before the first keystroke.
	StartDelay time.Duration
}

// Stats counts the key events an Engine produced.
type Stats struct {
	Keystrokes int // real characters typed
	Typos      int // wrong characters typed
	Backspaces int // corrections
}

// Engine types one text starting at a given cursor. An Engine is used for a
// single run; the cursor it stops at is where the next run resumes.
type Engine struct {
	text    []rune
	delays  *timing.Model
	typos   *typo.Model
	emitter interfaces.KeyEmitter
	sleeper interfaces.Sleeper
	obs     interfaces.ProgressObserver
	log     logger.LoggerInterface
	start   time.Duration

	cursor int
	burst  timing.Burst
	prev   rune
	stats  Stats
	paused atomic.Bool
}

// NewEngine prepares a run over text beginning at cursor start.
func NewEngine(text []rune, cfg settings.Config, start int, deps EngineDeps) *Engine {
	rng := deps.Rand
	if rng == nil {
		rng = random.NewFromTime()
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	obs := deps.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	start = max(0, min(start, len(text)))

	e := &Engine{
		text:    text,
		delays:  timing.NewModel(cfg, rng),
		typos:   typo.NewModel(rng),
		emitter: deps.Emitter,
		sleeper: deps.Sleeper,
		obs:     obs,
		log:     log,
		start:   deps.StartDelay,
		cursor:  start,
	}

	if start > 0 {
		e.prev = text[start-1]
	}

	return e
}

// Cursor returns the index of the next rune to type. Only meaningful once Run
// has returned.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Stats returns the event counts so far. Only meaningful once Run has returned.
func (e *Engine) Stats() Stats {
	return e.stats
}

// SetPaused holds the walk at the next character boundary until cleared.
// A pending delay still runs out first; Controller.Pause also cancels the run.
func (e *Engine) SetPaused(paused bool) {
	e.paused.Store(paused)
}

// Run types from the cursor to the end of the text. It returns nil on
// completion, ctx.Err() when cancelled, or an *EmissionError.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Trace("Engine run starting",
		slog.Int("cursor", e.cursor),
		slog.Int("length", len(e.text)),
	)

	if e.start > 0 {
		if err := e.sleeper.Sleep(ctx, e.start); err != nil {
			return err
		}
	}

	for e.cursor < len(e.text) {
		if err := ctx.Err(); err != nil {
			return err
		}

		for e.paused.Load() {
			if err := e.sleeper.Sleep(ctx, timeouts.PausePollInterval); err != nil {
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		e.obs.OnProgress(e.cursor, float64(e.cursor)/float64(len(e.text)))

		if err := e.step(ctx); err != nil {
			return err
		}
	}

	e.obs.OnProgress(len(e.text), 1.0)
	return nil
}

// step types the rune at the cursor. The cursor, burst and previous rune are
// committed right after the real emission so a cancelled delay loses nothing.
func (e *Engine) step(ctx context.Context) error {
	c := e.text[e.cursor]

	if d, ok := e.delays.ThinkingPause(); ok {
		e.log.Trace("Thinking pause", slog.Int("cursor", e.cursor), slog.Duration("delay", d))
		if err := e.sleeper.Sleep(ctx, d); err != nil {
			return err
		}
	}

	burst, inBurst := e.delays.Advance(e.burst)

	if e.delays.ShouldTypo(typo.Eligible(c)) {
		if err := e.mistype(ctx, c); err != nil {
			return err
		}
	}

	if err := e.emitter.Emit(c); err != nil {
		return &EmissionError{Index: e.cursor, Char: c, Err: err}
	}

	prev := e.prev
	e.stats.Keystrokes++
	e.burst = burst
	e.prev = c
	e.cursor++

	return e.sleeper.Sleep(ctx, e.delays.Keystroke(c, prev, inBurst))
}

// mistype emits a neighbouring key, waits until the mistake is noticed and
// erases it. The backspace is sent even if ctx ends during the notice delay.
func (e *Engine) mistype(ctx context.Context, c rune) error {
	wrong := e.typos.CharacterFor(c)

	if err := e.emitter.Emit(wrong); err != nil {
		return &EmissionError{Index: e.cursor, Char: wrong, Err: err}
	}

	e.stats.Typos++
	e.log.Trace("Typo", slog.Int("cursor", e.cursor), slog.String("want", string(c)), slog.String("got", string(wrong)))

	waitErr := e.sleeper.Sleep(ctx, e.delays.NoticeDelay())

	if err := e.emitter.Backspace(); err != nil {
		return &EmissionError{Index: e.cursor, Char: wrong, Backspace: true, Err: err}
	}

	e.stats.Backspaces++

	if waitErr != nil {
		return waitErr
	}

	return e.sleeper.Sleep(ctx, e.delays.CorrectionPause())
}

type nopObserver struct{}

func (nopObserver) OnProgress(int, float64)         {}
func (nopObserver) OnStateChange(domain.TyperState) {}
func (nopObserver) OnMessage(string)                {}
