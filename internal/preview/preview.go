// Package preview dry-runs the typing engine on a virtual clock and reports
// the keystroke schedule it would produce.
package preview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Norgate-AV/typesim/internal/clock"
	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/typer"
)

// EventKind classifies a recorded key event.
type EventKind string

const (
	KindKey       EventKind = "key"
	KindTypo      EventKind = "typo"
	KindBackspace EventKind = "backspace"
)

// Event is one simulated key event.
type Event struct {
	AtMs  float64   `yaml:"at_ms" json:"at_ms"`
	Index int       `yaml:"index" json:"index"`
	Kind  EventKind `yaml:"kind" json:"kind"`
	Char  string    `yaml:"char,omitempty" json:"char,omitempty"`
}

// Report summarizes a simulated run.
type Report struct {
	Preset       string  `yaml:"preset" json:"preset"`
	Seed         uint64  `yaml:"seed" json:"seed"`
	Characters   int     `yaml:"characters" json:"characters"`
	Keystrokes   int     `yaml:"keystrokes" json:"keystrokes"`
	Typos        int     `yaml:"typos" json:"typos"`
	Backspaces   int     `yaml:"backspaces" json:"backspaces"`
	DurationMs   float64 `yaml:"duration_ms" json:"duration_ms"`
	EffectiveCPM float64 `yaml:"effective_cpm" json:"effective_cpm"`
	Events       []Event `yaml:"events" json:"events"`
}

// Duration returns the simulated run length.
func (r *Report) Duration() time.Duration {
	return time.Duration(r.DurationMs * float64(time.Millisecond))
}

// Simulate types text with cfg against a virtual clock. The same seed always
// produces the same report.
func Simulate(ctx context.Context, text string, cfg settings.Config, seed uint64) (*Report, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid typing settings: %w", err)
	}

	vclock := clock.NewVirtual()
	rec := &recorder{clock: vclock}
	runes := []rune(typer.NormalizeText(text))

	eng := typer.NewEngine(runes, cfg, 0, typer.EngineDeps{
		Emitter:  rec,
		Sleeper:  vclock,
		Observer: rec,
		Rand:     random.New(seed),
	})

	if err := eng.Run(ctx); err != nil {
		return nil, fmt.Errorf("simulation interrupted: %w", err)
	}

	stats := eng.Stats()
	elapsed := vclock.Now()

	report := &Report{
		Preset:     cfg.Name,
		Seed:       seed,
		Characters: len(runes),
		Keystrokes: stats.Keystrokes,
		Typos:      stats.Typos,
		Backspaces: stats.Backspaces,
		DurationMs: durationMs(elapsed),
		Events:     rec.finish(),
	}

	if elapsed > 0 {
		report.EffectiveCPM = float64(stats.Keystrokes) / elapsed.Minutes()
	}

	return report, nil
}

// recorder captures emitter calls with virtual timestamps. The cursor comes
// from progress notifications, which precede every character.
type recorder struct {
	clock *clock.Virtual

	mu     sync.Mutex
	cursor int
	events []Event
}

func (r *recorder) Emit(c rune) error {
	r.add(Event{Kind: KindKey, Char: string(c)})
	return nil
}

func (r *recorder) Backspace() error {
	r.add(Event{Kind: KindBackspace})
	return nil
}

func (r *recorder) add(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev.AtMs = durationMs(r.clock.Now())
	ev.Index = r.cursor
	r.events = append(r.events, ev)
}

func (r *recorder) OnProgress(index int, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = index
}

func (r *recorder) OnStateChange(domain.TyperState) {}
func (r *recorder) OnMessage(string)                {}

// finish marks every character that was immediately erased as a typo.
func (r *recorder) finish() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i+1 < len(r.events); i++ {
		if r.events[i].Kind == KindKey && r.events[i+1].Kind == KindBackspace {
			r.events[i].Kind = KindTypo
		}
	}

	return r.events
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
