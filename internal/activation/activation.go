// Package activation provides the signal sources that arm a typing run.
package activation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Norgate-AV/typesim/internal/clock"
	"github.com/Norgate-AV/typesim/internal/interfaces"
	"github.com/Norgate-AV/typesim/internal/timeouts"
)

// Countdown fires one signal per interval while armed, printing the
// remaining count so the user has time to focus the target window.
type Countdown struct {
	Interval time.Duration
	Signals  int
	Out      io.Writer          // may be nil
	Sleeper  interfaces.Sleeper // defaults to clock.Real
}

// NewCountdown returns a Countdown using the standard signal count and interval.
func NewCountdown(out io.Writer) *Countdown {
	return &Countdown{
		Interval: timeouts.CountdownInterval,
		Signals:  timeouts.ActivationSignals,
		Out:      out,
		Sleeper:  clock.Real{},
	}
}

func (c *Countdown) Listen(ctx context.Context, fire func()) {
	sleeper := c.Sleeper
	if sleeper == nil {
		sleeper = clock.Real{}
	}

	for i := c.Signals; i > 0; i-- {
		c.printf("%d... ", i)

		if err := sleeper.Sleep(ctx, c.Interval); err != nil {
			c.printf("\n")
			return
		}

		if ctx.Err() != nil {
			return
		}

		fire()
	}

	c.printf("\n")
	<-ctx.Done()
}

func (c *Countdown) printf(format string, args ...any) {
	if c.Out == nil {
		return
	}

	if _, err := fmt.Fprintf(c.Out, format, args...); err != nil {
		// Ignore write errors to console
	}
}

// Lines fires one signal per line read from a reader, e.g. each press of
// Enter on stdin. Lines read before the current arming began are discarded.
// The reader is consumed by a single goroutine for the life of the process.
type Lines struct {
	r      io.Reader
	prompt io.Writer
	once   sync.Once
	lines  chan time.Time
}

// NewLines creates a Lines source. prompt, when non-nil, receives a hint each
// time the source is armed.
func NewLines(r io.Reader, prompt io.Writer) *Lines {
	return &Lines{
		r:      r,
		prompt: prompt,
		lines:  make(chan time.Time),
	}
}

func (l *Lines) Listen(ctx context.Context, fire func()) {
	armedAt := time.Now()
	l.once.Do(func() { go l.read() })

	if l.prompt != nil {
		if _, err := fmt.Fprintf(l.prompt, "Press Enter %d times to begin\n", timeouts.ActivationSignals); err != nil {
			// Ignore write errors to console
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case at, ok := <-l.lines:
			if !ok {
				<-ctx.Done()
				return
			}

			if at.Before(armedAt) || ctx.Err() != nil {
				continue
			}

			fire()
		}
	}
}

func (l *Lines) read() {
	defer close(l.lines)

	scanner := bufio.NewScanner(l.r)
	for scanner.Scan() {
		l.lines <- time.Now()
	}
}

// Manual forwards Fire calls to the current arming. Used by the TUI, where
// key presses arrive on the UI goroutine.
type Manual struct {
	mu    sync.Mutex
	fire  func()
	token uint64
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Listen(ctx context.Context, fire func()) {
	m.mu.Lock()
	m.token++
	token := m.token
	m.fire = fire
	m.mu.Unlock()

	<-ctx.Done()

	m.mu.Lock()
	if m.token == token {
		m.fire = nil
	}
	m.mu.Unlock()
}

// Fire delivers one signal and reports whether anything was armed.
func (m *Manual) Fire() bool {
	m.mu.Lock()
	fire := m.fire
	m.mu.Unlock()

	if fire == nil {
		return false
	}

	fire()
	return true
}

// Armed reports whether a Listen call is currently waiting for signals.
func (m *Manual) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fire != nil
}
