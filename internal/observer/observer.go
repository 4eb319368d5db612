// Package observer provides ProgressObserver implementations for the CLI.
package observer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/interfaces"
	"github.com/Norgate-AV/typesim/internal/logger"
	"github.com/Norgate-AV/typesim/internal/timeouts"
)

const barWidth = 30

// Console reports messages through the logger and keeps a single progress
// line redrawn in place on out.
type Console struct {
	log logger.LoggerInterface
	out io.Writer
	now func() time.Time

	mu       sync.Mutex
	lastDraw time.Time
	drawn    bool
	bar      *color.Color
}

// NewConsole creates a Console. out may be nil to disable the progress line.
func NewConsole(log logger.LoggerInterface, out io.Writer) *Console {
	return &Console{
		log: log,
		out: out,
		now: time.Now,
		bar: color.New(color.FgGreen),
	}
}

func (c *Console) OnProgress(index int, fraction float64) {
	if c.out == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	final := fraction <= 0 || fraction >= 1
	if !final && now.Sub(c.lastDraw) < timeouts.ProgressRedrawInterval {
		return
	}

	c.lastDraw = now
	c.drawn = true

	filled := min(barWidth, max(0, int(fraction*barWidth)))
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	if _, err := c.bar.Fprintf(c.out, "\r[%s] %3.0f%% (%d)", bar, fraction*100, index); err != nil {
		// Ignore write errors to console
	}
}

func (c *Console) OnStateChange(state domain.TyperState) {
	c.log.Debug("Typer state changed", slog.String("state", state.String()))
}

func (c *Console) OnMessage(msg string) {
	c.endLine()
	c.log.Info(msg)
}

// endLine terminates a progress line so log output starts on a fresh line.
func (c *Console) endLine() {
	if c.out == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.drawn {
		return
	}

	c.drawn = false
	if _, err := fmt.Fprintln(c.out); err != nil {
		// Ignore write errors to console
	}
}

// Multi fans notifications out to several observers in order.
type Multi []interfaces.ProgressObserver

func (m Multi) OnProgress(index int, fraction float64) {
	for _, o := range m {
		o.OnProgress(index, fraction)
	}
}

func (m Multi) OnStateChange(state domain.TyperState) {
	for _, o := range m {
		o.OnStateChange(state)
	}
}

func (m Multi) OnMessage(msg string) {
	for _, o := range m {
		o.OnMessage(msg)
	}
}
