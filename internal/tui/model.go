// Package tui is an interactive rehearsal of a typing run: a real controller
// types into an on-screen buffer so presets can be tried safely.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Norgate-AV/typesim/internal/activation"
	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/interfaces"
	"github.com/Norgate-AV/typesim/internal/logger"
	"github.com/Norgate-AV/typesim/internal/observer"
	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/timeouts"
	"github.com/Norgate-AV/typesim/internal/typer"
)

const (
	refreshInterval = 50 * time.Millisecond
	barWidth        = 40
)

// Options configures a rehearsal.
type Options struct {
	Text   string
	Config settings.Config
	Logger logger.LoggerInterface

	// Optional overrides, mostly for tests.
	Sleeper    interfaces.Sleeper
	Rand       random.Source
	StartDelay *time.Duration
}

// Model is the Bubble Tea model of the rehearsal screen.
type Model struct {
	text   string
	cfg    settings.Config
	log    logger.LoggerInterface
	styles Styles

	ctrl       *typer.Controller
	buffer     *Buffer
	activation *activation.Manual
	status     *status

	snap     statusSnapshot
	typed    string
	err      error
	width    int
	quitting bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// NewModel creates an idle rehearsal over opts.Text.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}

	m := &Model{
		text:       opts.Text,
		cfg:        opts.Config,
		log:        opts.Logger,
		styles:     DefaultStyles,
		buffer:     &Buffer{},
		activation: activation.NewManual(),
		status:     &status{state: domain.Idle},
	}

	m.ctrl = typer.NewController(typer.ControllerDeps{
		Gate:       allowAll{},
		Emitter:    m.buffer,
		Observer:   observer.Multi{m.status, logObserver{log: opts.Logger}},
		Sleeper:    opts.Sleeper,
		Logger:     opts.Logger,
		Rand:       opts.Rand,
		Activation: m.activation,
		StartDelay: opts.StartDelay,
	})

	m.refresh()
	return m
}

// Controller exposes the controller driving the buffer.
func (m *Model) Controller() *typer.Controller {
	return m.ctrl
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		if m.quitting {
			return m, nil
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.refresh()
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Stop()
		m.quitting = true
		return tea.Quit

	case "enter":
		if m.ctrl.State().IsActive() {
			return nil
		}

		m.buffer.Reset()
		m.err = m.ctrl.Start(m.text, m.cfg)
		if m.err != nil {
			m.log.Error("Could not start rehearsal", slog.Any("error", m.err))
		}

	case " ":
		if !m.activation.Fire() {
			m.log.Debug("Activation ignored, nothing armed")
		}

	case "p":
		m.ctrl.Pause()

	case "r":
		m.ctrl.Resume()

	case "s":
		m.ctrl.Stop()
	}

	return nil
}

func (m *Model) refresh() {
	m.snap = m.status.snapshot()
	m.typed = m.buffer.String()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("typesim rehearsal") + "  " + s.Label.Render(m.cfg.Name) + "\n\n")

	phase := m.snap.State.Phase.String()
	stateText := phase
	if m.snap.State.Phase == domain.PhaseAwaitingActivation {
		stateText = fmt.Sprintf("%s %d/%d", phase, m.snap.State.Signals, timeouts.ActivationSignals)
	}
	b.WriteString(s.Label.Render("State:    ") + s.Phase[phase].Render(stateText) + "\n")

	total := len([]rune(m.text))
	b.WriteString(s.Label.Render("Progress: ") + m.bar(m.snap.Fraction) +
		s.Value.Render(fmt.Sprintf(" %3.0f%% (%d/%d)", m.snap.Fraction*100, m.snap.Index, total)) + "\n")

	if m.snap.Message != "" {
		b.WriteString(s.Label.Render("Status:   ") + s.Message.Render(m.snap.Message) + "\n")
	}

	if m.err != nil {
		b.WriteString(s.Error.Render("Error: "+m.err.Error()) + "\n")
	}

	box := s.Buffer
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(m.typed+s.Cursor.Render(" ")) + "\n")

	b.WriteString(s.Help.Render("enter start • space activate • p pause • r resume • s stop • q quit"))

	return b.String()
}

func (m *Model) bar(fraction float64) string {
	filled := int(fraction * barWidth)
	filled = max(0, min(filled, barWidth))

	return m.styles.BarFull.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

// logObserver records lifecycle notifications in the log file only; the
// console belongs to the TUI.
type logObserver struct {
	log logger.LoggerInterface
}

func (o logObserver) OnProgress(int, float64) {}

func (o logObserver) OnStateChange(state domain.TyperState) {
	o.log.Trace("State changed", slog.String("state", state.String()))
}

func (o logObserver) OnMessage(msg string) {
	o.log.Trace("Rehearsal message", slog.String("message", msg))
}
