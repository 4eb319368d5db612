package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/testutil"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, text string, clk *testutil.FakeClock) *Model {
	t.Helper()

	noDelay := time.Duration(0)
	m := NewModel(Options{
		Text:       text,
		Config:     testutil.PlainConfig(),
		Sleeper:    clk,
		Rand:       testutil.FixedSource{Value: 0.5},
		StartDelay: &noDelay,
	})

	t.Cleanup(func() {
		clk.Release()
		m.ctrl.Stop()
	})

	return m
}

// arm presses enter and three activation signals, waiting for the manual
// source to be listening before each one.
func arm(t *testing.T, m *Model, start bool) {
	t.Helper()

	if start {
		m.Update(enterKey)
	}

	for i := 0; i < 3; i++ {
		require.Eventually(t, m.activation.Armed, 2*time.Second, time.Millisecond)
		m.Update(spaceKey)
	}
}

func TestModel_TypesIntoBuffer(t *testing.T) {
	m := newTestModel(t, "hello", testutil.NewFakeClock())

	arm(t, m, true)

	require.Eventually(t, func() bool {
		m.Update(tickMsg(time.Now()))
		return m.snap.State == domain.Idle && m.typed == "hello"
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, "Finished typing 5 characters", m.snap.Message)
	assert.Contains(t, m.View(), "hello")
}

func TestModel_SpaceWhileIdleDoesNothing(t *testing.T) {
	m := newTestModel(t, "abc", testutil.NewFakeClock())

	_, cmd := m.Update(spaceKey)

	assert.Nil(t, cmd)
	assert.Equal(t, domain.Idle, m.ctrl.State())
	assert.Empty(t, m.typed)
}

func TestModel_ShowsActivationCount(t *testing.T) {
	m := newTestModel(t, "abc", testutil.NewFakeClock())

	m.Update(enterKey)
	require.Eventually(t, m.activation.Armed, 2*time.Second, time.Millisecond)
	m.Update(spaceKey)

	assert.Equal(t, domain.AwaitingActivation(1), m.snap.State)
	assert.Contains(t, m.View(), "awaiting-activation 1/3")
	assert.Contains(t, m.View(), "Activation 1/3")
}

func TestModel_PauseResume(t *testing.T) {
	clk := testutil.NewFakeClock()
	clk.Hold()
	m := newTestModel(t, "hi", clk)

	arm(t, m, true)

	select {
	case <-clk.Held():
	case <-time.After(2 * time.Second):
		t.Fatal("run never reached its first delay")
	}

	m.Update(runeKey('p'))
	assert.Equal(t, domain.Paused, m.snap.State)
	assert.Equal(t, "h", m.typed)
	assert.Equal(t, 1, m.ctrl.Cursor())

	clk.Release()
	m.Update(runeKey('r'))
	assert.Equal(t, domain.AwaitingActivation(0), m.snap.State)

	arm(t, m, false)

	require.Eventually(t, func() bool {
		m.Update(tickMsg(time.Now()))
		return m.snap.State == domain.Idle && m.typed == "hi"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestModel_StopClearsOnRestart(t *testing.T) {
	m := newTestModel(t, "abc", testutil.NewFakeClock())

	arm(t, m, true)
	require.Eventually(t, func() bool {
		m.Update(tickMsg(time.Now()))
		return m.typed == "abc" && m.snap.State == domain.Idle
	}, 2*time.Second, 5*time.Millisecond)

	m.Update(enterKey)
	assert.Empty(t, m.typed, "a new run starts from an empty buffer")
	assert.Equal(t, domain.AwaitingActivation(0), m.snap.State)

	m.Update(runeKey('s'))
	assert.Equal(t, domain.Idle, m.snap.State)
	assert.Equal(t, "Stopped", m.snap.Message)
}

func TestModel_InvalidConfigShowsError(t *testing.T) {
	cfg := settings.Default()
	cfg.BaseSpeedCPM = 0

	m := NewModel(Options{Text: "abc", Config: cfg, Sleeper: testutil.NewFakeClock()})
	m.Update(enterKey)

	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, settings.ErrInvalidConfig)
	assert.Contains(t, m.View(), "Error:")
	assert.Equal(t, domain.Idle, m.ctrl.State())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, "abc", testutil.NewFakeClock())
	m.Update(enterKey)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, domain.Idle, m.ctrl.State())
	assert.Empty(t, m.View())

	_, next := m.Update(tickMsg(time.Now()))
	assert.Nil(t, next, "no more ticks once quitting")
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, "abc", testutil.NewFakeClock())

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	assert.Equal(t, 60, m.width)
	view := m.View()
	assert.Contains(t, view, "╭")
	assert.True(t, strings.HasSuffix(view, "q quit"))
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	var b Buffer
	for _, r := range "ab\rc" {
		require.NoError(t, b.Emit(r))
	}
	require.NoError(t, b.Backspace())
	assert.Equal(t, "ab", b.String())

	b.Reset()
	require.NoError(t, b.Backspace(), "backspace on empty buffer is harmless")
	assert.Empty(t, b.String())
}

func TestPresetOptions(t *testing.T) {
	t.Parallel()

	opts := presetOptions()
	require.Len(t, opts, len(settings.PresetNames()))

	assert.Equal(t, settings.PresetCasual, opts[0].Value)
	assert.Contains(t, opts[0].Key, "Casual Typist")
	assert.Contains(t, opts[0].Key, "180 cpm")
}
