package typer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/testutil"
	"github.com/Norgate-AV/typesim/internal/timeouts"
	"github.com/Norgate-AV/typesim/internal/typer"
	"github.com/Norgate-AV/typesim/internal/typo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type engineFixture struct {
	emitter  *testutil.MockKeyEmitter
	clock    *testutil.FakeClock
	observer *testutil.MockObserver
}

func newEngine(text string, cfg settings.Config, start int) (*typer.Engine, engineFixture) {
	f := engineFixture{
		emitter:  testutil.NewMockKeyEmitter(),
		clock:    testutil.NewFakeClock(),
		observer: testutil.NewMockObserver(),
	}

	eng := typer.NewEngine([]rune(text), cfg, start, typer.EngineDeps{
		Emitter:  f.emitter,
		Sleeper:  f.clock,
		Observer: f.observer,
		Rand:     testutil.FixedSource{Value: 0.5},
	})

	return eng, f
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestEngine_TypesPlainText(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("Hi.", testutil.PlainConfig(), 0)

	require.NoError(t, eng.Run(context.Background()))

	want := []testutil.KeyEvent{testutil.Char('H'), testutil.Char('i'), testutil.Char('.')}
	if diff := cmp.Diff(want, f.emitter.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	assert.Zero(t, f.emitter.Count(testutil.EventBackspace))
	assert.Equal(t, 3, eng.Cursor())

	// 300 CPM is 200ms per key; the period adds PauseAfterPeriod.
	assert.Equal(t, []time.Duration{ms(200), ms(200), ms(300)}, f.clock.Sleeps())

	last, ok := f.observer.LastProgress()
	require.True(t, ok)
	assert.Equal(t, testutil.ProgressCall{Index: 3, Fraction: 1.0}, last)
}

func TestEngine_ReportsProgressBeforeEachCharacter(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("abcd", testutil.PlainConfig(), 0)
	require.NoError(t, eng.Run(context.Background()))

	want := []testutil.ProgressCall{
		{Index: 0, Fraction: 0},
		{Index: 1, Fraction: 0.25},
		{Index: 2, Fraction: 0.5},
		{Index: 3, Fraction: 0.75},
		{Index: 4, Fraction: 1.0},
	}
	assert.Equal(t, want, f.observer.Progress())
}

func TestEngine_TypoThenCorrection(t *testing.T) {
	t.Parallel()

	cfg := testutil.PlainConfig()
	cfg.MakeTypos = true
	cfg.TypoChance = 100

	eng, f := newEngine("ab", cfg, 0)
	require.NoError(t, eng.Run(context.Background()))

	pick := func(r rune) rune {
		keys := typo.AdjacentKeys(r)
		return keys[testutil.FixedSource{Value: 0.5}.IntN(len(keys))]
	}

	want := []testutil.KeyEvent{
		testutil.Char(pick('a')), testutil.Backspace(), testutil.Char('a'),
		testutil.Char(pick('b')), testutil.Backspace(), testutil.Char('b'),
	}
	if diff := cmp.Diff(want, f.emitter.Events()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "ab", f.emitter.Typed())
	assert.Equal(t, 4, f.emitter.Count(testutil.EventChar))
	assert.Equal(t, 2, f.emitter.Count(testutil.EventBackspace))

	// notice delay (midpoint of 100-500), correction pause (midpoint of 50-150), keystroke
	wantSleeps := []time.Duration{ms(300), ms(100), ms(200), ms(300), ms(100), ms(200)}
	assert.Equal(t, wantSleeps, f.clock.Sleeps())

	assert.Equal(t, typer.Stats{Keystrokes: 2, Typos: 2, Backspaces: 2}, eng.Stats())
}

func TestEngine_TyposSkipNonLetters(t *testing.T) {
	t.Parallel()

	cfg := testutil.PlainConfig()
	cfg.MakeTypos = true
	cfg.TypoChance = 100

	eng, f := newEngine("1 ,", cfg, 0)
	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, "1 ,", f.emitter.Chars())
	assert.Zero(t, f.emitter.Count(testutil.EventBackspace))
}

func TestEngine_ParagraphPause(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("a\n\nb", testutil.PlainConfig(), 0)
	require.NoError(t, eng.Run(context.Background()))

	// The second newline follows a newline, so it takes PauseAfterParagraph.
	want := []time.Duration{ms(200), ms(300), ms(1200), ms(200)}
	assert.Equal(t, want, f.clock.Sleeps())
}

func TestEngine_ResumeRestoresPreviousRune(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("a\n\nb", testutil.PlainConfig(), 2)
	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, "\nb", f.emitter.Chars())
	assert.Equal(t, []time.Duration{ms(1200), ms(200)}, f.clock.Sleeps())
	assert.Equal(t, 4, eng.Cursor())
}

func TestEngine_StartDelay(t *testing.T) {
	t.Parallel()

	f := engineFixture{emitter: testutil.NewMockKeyEmitter(), clock: testutil.NewFakeClock()}
	eng := typer.NewEngine([]rune("x"), testutil.PlainConfig(), 0, typer.EngineDeps{
		Emitter:    f.emitter,
		Sleeper:    f.clock,
		Rand:       testutil.FixedSource{Value: 0.5},
		StartDelay: timeouts.StartDelay,
	})

	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, []time.Duration{timeouts.StartDelay, ms(200)}, f.clock.Sleeps())
}

func TestEngine_CursorClamped(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("abc", testutil.PlainConfig(), 10)
	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, 3, eng.Cursor())
	assert.Empty(t, f.emitter.Events())
}

func TestEngine_CancelDuringDelayKeepsCommittedCursor(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("hello", testutil.PlainConfig(), 0)
	f.emitter.WithHook(func(n int, _ testutil.KeyEvent) {
		if n == 2 {
			f.clock.Hold()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- eng.Run(ctx) }()

	waitHeld(t, f.clock)
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, 2, eng.Cursor())
	assert.Equal(t, "he", f.emitter.Typed())
}

func TestEngine_CancelDuringNoticeStillErasesTypo(t *testing.T) {
	t.Parallel()

	cfg := testutil.PlainConfig()
	cfg.MakeTypos = true
	cfg.TypoChance = 100

	eng, f := newEngine("a", cfg, 0)
	f.emitter.WithHook(func(n int, _ testutil.KeyEvent) {
		if n == 1 {
			f.clock.Hold()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- eng.Run(ctx) }()

	waitHeld(t, f.clock)
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, 0, eng.Cursor(), "The real character was never typed")
	assert.Equal(t, 1, f.emitter.Count(testutil.EventBackspace))
	assert.Empty(t, f.emitter.Typed())
}

// releasingSleeper runs fn once after the nth sleep.
type releasingSleeper struct {
	*testutil.FakeClock
	after int
	fn    func()
	n     int
}

func (s *releasingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	err := s.FakeClock.Sleep(ctx, d)
	s.n++
	if s.n == s.after {
		s.fn()
	}
	return err
}

func TestEngine_PauseFlagHoldsWalk(t *testing.T) {
	t.Parallel()

	emitter := testutil.NewMockKeyEmitter()
	clk := testutil.NewFakeClock()
	sleeper := &releasingSleeper{FakeClock: clk, after: 3}

	eng := typer.NewEngine([]rune("ab"), testutil.PlainConfig(), 0, typer.EngineDeps{
		Emitter: emitter,
		Sleeper: sleeper,
		Rand:    testutil.FixedSource{Value: 0.5},
	})

	sleeper.fn = func() {
		assert.Empty(t, emitter.Events(), "Nothing is typed while paused")
		eng.SetPaused(false)
	}

	eng.SetPaused(true)
	require.NoError(t, eng.Run(context.Background()))

	assert.Equal(t, "ab", emitter.Typed())

	poll := timeouts.PausePollInterval
	assert.Equal(t, []time.Duration{poll, poll, poll, ms(200), ms(200)}, clk.Sleeps())
}

func TestEngine_EmissionFailure(t *testing.T) {
	t.Parallel()

	eng, f := newEngine("abc", testutil.PlainConfig(), 0)
	f.emitter.WithFailAt(2)

	err := eng.Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, typer.ErrEmissionFailed)
	assert.ErrorIs(t, err, testutil.ErrMockEmit)

	var emitErr *typer.EmissionError
	require.True(t, errors.As(err, &emitErr))
	assert.Equal(t, 1, emitErr.Index)
	assert.Equal(t, 'b', emitErr.Char)
	assert.False(t, emitErr.Backspace)

	assert.Equal(t, 1, eng.Cursor())
}

func TestEngine_BackspaceFailure(t *testing.T) {
	t.Parallel()

	cfg := testutil.PlainConfig()
	cfg.MakeTypos = true
	cfg.TypoChance = 100

	eng, f := newEngine("a", cfg, 0)
	f.emitter.WithFailAt(2)

	err := eng.Run(context.Background())

	var emitErr *typer.EmissionError
	require.True(t, errors.As(err, &emitErr))
	assert.True(t, emitErr.Backspace)
	assert.Contains(t, emitErr.Error(), "sending backspace at character 0")
	assert.Equal(t, 0, eng.Cursor())
}

func TestEngine_SeededRunsRepeat(t *testing.T) {
	t.Parallel()

	text := "The quick brown fox jumps over the lazy dog.\n\nAgain, faster!"

	run := func() ([]testutil.KeyEvent, []time.Duration) {
		emitter := testutil.NewMockKeyEmitter()
		clk := testutil.NewFakeClock()
		cfg := settings.Beginner()

		eng := typer.NewEngine([]rune(text), cfg, 0, typer.EngineDeps{
			Emitter: emitter,
			Sleeper: clk,
			Rand:    random.New(42),
		})
		require.NoError(t, eng.Run(context.Background()))

		assert.Equal(t, text, emitter.Typed(), "Typos are always corrected")
		return emitter.Events(), clk.Sleeps()
	}

	events1, sleeps1 := run()
	events2, sleeps2 := run()

	assert.Equal(t, events1, events2)
	assert.Equal(t, sleeps1, sleeps2)

	for _, d := range sleeps1 {
		assert.GreaterOrEqual(t, d, timeouts.MinKeystrokeDelay)
	}
}

func waitHeld(t *testing.T, clk *testutil.FakeClock) {
	t.Helper()

	select {
	case <-clk.Held():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the run to block")
	}
}
