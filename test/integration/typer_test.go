//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/typesim/internal/activation"
	"github.com/Norgate-AV/typesim/internal/clock"
	"github.com/Norgate-AV/typesim/internal/domain"
	"github.com/Norgate-AV/typesim/internal/preview"
	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/testutil"
	"github.com/Norgate-AV/typesim/internal/timeouts"
	"github.com/Norgate-AV/typesim/internal/typer"
)

const sentence = "Hello, world. Typing at speed!"

func fastConfig() settings.Config {
	cfg := settings.Fast()
	cfg.BaseSpeedCPM = 900
	cfg.ThinkingPauseMaxMs = 300
	cfg.ThinkingPauseMinMs = 100
	return cfg
}

func newController(emitter *testutil.MockKeyEmitter, source *activation.Manual, seed uint64) *typer.Controller {
	return typer.NewController(typer.ControllerDeps{
		Gate:       testutil.NewMockPermissionGate(),
		Emitter:    emitter,
		Sleeper:    clock.Real{},
		Rand:       random.New(seed),
		Activation: source,
	})
}

func fire(t *testing.T, source *activation.Manual, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		require.Eventually(t, source.Armed, 5*time.Second, time.Millisecond, "source never armed")
		source.Fire()
	}
}

// TestIntegration_RealTimingMatchesPreview types with the wall clock and
// checks the run lasts as long as the virtual-clock preview predicts.
func TestIntegration_RealTimingMatchesPreview(t *testing.T) {
	const seed = 2024
	cfg := fastConfig()

	report, err := preview.Simulate(context.Background(), sentence, cfg, seed)
	require.NoError(t, err)

	emitter := testutil.NewMockKeyEmitter()
	source := activation.NewManual()
	ctrl := newController(emitter, source, seed)
	defer ctrl.Stop()

	require.NoError(t, ctrl.Start(sentence, cfg))
	fire(t, source, timeouts.ActivationSignals)
	started := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, ctrl.Wait(ctx))
	elapsed := time.Since(started)

	assert.Equal(t, sentence, emitter.Typed())
	assert.Equal(t, report.Keystrokes+report.Typos, emitter.Count(testutil.EventChar))
	assert.Equal(t, report.Backspaces, emitter.Count(testutil.EventBackspace))

	expected := report.Duration() + timeouts.StartDelay
	assert.GreaterOrEqual(t, elapsed, expected-50*time.Millisecond, "run finished faster than its schedule")
	assert.Less(t, elapsed, expected+2*time.Second, "run took far longer than its schedule")
}

// TestIntegration_PauseResume pauses a real-time run midway and resumes it.
func TestIntegration_PauseResume(t *testing.T) {
	cfg := fastConfig()
	cfg.MakeTypos = false

	emitter := testutil.NewMockKeyEmitter()
	source := activation.NewManual()
	ctrl := newController(emitter, source, 7)
	defer ctrl.Stop()

	require.NoError(t, ctrl.Start(sentence, cfg))
	fire(t, source, timeouts.ActivationSignals)

	require.Eventually(t, func() bool {
		return emitter.Count(testutil.EventChar) >= 5
	}, 10*time.Second, 5*time.Millisecond)

	ctrl.Pause()
	assert.Equal(t, domain.Paused, ctrl.State())

	cursor := ctrl.Cursor()
	assert.GreaterOrEqual(t, cursor, 5)
	assert.Equal(t, sentence[:cursor], emitter.Typed())

	// Nothing more is typed while paused.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, cursor, len(emitter.Typed()))

	ctrl.Resume()
	fire(t, source, timeouts.ActivationSignals)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, ctrl.Wait(ctx))

	assert.Equal(t, sentence, emitter.Typed())
	assert.Equal(t, domain.Idle, ctrl.State())
}

// TestIntegration_CountdownArmsRun uses the countdown source with its real
// one-second interval.
func TestIntegration_CountdownArmsRun(t *testing.T) {
	cfg := fastConfig()
	emitter := testutil.NewMockKeyEmitter()

	ctrl := typer.NewController(typer.ControllerDeps{
		Gate:       testutil.NewMockPermissionGate(),
		Emitter:    emitter,
		Activation: activation.NewCountdown(nil),
	})
	defer ctrl.Stop()

	started := time.Now()
	require.NoError(t, ctrl.Start("ok", cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, ctrl.Wait(ctx))

	assert.Equal(t, "ok", emitter.Typed())
	assert.GreaterOrEqual(t, time.Since(started),
		time.Duration(timeouts.ActivationSignals)*timeouts.CountdownInterval+timeouts.StartDelay)
}
