// Package timeouts defines timing constants shared by the typing engine and CLI.
package timeouts

import "time"

const (
	// Keystroke Timing

	// MinKeystrokeDelay is the floor applied to every computed inter-keystroke
	// delay. Faster input is unrealistic and can be dropped by target apps.
	MinKeystrokeDelay = 20 * time.Millisecond

	// CorrectionPauseMin and CorrectionPauseMax bound the pause between
	// backspacing over a typo and typing the intended character.
	CorrectionPauseMin = 50 * time.Millisecond
	CorrectionPauseMax = 150 * time.Millisecond

	// Lifecycle

	// StartDelay is waited after the final activation signal so the click or
	// key press that armed the run is not interleaved with the first keystroke.
	StartDelay = 400 * time.Millisecond

	// PausePollInterval is how often a held run re-checks its pause flag.
	// It also bounds how long stop or pause may take to be observed.
	PausePollInterval = 100 * time.Millisecond

	// ActivationSignals is the number of activation signals needed to start
	// or resume typing.
	ActivationSignals = 3

	// CLI

	// CountdownInterval is the gap between countdown activation signals.
	CountdownInterval = 1 * time.Second

	// ProgressRedrawInterval throttles console progress redraws.
	ProgressRedrawInterval = 100 * time.Millisecond

	// ShutdownTimeout bounds how long the CLI waits for a stopped run to unwind.
	ShutdownTimeout = 2 * time.Second
)
