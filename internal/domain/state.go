// Package domain holds the value types shared across the typing packages.
package domain

import "fmt"

// Phase is the coarse lifecycle position of a typer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingActivation
	PhaseTyping
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingActivation:
		return "awaiting-activation"
	case PhaseTyping:
		return "typing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// TyperState is the observable lifecycle state. Signals is only meaningful
// while awaiting activation.
type TyperState struct {
	Phase   Phase
	Signals int
}

// Idle, Typing and Paused are the states without a payload.
var (
	Idle   = TyperState{Phase: PhaseIdle}
	Typing = TyperState{Phase: PhaseTyping}
	Paused = TyperState{Phase: PhasePaused}
)

// AwaitingActivation is the armed state after n activation signals.
func AwaitingActivation(n int) TyperState {
	return TyperState{Phase: PhaseAwaitingActivation, Signals: n}
}

// IsActive reports whether a run exists or is being armed.
func (s TyperState) IsActive() bool {
	return s.Phase != PhaseIdle
}

func (s TyperState) String() string {
	if s.Phase == PhaseAwaitingActivation {
		return fmt.Sprintf("%s(%d)", s.Phase, s.Signals)
	}
	return s.Phase.String()
}
