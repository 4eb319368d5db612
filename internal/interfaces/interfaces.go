// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import (
	"context"
	"time"

	"github.com/Norgate-AV/typesim/internal/domain"
)

// KeyEmitter injects keystrokes into the focused application
type KeyEmitter interface {
	Emit(r rune) error
	Backspace() error
}

// PermissionGate reports whether keystroke injection is currently allowed
type PermissionGate interface {
	IsGranted() bool
}

// ActivationSource produces activation signals while armed. Listen blocks,
// calling fire once per signal, until ctx is done.
type ActivationSource interface {
	Listen(ctx context.Context, fire func())
}

// ProgressObserver receives passive notifications. Implementations must not block.
type ProgressObserver interface {
	OnProgress(index int, fraction float64)
	OnStateChange(state domain.TyperState)
	OnMessage(msg string)
}

// Sleeper suspends the caller. Sleep returns ctx.Err() as soon as ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
