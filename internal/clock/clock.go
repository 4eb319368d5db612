// Package clock provides the suspension points used by the typing engine.
package clock

import (
	"context"
	"sync"
	"time"
)

// Real sleeps on the wall clock and wakes early when ctx is done.
type Real struct{}

// Sleep waits for d or until ctx is done, whichever comes first.
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Virtual never blocks; it advances an internal clock by each requested
// duration. Used for dry runs where only the schedule matters.
type Virtual struct {
	mu      sync.Mutex
	elapsed time.Duration
	sleeps  int
}

// NewVirtual returns a Virtual clock at zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Sleep advances the clock by d unless ctx is already done.
func (v *Virtual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if d > 0 {
		v.elapsed += d
	}
	v.sleeps++

	return nil
}

// Now returns the virtual time elapsed since creation.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.elapsed
}

// Sleeps returns how many times Sleep advanced the clock.
func (v *Virtual) Sleeps() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sleeps
}
