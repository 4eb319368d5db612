package tui

import (
	"sync"

	"github.com/Norgate-AV/typesim/internal/domain"
)

// Buffer is a KeyEmitter that types into memory so a run can be watched
// without touching any other application.
type Buffer struct {
	mu    sync.Mutex
	runes []rune
}

func (b *Buffer) Emit(r rune) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Carriage returns are dropped by the real emitters too.
	if r == '\r' {
		return nil
	}

	b.runes = append(b.runes, r)
	return nil
}

func (b *Buffer) Backspace() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.runes); n > 0 {
		b.runes = b.runes[:n-1]
	}

	return nil
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runes = b.runes[:0]
}

// String returns the text typed so far.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.runes)
}

// allowAll grants keystroke injection unconditionally; the buffer needs no
// permission.
type allowAll struct{}

func (allowAll) IsGranted() bool { return true }

// status collects observer notifications for the next redraw.
type status struct {
	mu       sync.Mutex
	state    domain.TyperState
	index    int
	fraction float64
	message  string
}

type statusSnapshot struct {
	State    domain.TyperState
	Index    int
	Fraction float64
	Message  string
}

func (s *status) OnProgress(index int, fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index, s.fraction = index, fraction
}

func (s *status) OnStateChange(state domain.TyperState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *status) OnMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

func (s *status) snapshot() statusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return statusSnapshot{State: s.state, Index: s.index, Fraction: s.fraction, Message: s.message}
}
