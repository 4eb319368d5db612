package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Norgate-AV/typesim/internal/domain"
)

// ProgressCall is one OnProgress notification
type ProgressCall struct {
	Index    int
	Fraction float64
}

// MockObserver implements interfaces.ProgressObserver and records every call
type MockObserver struct {
	mu       sync.Mutex
	states   []domain.TyperState
	messages []string
	progress []ProgressCall
}

func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) OnProgress(index int, fraction float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = append(m.progress, ProgressCall{Index: index, Fraction: fraction})
}

func (m *MockObserver) OnStateChange(state domain.TyperState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, state)
}

func (m *MockObserver) OnMessage(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *MockObserver) States() []domain.TyperState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TyperState(nil), m.states...)
}

func (m *MockObserver) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *MockObserver) Progress() []ProgressCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProgressCall(nil), m.progress...)
}

// LastProgress returns the most recent progress call, if any
func (m *MockObserver) LastProgress() (ProgressCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.progress) == 0 {
		return ProgressCall{}, false
	}

	return m.progress[len(m.progress)-1], true
}

// FakeClock implements interfaces.Sleeper without real waiting. While held,
// every Sleep blocks until its context is done.
type FakeClock struct {
	mu      sync.Mutex
	sleeps  []time.Duration
	elapsed time.Duration
	hold    bool
	held    chan struct{}
}

func NewFakeClock() *FakeClock {
	return &FakeClock{held: make(chan struct{}, 1)}
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.elapsed += d
	hold := c.hold
	c.mu.Unlock()

	if !hold {
		return nil
	}

	select {
	case c.held <- struct{}{}:
	default:
	}

	<-ctx.Done()
	return ctx.Err()
}

// Hold makes subsequent sleeps block until cancelled
func (c *FakeClock) Hold() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hold = true
}

// Release lets subsequent sleeps return immediately again
func (c *FakeClock) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hold = false
}

// Held receives when a sleep starts blocking
func (c *FakeClock) Held() <-chan struct{} {
	return c.held
}

func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
