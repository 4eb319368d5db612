package testutil

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// EventKind distinguishes emitted characters from backspaces
type EventKind int

const (
	EventChar EventKind = iota
	EventBackspace
)

// KeyEvent is one call recorded by MockKeyEmitter
type KeyEvent struct {
	Kind EventKind
	Char rune
	At   time.Duration // clock time when a FakeClock is attached
}

// Char is a character event, for building expected sequences
func Char(r rune) KeyEvent {
	return KeyEvent{Kind: EventChar, Char: r}
}

// Backspace is a backspace event, for building expected sequences
func Backspace() KeyEvent {
	return KeyEvent{Kind: EventBackspace}
}

// ErrMockEmit is returned by a MockKeyEmitter configured to fail
var ErrMockEmit = errors.New("mock emitter failure")

// MockKeyEmitter implements interfaces.KeyEmitter and records every call
type MockKeyEmitter struct {
	mu     sync.Mutex
	events []KeyEvent
	failAt int // 1-based event number that fails; 0 never fails
	clock  *FakeClock
	hook   func(n int, ev KeyEvent)
}

func NewMockKeyEmitter() *MockKeyEmitter {
	return &MockKeyEmitter{}
}

// WithFailAt makes the nth call (1-based) return ErrMockEmit
func (m *MockKeyEmitter) WithFailAt(n int) *MockKeyEmitter {
	m.failAt = n
	return m
}

// WithClock stamps events with the clock's elapsed time
func (m *MockKeyEmitter) WithClock(c *FakeClock) *MockKeyEmitter {
	m.clock = c
	return m
}

// WithHook calls fn after each successful event with the running count
func (m *MockKeyEmitter) WithHook(fn func(n int, ev KeyEvent)) *MockKeyEmitter {
	m.hook = fn
	return m
}

func (m *MockKeyEmitter) Emit(r rune) error {
	return m.record(KeyEvent{Kind: EventChar, Char: r})
}

func (m *MockKeyEmitter) Backspace() error {
	return m.record(KeyEvent{Kind: EventBackspace})
}

func (m *MockKeyEmitter) record(ev KeyEvent) error {
	m.mu.Lock()
	if m.failAt > 0 && len(m.events)+1 == m.failAt {
		m.mu.Unlock()
		return ErrMockEmit
	}

	if m.clock != nil {
		ev.At = m.clock.Elapsed()
	}

	m.events = append(m.events, ev)
	n, hook := len(m.events), m.hook
	m.mu.Unlock()

	if hook != nil {
		hook(n, ev)
	}

	return nil
}

// Events returns a copy of the recorded events without timestamps
func (m *MockKeyEmitter) Events() []KeyEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]KeyEvent, len(m.events))
	for i, ev := range m.events {
		ev.At = 0
		out[i] = ev
	}

	return out
}

// TimedEvents returns a copy of the recorded events including timestamps
func (m *MockKeyEmitter) TimedEvents() []KeyEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]KeyEvent(nil), m.events...)
}

// Typed replays the events into a buffer, applying backspaces
func (m *MockKeyEmitter) Typed() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var buf []rune
	for _, ev := range m.events {
		switch ev.Kind {
		case EventChar:
			buf = append(buf, ev.Char)
		case EventBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		}
	}

	return string(buf)
}

// Chars returns the emitted characters in order, typos included
func (m *MockKeyEmitter) Chars() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sb strings.Builder
	for _, ev := range m.events {
		if ev.Kind == EventChar {
			sb.WriteRune(ev.Char)
		}
	}

	return sb.String()
}

// Count returns how many events of the given kind were recorded
func (m *MockKeyEmitter) Count(kind EventKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, ev := range m.events {
		if ev.Kind == kind {
			n++
		}
	}

	return n
}

// MockPermissionGate implements interfaces.PermissionGate
type MockPermissionGate struct {
	mu      sync.Mutex
	granted bool
	calls   int
}

func NewMockPermissionGate() *MockPermissionGate {
	return &MockPermissionGate{granted: true}
}

func (m *MockPermissionGate) WithGranted(granted bool) *MockPermissionGate {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.granted = granted
	return m
}

func (m *MockPermissionGate) IsGranted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.granted
}

// Calls returns how many times IsGranted was consulted
func (m *MockPermissionGate) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
