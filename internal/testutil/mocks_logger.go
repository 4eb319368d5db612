package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// LogEntry is one call recorded by MockLogger
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// MockLogger implements logger.LoggerInterface and records every entry
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (m *MockLogger) Trace(msg string, args ...any) { m.record("TRACE", msg, args) }
func (m *MockLogger) Debug(msg string, args ...any) { m.record("DEBUG", msg, args) }
func (m *MockLogger) Info(msg string, args ...any)  { m.record("INFO", msg, args) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.record("WARN", msg, args) }
func (m *MockLogger) Error(msg string, args ...any) { m.record("ERROR", msg, args) }
func (m *MockLogger) Close()                        {}
func (m *MockLogger) GetLogPath() string            { return "" }

func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), m.entries...)
}

// Messages returns "LEVEL msg" for every entry, for simple assertions
func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = fmt.Sprintf("%s %s", e.Level, e.Msg)
	}

	return out
}

// HasMessage reports whether any entry at level contains substr
func (m *MockLogger) HasMessage(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}

	return false
}
