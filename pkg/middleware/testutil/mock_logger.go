// Package testutil provides shared test doubles for middleware tests.
package testutil

import (
	"context"
	"sync"

	"github.com/campusbridge/campusbridge/pkg/observability/logger"
)

// LogEntry captures one emitted log record.
type LogEntry struct {
	Level  string
	Msg    string
	Fields []any
}

// MockLogger records entries for assertions. Safe for concurrent use.
type MockLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) record(level, msg string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Msg: msg, Fields: args})
}

func (m *MockLogger) Debug(msg string, args ...any) { m.record("debug", msg, args) }
func (m *MockLogger) Info(msg string, args ...any)  { m.record("info", msg, args) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.record("warn", msg, args) }
func (m *MockLogger) Error(msg string, args ...any) { m.record("error", msg, args) }

func (m *MockLogger) With(args ...any) logger.Logger { return m }

func (m *MockLogger) WithContext(ctx context.Context) logger.Logger { return m }

// ByLevel returns the recorded entries with the given level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
