package helpers

import (
	"sync"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

// LogEntry is one captured log line
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// CapturingLogger records every log line for assertions
type CapturingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ common.CycleLogger = (*CapturingLogger)(nil)

func (l *CapturingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Has reports whether a line with this level and message was logged
func (l *CapturingLogger) Has(level, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.Entries {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

// Count returns the number of lines logged at level
func (l *CapturingLogger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
