package helpers

import (
	"sync"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

// MockMetricsRecorder collects recorded cycles
type MockMetricsRecorder struct {
	mu     sync.Mutex
	Cycles []common.CycleMetrics
}

func (m *MockMetricsRecorder) RecordCycle(report common.CycleMetrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cycles = append(m.Cycles, report)
}

// Last returns the most recent cycle, or the zero value
func (m *MockMetricsRecorder) Last() common.CycleMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Cycles) == 0 {
		return common.CycleMetrics{}
	}
	return m.Cycles[len(m.Cycles)-1]
}
