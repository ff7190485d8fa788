package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

// MockSnapshotRepository keeps the latest snapshot in memory
type MockSnapshotRepository struct {
	mu sync.Mutex

	Saved   []*common.CycleSnapshot
	SaveErr error
}

// NewMockSnapshotRepository creates an empty repository
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{}
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *common.CycleSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, snapshot)
	return nil
}

func (m *MockSnapshotRepository) Latest(ctx context.Context) (*common.CycleSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Saved) == 0 {
		return nil, nil
	}
	return m.Saved[len(m.Saved)-1], nil
}

// SaveCount returns how many snapshots were saved
func (m *MockSnapshotRepository) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}
