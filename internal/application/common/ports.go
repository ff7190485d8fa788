package common

import (
	"context"
	"time"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// SlotSnapshot is one material slot as recorded at the end of a cycle.
type SlotSnapshot struct {
	Key    inventory.MaterialKey
	Total  inventory.Amount
	Cargo  inventory.Amount
	Target inventory.Amount
}

// Ratio mirrors InventorySlot.Ratio for stored slots.
func (s SlotSnapshot) Ratio() float64 {
	slot := inventory.InventorySlot{Total: s.Total, Cargo: s.Cargo, Target: s.Target}
	return slot.Ratio()
}

// CycleSnapshot is the finished inventory of the most recent cycle plus the
// headline numbers of its report.
type CycleSnapshot struct {
	CycleID    string
	Tick       int64
	TakenAt    time.Time
	Placements int
	Fed        inventory.Amount
	FedOre     string
	Enqueued   int
	Slots      []SlotSnapshot
}

// SnapshotFromInventory copies the slots of a finished GlobalInventory.
func SnapshotFromInventory(inv *inventory.GlobalInventory) []SlotSnapshot {
	keys := inv.Keys()
	slots := make([]SlotSnapshot, 0, len(keys))
	for _, key := range keys {
		s := inv.Slot(key)
		slots = append(slots, SlotSnapshot{Key: key, Total: s.Total, Cargo: s.Cargo, Target: s.Target})
	}
	return slots
}

// SnapshotRepository stores the latest cycle snapshot. Saving replaces the
// previous one; no history is kept.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *CycleSnapshot) error
	// Latest returns nil without error when nothing was saved yet.
	Latest(ctx context.Context) (*CycleSnapshot, error)
}

// MetricsRecorder receives per-cycle figures. Implementations must tolerate
// being called when metrics are disabled.
type MetricsRecorder interface {
	RecordCycle(report CycleMetrics)
}

// CycleMetrics is the metric view of one tick.
type CycleMetrics struct {
	Duration   time.Duration
	Units      int
	Unreadable int
	Placements int
	Stranded   int
	Fed        inventory.Amount
	Enqueued   int
	Ratios     map[inventory.MaterialKey]float64
}
