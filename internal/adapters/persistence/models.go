package persistence

import (
	"time"
)

// CycleSnapshotModel represents the cycle_snapshots table. It holds a single
// row: the most recent finished cycle.
type CycleSnapshotModel struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	CycleID    string    `gorm:"column:cycle_id;not null;uniqueIndex"`
	Tick       int64     `gorm:"column:tick;not null"`
	TakenAt    time.Time `gorm:"column:taken_at;not null"`
	Placements int       `gorm:"column:placements;not null;default:0"`
	FedRaw     int64     `gorm:"column:fed_raw;not null;default:0"` // Amount in millionths
	FedOre     string    `gorm:"column:fed_ore"`
	Enqueued   int       `gorm:"column:enqueued;not null;default:0"`

	Slots []SlotSnapshotModel `gorm:"foreignKey:CycleID;references:CycleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (CycleSnapshotModel) TableName() string {
	return "cycle_snapshots"
}

// SlotSnapshotModel represents the slot_snapshots table
type SlotSnapshotModel struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement"`
	CycleID   string `gorm:"column:cycle_id;not null;index"`
	Position  int    `gorm:"column:position;not null"`
	Category  string `gorm:"column:category;not null"`
	Subtype   string `gorm:"column:subtype;not null"`
	TotalRaw  int64  `gorm:"column:total_raw;not null;default:0"`
	CargoRaw  int64  `gorm:"column:cargo_raw;not null;default:0"`
	TargetRaw int64  `gorm:"column:target_raw;not null;default:0"`
}

func (SlotSnapshotModel) TableName() string {
	return "slot_snapshots"
}

// Models lists every model for auto-migration.
func Models() []interface{} {
	return []interface{}{
		&CycleSnapshotModel{},
		&SlotSnapshotModel{},
	}
}
