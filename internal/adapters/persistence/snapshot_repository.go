package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// GormSnapshotRepository implements common.SnapshotRepository using GORM
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GORM snapshot repository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Save replaces the stored snapshot with snapshot in one transaction.
func (r *GormSnapshotRepository) Save(ctx context.Context, snapshot *common.CycleSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	model := snapshotToModel(snapshot)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&SlotSnapshotModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear slot snapshots: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CycleSnapshotModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear cycle snapshots: %w", err)
		}
		if err := tx.Omit("Slots").Create(model).Error; err != nil {
			return fmt.Errorf("failed to insert cycle snapshot: %w", err)
		}
		if len(model.Slots) > 0 {
			if err := tx.CreateInBatches(&model.Slots, 200).Error; err != nil {
				return fmt.Errorf("failed to insert slot snapshots: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.CycleID, err)
	}
	return nil
}

// Latest returns the stored snapshot, or nil when none was saved yet.
func (r *GormSnapshotRepository) Latest(ctx context.Context) (*common.CycleSnapshot, error) {
	var model CycleSnapshotModel
	result := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("id DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest snapshot: %w", result.Error)
	}
	return modelToSnapshot(&model), nil
}

func snapshotToModel(s *common.CycleSnapshot) *CycleSnapshotModel {
	m := &CycleSnapshotModel{
		CycleID:    s.CycleID,
		Tick:       s.Tick,
		TakenAt:    s.TakenAt.UTC(),
		Placements: s.Placements,
		FedRaw:     s.Fed.Raw(),
		FedOre:     s.FedOre,
		Enqueued:   s.Enqueued,
		Slots:      make([]SlotSnapshotModel, 0, len(s.Slots)),
	}
	for i, slot := range s.Slots {
		m.Slots = append(m.Slots, SlotSnapshotModel{
			CycleID:   s.CycleID,
			Position:  i,
			Category:  slot.Key.Category,
			Subtype:   slot.Key.Subtype,
			TotalRaw:  slot.Total.Raw(),
			CargoRaw:  slot.Cargo.Raw(),
			TargetRaw: slot.Target.Raw(),
		})
	}
	return m
}

func modelToSnapshot(m *CycleSnapshotModel) *common.CycleSnapshot {
	s := &common.CycleSnapshot{
		CycleID:    m.CycleID,
		Tick:       m.Tick,
		TakenAt:    m.TakenAt.UTC(),
		Placements: m.Placements,
		Fed:        inventory.Amount(m.FedRaw),
		FedOre:     m.FedOre,
		Enqueued:   m.Enqueued,
		Slots:      make([]common.SlotSnapshot, 0, len(m.Slots)),
	}
	for _, slot := range m.Slots {
		s.Slots = append(s.Slots, common.SlotSnapshot{
			Key:    inventory.MaterialKey{Category: slot.Category, Subtype: slot.Subtype},
			Total:  inventory.Amount(slot.TotalRaw),
			Cargo:  inventory.Amount(slot.CargoRaw),
			Target: inventory.Amount(slot.TargetRaw),
		})
	}
	return s
}
