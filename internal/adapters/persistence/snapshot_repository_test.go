package persistence_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/adapters/persistence"
	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/test/helpers"
)

func sampleSnapshot(id string, tick int64) *common.CycleSnapshot {
	return &common.CycleSnapshot{
		CycleID:    id,
		Tick:       tick,
		TakenAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Placements: 4,
		Fed:        inventory.AmountFromFloat(12.5),
		FedOre:     "Iron",
		Enqueued:   2,
		Slots: []common.SlotSnapshot{
			{Key: inventory.Ore("Iron"), Total: inventory.Items(500), Cargo: inventory.Items(400)},
			{Key: inventory.Ingot("Iron"), Total: inventory.AmountFromFloat(33.25), Cargo: inventory.Items(30), Target: inventory.Items(100)},
			{Key: inventory.Component("SteelPlate"), Total: inventory.Items(10), Cargo: inventory.Items(10), Target: inventory.Items(50)},
		},
	}
}

func TestSnapshotRepository_LatestEmpty(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db)

	// Act
	snap, err := repo.Latest(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotRepository_SaveAndLatest(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db)
	want := sampleSnapshot("cycle-1-aaaaaaaa", 1)

	// Act
	err := repo.Save(context.Background(), want)
	require.NoError(t, err)
	got, err := repo.Latest(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.CycleID, got.CycleID)
	assert.Equal(t, want.Tick, got.Tick)
	assert.True(t, want.TakenAt.Equal(got.TakenAt))
	assert.Equal(t, want.Fed, got.Fed)
	assert.Equal(t, "Iron", got.FedOre)
	assert.Equal(t, want.Slots, got.Slots)
	assert.InDelta(t, 0.3325, got.Slots[1].Ratio(), 1e-9)
}

func TestSnapshotRepository_SaveReplacesPrevious(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db)
	require.NoError(t, repo.Save(context.Background(), sampleSnapshot("cycle-1-aaaaaaaa", 1)))

	second := sampleSnapshot("cycle-2-bbbbbbbb", 2)
	second.Slots = second.Slots[:1]

	// Act
	err := repo.Save(context.Background(), second)

	// Assert
	require.NoError(t, err)
	got, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cycle-2-bbbbbbbb", got.CycleID)
	assert.Len(t, got.Slots, 1)

	var cycles, slots int64
	require.NoError(t, db.Model(&persistence.CycleSnapshotModel{}).Count(&cycles).Error)
	require.NoError(t, db.Model(&persistence.SlotSnapshotModel{}).Count(&slots).Error)
	assert.Equal(t, int64(1), cycles)
	assert.Equal(t, int64(1), slots)
}

func TestSnapshotRepository_SaveNil(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db)

	assert.Error(t, repo.Save(context.Background(), nil))
}

func TestExportSnapshot_RoundTrip(t *testing.T) {
	// Arrange
	want := sampleSnapshot("cycle-7-cccccccc", 7)
	var buf bytes.Buffer

	// Act
	err := persistence.ExportSnapshot(&buf, want)
	require.NoError(t, err)
	header, got, err := persistence.ImportSnapshot(&buf)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, persistence.ExportFormatVersion, header.Version)
	assert.Equal(t, 3, header.Slots)
	assert.Equal(t, want.CycleID, got.CycleID)
	assert.Equal(t, want.Slots, got.Slots)
	assert.Equal(t, want.Fed, got.Fed)
}

func TestExportSnapshot_NilSnapshot(t *testing.T) {
	var buf bytes.Buffer

	err := persistence.ExportSnapshot(&buf, nil)

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestImportSnapshot_RejectsGarbage(t *testing.T) {
	_, _, err := persistence.ImportSnapshot(bytes.NewReader([]byte("not zstd")))

	assert.Error(t, err)
}
