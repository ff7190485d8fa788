package cycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/shared"
	"github.com/andrescamacho/gridstock/internal/domain/targets"
	"github.com/andrescamacho/gridstock/test/helpers"
)

func TestCadence_FiresOnFirstTickThenEveryInterval(t *testing.T) {
	c, err := cycle.NewCadence(3)
	require.NoError(t, err)

	var fired []int
	for tick := 1; tick <= 8; tick++ {
		if c.Due() {
			fired = append(fired, tick)
		}
	}

	assert.Equal(t, []int{1, 4, 7}, fired)
}

func TestCadence_IntervalOneFiresEveryTick(t *testing.T) {
	c, err := cycle.NewCadence(1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.True(t, c.Due())
	}
}

func TestNewCadence_RejectsZero(t *testing.T) {
	_, err := cycle.NewCadence(0)

	var verr *shared.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAggregator_RebuildCountsCargoOnlyInContainers(t *testing.T) {
	// Arrange
	w := helpers.NewBaseWorld()
	w.AddContainer("Cargo", helpers.BaseGrid, helpers.Litres(10000)).
		Put(inventory.Ore("Iron"), helpers.Items(100)).
		Put(inventory.Ingot("Gold"), helpers.Items(5))
	ref := w.AddRefinery("Refinery Auto", helpers.BaseGrid, helpers.Litres(1000), helpers.Litres(1000))
	ref.InputStore().Put(inventory.Ore("Iron"), helpers.Items(40))
	ref.OutputStore().Put(inventory.Ingot("Iron"), helpers.Items(7))
	targetsMap := map[inventory.MaterialKey]inventory.Amount{inventory.Ingot("Iron"): helpers.Items(50)}

	agg := cycle.NewAggregator()

	// Act
	stats := agg.Rebuild(context.Background(), w, targetsMap)

	// Assert
	inv := agg.Inventory()
	assert.Equal(t, 2, stats.Units)
	assert.Equal(t, 0, stats.Unreadable)

	iron := inv.Slot(inventory.Ore("Iron"))
	assert.Equal(t, helpers.Items(140), iron.Total)
	assert.Equal(t, helpers.Items(100), iron.Cargo)

	ingot := inv.Slot(inventory.Ingot("Iron"))
	assert.Equal(t, helpers.Items(7), ingot.Total)
	assert.Equal(t, inventory.Amount(0), ingot.Cargo)
	assert.Equal(t, helpers.Items(50), ingot.Target)

	assert.Equal(t, []string{"Gold", "Iron"}, inv.AvailableMaterials())
	for _, key := range inv.Keys() {
		slot := inv.Slot(key)
		assert.LessOrEqual(t, int64(slot.Cargo), int64(slot.Total), key.String())
	}
}

func TestAggregator_RebuildStartsFresh(t *testing.T) {
	w := helpers.NewBaseWorld()
	cargo := w.AddContainer("Cargo", helpers.BaseGrid, helpers.Litres(10000))
	cargo.Put(inventory.Ore("Iron"), helpers.Items(100))
	agg := cycle.NewAggregator()

	agg.Rebuild(context.Background(), w, nil)
	cargo.Put(inventory.Ore("Iron"), helpers.Items(1))
	agg.Rebuild(context.Background(), w, nil)

	assert.Equal(t, helpers.Items(101), agg.Inventory().Slot(inventory.Ore("Iron")).Total)
}

func TestAggregator_SkipsUnreadableUnit(t *testing.T) {
	// Arrange
	w := helpers.NewBaseWorld()
	broken := w.AddContainer("Broken", helpers.BaseGrid, helpers.Litres(100))
	broken.Put(inventory.Ore("Iron"), helpers.Items(100))
	broken.ReadErr = errors.New("block damaged")
	w.AddContainer("Cargo", helpers.BaseGrid, helpers.Litres(100)).Put(inventory.Ore("Iron"), helpers.Items(3))

	logger := &helpers.CapturingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	stats := cycle.NewAggregator().Rebuild(ctx, w, nil)

	// Assert
	assert.Equal(t, 1, stats.Units)
	assert.Equal(t, 1, stats.Unreadable)
	assert.True(t, logger.Has(common.LevelWarn, "Skipping unreadable unit"))
}

func TestRegistry_Rebuild(t *testing.T) {
	// Arrange
	w := helpers.NewBaseWorld()
	w.AddContainer("Cargo Ore", helpers.BaseGrid, helpers.Litres(100))
	w.AddContainer("Miner Cargo", "miner", helpers.Litres(100))
	w.AddRefinery("Refinery Auto", helpers.BaseGrid, helpers.Litres(100), helpers.Litres(100))
	w.AddRefinery("Refinery Manual", helpers.BaseGrid, helpers.Litres(100), helpers.Litres(100))
	w.AddRefinery("Miner Refinery Auto", "miner", helpers.Litres(100), helpers.Litres(100))
	w.AddAssembler("Assembler", helpers.BaseGrid, helpers.Litres(100), helpers.Litres(100))
	w.AddAssembler("Miner Assembler", "miner", helpers.Litres(100), helpers.Litres(100))
	w.AddBlock("Reactor", helpers.BaseGrid, inventory.UnitReactor, helpers.Litres(10))

	reg := cycle.NewRegistry(cycle.DefaultRefineryTag)

	// Act
	reg.Rebuild(w)

	// Assert
	require.True(t, reg.Built())
	assert.Equal(t, 2, reg.ContainerCount())
	require.Len(t, reg.OwnContainers(), 1)
	assert.Equal(t, "Cargo Ore", reg.OwnContainers()[0].Name)
	require.Len(t, reg.Containers("miner"), 1)
	require.Len(t, reg.Refineries(), 1)
	assert.Equal(t, "Refinery Auto", reg.Refineries()[0].Name())
	require.Len(t, reg.Assemblers(), 1)
	assert.Equal(t, "Assembler", reg.Assemblers()[0].Name())
}

func TestContainersOf_OneGridInHostOrder(t *testing.T) {
	w := helpers.NewBaseWorld()
	w.AddContainer("Cargo B", helpers.BaseGrid, helpers.Litres(100))
	w.AddContainer("Miner Cargo", "miner", helpers.Litres(100))
	w.AddRefinery("Refinery Auto", helpers.BaseGrid, helpers.Litres(100), helpers.Litres(100))
	w.AddContainer("Cargo A", helpers.BaseGrid, helpers.Litres(100))

	got := cycle.ContainersOf(w, helpers.BaseGrid)

	require.Len(t, got, 2)
	assert.Equal(t, "Cargo B", got[0].Name)
	assert.Equal(t, "Cargo A", got[1].Name)
	assert.Empty(t, cycle.ContainersOf(w, "elsewhere"))
}

func TestClearer_ClearProcessingEmptiesRefinery(t *testing.T) {
	// Arrange
	w := helpers.NewBaseWorld()
	ore := w.AddContainer("Cargo Ore", helpers.BaseGrid, helpers.Litres(1000))
	ingots := w.AddContainer("Cargo Ingot", helpers.BaseGrid, helpers.Litres(1000))
	ref := w.AddRefinery("Refinery Auto", helpers.BaseGrid, helpers.Litres(1000), helpers.Litres(1000))
	ref.InputStore().Put(inventory.Ore("Iron"), helpers.Items(50)).Put(inventory.Ore("Gold"), helpers.Items(5))
	ref.OutputStore().Put(inventory.Ingot("Iron"), helpers.Items(20))

	reg := cycle.NewRegistry(cycle.DefaultRefineryTag)
	reg.Rebuild(w)

	// Act
	result := cycle.NewClearer(false).ClearProcessing(context.Background(), reg.Refineries(), reg)

	// Assert
	assert.Equal(t, 1, result.Units)
	assert.Equal(t, 3, result.Placements)
	assert.Equal(t, 0, result.Stranded)
	assert.True(t, ref.InputStore().IsEmpty())
	assert.True(t, ref.OutputStore().IsEmpty())
	assert.Equal(t, helpers.Items(50), ore.Amount(inventory.Ore("Iron")))
	assert.Equal(t, helpers.Items(5), ore.Amount(inventory.Ore("Gold")))
	assert.Equal(t, helpers.Items(20), ingots.Amount(inventory.Ingot("Iron")))
}

func TestClearer_ClearProductionRespectsIdleInputFlag(t *testing.T) {
	tests := []struct {
		name           string
		clearIdle      bool
		producing      bool
		wantInputEmpty bool
	}{
		{"idle with flag", true, false, true},
		{"producing with flag", true, true, false},
		{"idle without flag", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := helpers.NewBaseWorld()
			cargo := w.AddContainer("Cargo", helpers.BaseGrid, helpers.Litres(10000))
			asm := w.AddAssembler("Assembler", helpers.BaseGrid, helpers.Litres(1000), helpers.Litres(1000))
			asm.Producing = tt.producing
			asm.InputStore().Put(inventory.Ingot("Iron"), helpers.Items(30))
			asm.OutputStore().Put(inventory.Component("SteelPlate"), helpers.Items(12))
			reg := cycle.NewRegistry(cycle.DefaultRefineryTag)
			reg.Rebuild(w)

			cycle.NewClearer(tt.clearIdle).ClearProduction(context.Background(), reg.Assemblers(), reg)

			assert.True(t, asm.OutputStore().IsEmpty())
			assert.Equal(t, helpers.Items(12), cargo.Amount(inventory.Component("SteelPlate")))
			assert.Equal(t, tt.wantInputEmpty, asm.InputStore().IsEmpty())
		})
	}
}

func TestClearer_StrandedWhenNoRoom(t *testing.T) {
	w := helpers.NewBaseWorld()
	w.AddContainer("Cargo Component", helpers.BaseGrid, helpers.Litres(1000))
	ref := w.AddRefinery("Refinery Auto", helpers.BaseGrid, helpers.Litres(1000), helpers.Litres(1000))
	ref.InputStore().Put(inventory.Ore("Iron"), helpers.Items(50))
	reg := cycle.NewRegistry(cycle.DefaultRefineryTag)
	reg.Rebuild(w)

	result := cycle.NewClearer(false).ClearProcessing(context.Background(), reg.Refineries(), reg)

	assert.Equal(t, 1, result.Stranded)
	assert.Equal(t, helpers.Items(50), ref.InputStore().Amount(inventory.Ore("Iron")))
}

func newEngine(t *testing.T, w inventory.Host, book inventory.RecipeBook, opts cycle.Options, options ...cycle.EngineOption) *cycle.Engine {
	t.Helper()
	e, err := cycle.NewEngine(w, book, opts, options...)
	require.NoError(t, err)
	return e
}

func everyTick() cycle.Options {
	opts := cycle.DefaultOptions()
	opts.RediscoverEvery = 1
	opts.RefineryEvery = 1
	opts.AssemblerEvery = 1
	opts.ProductionEvery = 1
	return opts
}

func TestNewEngine_Validation(t *testing.T) {
	w := helpers.NewBaseWorld()

	_, err := cycle.NewEngine(nil, w, cycle.DefaultOptions())
	assert.Error(t, err)

	_, err = cycle.NewEngine(w, nil, cycle.DefaultOptions())
	assert.Error(t, err)

	opts := cycle.DefaultOptions()
	opts.ProductionEvery = 0
	_, err = cycle.NewEngine(w, w, opts)
	assert.Error(t, err)
}

func TestEngine_TickRunsFullCycle(t *testing.T) {
	// Arrange
	w := helpers.NewBaseWorld()
	cargo := w.AddContainer("Cargo", helpers.BaseGrid, helpers.Litres(100000))
	cargo.Put(inventory.Ore("Iron"), helpers.Items(2000)).Put(inventory.Ore("Gold"), helpers.Items(100))
	ref := w.AddRefinery("Refinery Auto", helpers.BaseGrid, helpers.Litres(10000), helpers.Litres(10000))
	ref.OutputStore().Put(inventory.Ingot("Iron"), helpers.Items(100))
	asm := w.AddAssembler("Assembler", helpers.BaseGrid, helpers.Litres(1000), helpers.Litres(1000))
	asm.OutputStore().Put(inventory.Component("SteelPlate"), helpers.Items(40))

	clock := shared.NewMockClock(time.Time{})
	snapshots := helpers.NewMockSnapshotRepository()
	metrics := &helpers.MockMetricsRecorder{}
	e := newEngine(t, w, w, everyTick(),
		cycle.WithClock(clock), cycle.WithSnapshots(snapshots), cycle.WithMetrics(metrics))
	e.SetTargets(targets.Parse("Ingot\nIron 1000\nGold 100\nComponent\nSteelPlate 100\n"))

	logger := &helpers.CapturingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	report := e.Tick(ctx)

	// Assert
	assert.Equal(t, int64(1), report.Tick)
	assert.True(t, report.Rediscovered)
	assert.True(t, report.RefineriesCleared)
	assert.True(t, report.AssemblersCleared)
	assert.Equal(t, 2, report.Placements())

	// no gold ingots anywhere, so gold (ratio 0) beats iron (ratio 0.1)
	require.True(t, report.Fed)
	assert.Equal(t, "Gold", report.Feed.Selection.Material)
	assert.Equal(t, helpers.Items(100), report.Feed.Delivered)
	assert.Equal(t, helpers.Items(100), ref.InputStore().Amount(inventory.Ore("Gold")))

	assert.Equal(t, helpers.Items(100), e.Inventory().Slot(inventory.Ingot("Iron")).Cargo)

	require.True(t, report.Scheduled)
	assert.Equal(t, 1, report.Production.Enqueued)
	queue, _ := asm.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, helpers.Items(60), queue[0].Amount)

	latest, err := snapshots.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, report.CycleID, latest.CycleID)
	assert.Equal(t, clock.Now(), latest.TakenAt)
	assert.Equal(t, "Gold", latest.FedOre)
	assert.NotEmpty(t, latest.Slots)

	require.Len(t, metrics.Cycles, 1)
	assert.Equal(t, 2, metrics.Last().Placements)
	assert.InDelta(t, 0.1, metrics.Last().Ratios[inventory.Ingot("Iron")], 1e-9)

	assert.True(t, logger.Has(common.LevelInfo, "Fed refineries"))
}

func TestEngine_CadencesStagger(t *testing.T) {
	w := helpers.NewBaseWorld()
	opts := cycle.DefaultOptions()
	opts.RediscoverEvery = 10
	opts.RefineryEvery = 1
	opts.AssemblerEvery = 2
	opts.ProductionEvery = 3
	e := newEngine(t, w, w, opts)
	ctx := context.Background()

	var assemblers, production []bool
	for i := 0; i < 4; i++ {
		r := e.Tick(ctx)
		assemblers = append(assemblers, r.AssemblersCleared)
		production = append(production, r.Scheduled)
		assert.True(t, r.RefineriesCleared)
		assert.Equal(t, i == 0, r.Rediscovered)
	}

	assert.Equal(t, []bool{true, false, true, false}, assemblers)
	assert.Equal(t, []bool{true, false, false, true}, production)
}

func TestEngine_SnapshotFailureIsNotFatal(t *testing.T) {
	w := helpers.NewBaseWorld()
	snapshots := helpers.NewMockSnapshotRepository()
	snapshots.SaveErr = errors.New("disk full")
	e := newEngine(t, w, w, everyTick(), cycle.WithSnapshots(snapshots))
	logger := &helpers.CapturingLogger{}

	report := e.Tick(common.WithLogger(context.Background(), logger))

	assert.Equal(t, int64(1), report.Tick)
	assert.True(t, logger.Has(common.LevelError, "Failed to save cycle snapshot"))
}

func TestEngine_RegistryBuiltOnDemand(t *testing.T) {
	w := helpers.NewBaseWorld()
	w.AddContainer("Cargo", helpers.BaseGrid, helpers.Litres(100))
	e := newEngine(t, w, w, cycle.DefaultOptions())

	assert.Equal(t, 1, e.Registry().ContainerCount())
}
