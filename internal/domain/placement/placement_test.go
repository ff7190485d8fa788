package placement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/placement"
	"github.com/andrescamacho/gridstock/test/helpers"
)

var (
	firstStack = helpers.FirstStack
	describe   = helpers.Describe
)

func names(ds []placement.ContainerDescriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}

func TestDescribeContainer_MaskFromName(t *testing.T) {
	w := helpers.NewWorld(helpers.BaseGrid)
	c := w.AddContainer("Large Cargo Ore", "base", inventory.Litres(100))
	r := w.AddRefinery("Refinery", "base", inventory.Litres(100), inventory.Litres(100))

	d, ok := placement.DescribeContainer(c.Owner())
	require.True(t, ok)
	assert.Equal(t, inventory.AcceptorMask(inventory.KindOre), d.Mask)
	assert.Equal(t, inventory.GridID("base"), d.Grid)

	_, ok = placement.DescribeContainer(r)
	assert.False(t, ok)
}

func TestScore_ExclusiveHoldingContainerBeatsEmptyMaterialContainer(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Drill Output", "base", inventory.Litres(1000))
	source.Put(inventory.Ore("Iron"), inventory.Items(100))
	oreBin := w.AddContainer("Cargo Ore", "base", inventory.Litres(1000))
	oreBin.Put(inventory.Ore("Iron"), inventory.Items(5))
	materialBin := w.AddContainer("Cargo Material", "base", inventory.Litres(1000))
	stack := firstStack(t, source)

	// Act
	ranked := placement.Rank(stack, source, []placement.ContainerDescriptor{describe(materialBin), describe(oreBin)})

	// Assert
	assert.Equal(t, 7, placement.Score(stack, describe(oreBin)))
	assert.Equal(t, 1, placement.Score(stack, describe(materialBin)))
	assert.Equal(t, []string{"Cargo Ore", "Cargo Material"}, names(ranked))
}

func TestRank_NeverReturnsExcludingMask(t *testing.T) {
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Assembler Out", "base", inventory.Litres(1000))
	source.Put(inventory.Component("SteelPlate"), inventory.Items(10))
	candidates := []placement.ContainerDescriptor{
		describe(w.AddContainer("Cargo Ore", "base", inventory.Litres(1000))),
		describe(w.AddContainer("Cargo Ingot", "base", inventory.Litres(1000))),
		describe(w.AddContainer("Cargo Material", "base", inventory.Litres(1000))),
		describe(w.AddContainer("Cargo Ammo", "base", inventory.Litres(1000))),
		describe(w.AddContainer("Cargo Component", "base", inventory.Litres(1000))),
		describe(w.AddContainer("Cargo", "base", inventory.Litres(1000))),
	}

	ranked := placement.Rank(firstStack(t, source), source, candidates)

	assert.Equal(t, []string{"Cargo Component", "Cargo"}, names(ranked))
	for _, d := range ranked {
		assert.True(t, d.Mask.Accepts(inventory.KindComponent))
	}
}

func TestRank_FiltersSourceFullAndUnreachable(t *testing.T) {
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Cargo A", "base", inventory.Litres(1000))
	source.Put(inventory.Ingot("Iron"), inventory.Items(10))
	full := w.AddContainer("Cargo Full", "base", inventory.Litres(1))
	full.Put(inventory.Component("SteelPlate"), inventory.Items(1))
	remote := w.AddContainer("Cargo Remote", "other", inventory.Litres(1000))
	open := w.AddContainer("Cargo Open", "base", inventory.Litres(1000))

	ranked := placement.Rank(firstStack(t, source), source, []placement.ContainerDescriptor{
		describe(source), describe(full), describe(remote), describe(open),
	})

	assert.Equal(t, []string{"Cargo Open"}, names(ranked))
}

func TestRank_KeepsDiscoveryOrderWithinBucket(t *testing.T) {
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Source", "base", inventory.Litres(1000))
	source.Put(inventory.Ingot("Gold"), inventory.Items(10))
	c := w.AddContainer("C", "base", inventory.Litres(1000))
	a := w.AddContainer("A", "base", inventory.Litres(1000))
	b := w.AddContainer("B", "base", inventory.Litres(1000))

	ranked := placement.Rank(firstStack(t, source), source, []placement.ContainerDescriptor{describe(c), describe(a), describe(b)})

	assert.Equal(t, []string{"C", "A", "B"}, names(ranked))
}

func TestPlace_SplitsAcrossRankedCandidates(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Refinery Spill", "base", inventory.Litres(1000))
	source.Put(inventory.Ore("Iron"), inventory.Items(1000))

	full := w.AddContainer("Cargo Ore Full", "base", inventory.Litres(37))
	full.Put(inventory.Ore("Stone"), inventory.Items(100))
	partial := w.AddContainer("Cargo Ore Small", "base", inventory.Litres(100))
	partial.Put(inventory.Ore("Iron"), inventory.Items(10))
	empty := w.AddContainer("Cargo Material", "base", inventory.Litres(1000))

	candidates := []placement.ContainerDescriptor{describe(full), describe(empty), describe(partial)}

	// Act
	result := placement.Place(firstStack(t, source), source, candidates)

	// Assert
	assert.True(t, result.Complete())
	assert.Equal(t, inventory.Amount(0), result.Remaining)
	assert.Equal(t, inventory.Items(1000), result.Placed)
	assert.Equal(t, []string{"Cargo Ore Small", "Cargo Material"}, result.Destinations)

	assert.True(t, source.IsEmpty())
	intoPartial := partial.Amount(inventory.Ore("Iron")) - inventory.Items(10)
	intoEmpty := empty.Amount(inventory.Ore("Iron"))
	assert.True(t, intoPartial.IsPositive())
	assert.Equal(t, inventory.Items(1000), intoPartial+intoEmpty)
	assert.True(t, inventory.FreeVolume(partial) < inventory.Litres(1))
	assert.Equal(t, inventory.Items(100), full.Amount(inventory.Ore("Stone")))
}

func TestPlace_LeavesRemainderWhenCandidatesExhausted(t *testing.T) {
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Assembler Out", "base", inventory.Litres(1000))
	source.Put(inventory.Component("SteelPlate"), inventory.Items(100))
	small := w.AddContainer("Cargo Component", "base", inventory.Litres(30))

	result := placement.Place(firstStack(t, source), source, []placement.ContainerDescriptor{describe(small)})

	assert.False(t, result.Complete())
	assert.Equal(t, inventory.Items(10), result.Placed)
	assert.Equal(t, inventory.Items(90), result.Remaining)
	assert.Equal(t, inventory.Items(90), source.Amount(inventory.Component("SteelPlate")))
}

func TestPlace_NoCandidates(t *testing.T) {
	w := helpers.NewWorld(helpers.BaseGrid)
	source := w.AddContainer("Source", "base", inventory.Litres(1000))
	source.Put(inventory.Ingot("Iron"), inventory.Items(5))

	result := placement.Place(firstStack(t, source), source, nil)

	assert.Equal(t, inventory.Items(5), result.Remaining)
	assert.Empty(t, result.Destinations)
}
