package cycle

import (
	"context"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/placement"
)

// ClearResult totals one clearing pass.
type ClearResult struct {
	Units      int
	Placements int
	Moved      inventory.Amount
	Stranded   int
}

func (r *ClearResult) add(other ClearResult) {
	r.Units += other.Units
	r.Placements += other.Placements
	r.Moved += other.Moved
	r.Stranded += other.Stranded
}

// Clearer empties processing and production units into the containers of
// their grid through the placement ranker.
type Clearer struct {
	clearIdleInputs bool
}

// NewClearer creates a clearer. With clearIdleInputs, idle production units
// also have their input inventory emptied.
func NewClearer(clearIdleInputs bool) *Clearer {
	return &Clearer{clearIdleInputs: clearIdleInputs}
}

// ClearProcessing empties every inventory of each processing unit.
func (c *Clearer) ClearProcessing(ctx context.Context, units []inventory.ProcessingUnit, reg *Registry) ClearResult {
	var total ClearResult
	for _, u := range units {
		candidates := reg.Containers(u.Grid())
		for _, inv := range u.Inventories() {
			total.add(drain(ctx, u.Name(), inv, candidates))
		}
		total.Units++
	}
	return total
}

// ClearProduction empties production outputs, and inputs of idle units when
// configured to.
func (c *Clearer) ClearProduction(ctx context.Context, units []inventory.ProductionUnit, reg *Registry) ClearResult {
	var total ClearResult
	for _, u := range units {
		candidates := reg.Containers(u.Grid())
		total.add(drain(ctx, u.Name(), u.Output(), candidates))
		if c.clearIdleInputs && !u.IsProducing() {
			total.add(drain(ctx, u.Name(), u.Input(), candidates))
		}
		total.Units++
	}
	return total
}

// drain places every stack of inv. Stacks are visited from the highest index
// down so indexes stay valid while emptied stacks disappear.
func drain(ctx context.Context, unitName string, inv inventory.Inventory, candidates []placement.ContainerDescriptor) ClearResult {
	var result ClearResult

	stacks, err := inv.Stacks()
	if err != nil {
		common.LoggerFromContext(ctx).Log(common.LevelWarn, "Cannot read inventory for clearing", map[string]interface{}{
			"unit":  unitName,
			"error": err.Error(),
		})
		return result
	}

	for i := len(stacks) - 1; i >= 0; i-- {
		placed := placement.Place(stacks[i], inv, candidates)
		result.Placements += len(placed.Destinations)
		result.Moved += placed.Placed
		if !placed.Complete() {
			result.Stranded++
		}
	}
	return result
}
