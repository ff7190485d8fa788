package cycle

import (
	"context"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// SweepStats counts what one aggregation pass visited.
type SweepStats struct {
	Units      int
	Unreadable int
	Stacks     int
}

// Aggregator owns the per-cycle GlobalInventory and rebuilds it from a full
// sweep of the host.
type Aggregator struct {
	inv *inventory.GlobalInventory
}

// NewAggregator creates an aggregator with an empty inventory
func NewAggregator() *Aggregator {
	return &Aggregator{inv: inventory.NewGlobalInventory()}
}

// Inventory returns the inventory of the last sweep. Callers only read it.
func (a *Aggregator) Inventory() *inventory.GlobalInventory {
	return a.inv
}

// Rebuild clears the inventory, seeds targets and visits every unit once.
// Stacks held by storage containers also count as cargo. A unit with an
// unreadable inventory is skipped as a whole so it never half-contributes.
func (a *Aggregator) Rebuild(ctx context.Context, host inventory.Host, targets map[inventory.MaterialKey]inventory.Amount) SweepStats {
	logger := common.LoggerFromContext(ctx)

	a.inv.Reset()
	a.inv.ApplyTargets(targets)

	var stats SweepStats
	for _, unit := range host.Units() {
		invs := unit.Inventories()
		if len(invs) == 0 {
			continue
		}

		stacks, err := readAll(unit.Name(), invs)
		if err != nil {
			stats.Unreadable++
			logger.Log(common.LevelWarn, "Skipping unreadable unit", map[string]interface{}{
				"unit":  unit.Name(),
				"error": err.Error(),
			})
			continue
		}

		inCargo := unit.Kind() == inventory.UnitContainer
		for _, s := range stacks {
			a.inv.AddStack(s.Key, s.Amount, inCargo)
		}
		stats.Units++
		stats.Stacks += len(stacks)
	}
	return stats
}

func readAll(unitName string, invs []inventory.Inventory) ([]inventory.Stack, error) {
	var all []inventory.Stack
	for _, inv := range invs {
		stacks, err := inv.Stacks()
		if err != nil {
			return nil, &inventory.ErrUnreadableInventory{UnitName: unitName, Cause: err}
		}
		all = append(all, stacks...)
	}
	return all, nil
}
