package production

import (
	"sort"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// Deficit is one manufactured material still short of its target once
// queued orders are counted.
type Deficit struct {
	Key       inventory.MaterialKey
	Effective inventory.Amount
	Target    inventory.Amount
	Ratio     float64
}

// Missing returns the whole number of items needed to reach the target.
func (d Deficit) Missing() inventory.Amount {
	return inventory.Items((d.Target - d.Effective).CeilWhole())
}

// Request is a build order ready to be committed
type Request struct {
	Key       inventory.MaterialKey
	Recipe    string
	Blueprint inventory.Blueprint
	Quantity  inventory.Amount
}

// Result reports a scheduling pass.
type Result struct {
	Leader     string
	Deficits   []Deficit
	Requests   []Request
	Enqueued   int
	Unresolved []inventory.MaterialKey
	Failures   []error
}

// Scheduler turns manufactured-item deficits into build orders.
type Scheduler struct {
	recipes inventory.RecipeBook
}

// NewScheduler creates a scheduler resolving recipes through book.
func NewScheduler(book inventory.RecipeBook) *Scheduler {
	return &Scheduler{recipes: book}
}

// IsSchedulable reports whether the category is built by production units.
func IsSchedulable(key inventory.MaterialKey) bool {
	return key.IsManufactured()
}

// QueuedAmounts totals committed build orders per material across units.
// Units whose queue cannot be read contribute nothing.
func QueuedAmounts(units []inventory.ProductionUnit) map[inventory.MaterialKey]inventory.Amount {
	queued := make(map[inventory.MaterialKey]inventory.Amount)
	for _, u := range units {
		items, err := u.Queue()
		if err != nil {
			continue
		}
		for _, it := range items {
			queued[it.Key] += it.Amount
		}
	}
	return queued
}

// Plan lists the deficits in ascending ratio order. Materials already at or
// above target, counting queued orders, are left out.
func (s *Scheduler) Plan(inv *inventory.GlobalInventory, queued map[inventory.MaterialKey]inventory.Amount) []Deficit {
	var deficits []Deficit
	for _, key := range inv.Keys() {
		if !IsSchedulable(key) {
			continue
		}
		slot := inv.Slot(key)
		if !slot.HasTarget() {
			continue
		}
		effective := slot.Total + queued[key]
		if effective >= slot.Target {
			continue
		}
		deficits = append(deficits, Deficit{
			Key:       key,
			Effective: effective,
			Target:    slot.Target,
			Ratio:     float64(effective) / float64(slot.Target),
		})
	}

	sort.SliceStable(deficits, func(i, j int) bool {
		return deficits[i].Ratio < deficits[j].Ratio
	})
	return deficits
}

// Schedule plans the deficits and commits them to the leader, the first
// functional unit. Every other unit is switched to cooperative mode so it
// helps with the leader's queue. A request is never split between units.
func (s *Scheduler) Schedule(inv *inventory.GlobalInventory, units []inventory.ProductionUnit) Result {
	var result Result

	var leader inventory.ProductionUnit
	for _, u := range units {
		if leader == nil && u.IsFunctional() {
			leader = u
			continue
		}
		u.SetCooperative(true)
	}
	if leader == nil {
		return result
	}
	leader.SetCooperative(false)
	result.Leader = leader.Name()

	result.Deficits = s.Plan(inv, QueuedAmounts(units))
	for _, d := range result.Deficits {
		bp, recipe, ok := ResolveRecipe(s.recipes, d.Key)
		if !ok {
			result.Unresolved = append(result.Unresolved, d.Key)
			continue
		}
		req := Request{Key: d.Key, Recipe: recipe, Blueprint: bp, Quantity: d.Missing()}
		result.Requests = append(result.Requests, req)

		if err := leader.Enqueue(bp, req.Quantity); err != nil {
			result.Failures = append(result.Failures, &ErrEnqueueFailed{
				UnitName: leader.Name(),
				Recipe:   recipe,
				Cause:    err,
			})
			continue
		}
		result.Enqueued++
	}
	return result
}
